package bridge

import (
	"context"
	"errors"

	"github.com/golang/glog"
	"github.com/golang/protobuf/proto"

	fx "github.com/robotalks/moab.go/pkg/framework"
	"github.com/robotalks/moab.go/pkg/host"
)

// Topic names under the device ID.
const (
	TopicStatus = "status"
	TopicFrames = "frames"
)

// Bridge connects the host loop to MQTT and the status feed.
type Bridge struct {
	PubSub PubSub
	ID     string
	Feed   *StatusFeed

	seq uint64
}

// New creates a Bridge.
func New(ps PubSub, id string) *Bridge {
	return &Bridge{PubSub: ps, ID: id}
}

// WithFeed streams statuses to feed as well.
func (b *Bridge) WithFeed(feed *StatusFeed) *Bridge {
	b.Feed = feed
	return b
}

// Topic returns the full topic name of the device.
func (b *Bridge) Topic(name string) string {
	return b.ID + "/" + name
}

// AddToLoop implements LoopAdder.
func (b *Bridge) AddToLoop(loop *fx.Loop) {
	loop.AddRunnable(b)
	loop.AddController(fx.PrLvPostProc, b)
}

// Run implements Runnable. It forwards frame batches to the loop.
func (b *Bridge) Run(ctx context.Context) error {
	if b.PubSub == nil {
		<-ctx.Done()
		return ctx.Err()
	}
	loopCtl := fx.LoopCtlFrom(ctx)
	sub, err := b.PubSub.Subscribe(b.Topic(TopicFrames), func(topic string, payload []byte) {
		msg, err := DecodeFrames(payload)
		if err != nil {
			glog.Warningf("%s: %v", topic, err)
			return
		}
		loopCtl.PostMessage(msg)
		loopCtl.TriggerNext()
	})
	if err != nil {
		return err
	}
	defer sub.Close()
	<-ctx.Done()
	return ctx.Err()
}

// DecodeFrames decodes a FrameBatch payload into a loop message.
func DecodeFrames(payload []byte) (*host.FramesMsg, error) {
	var batch FrameBatch
	if err := proto.Unmarshal(payload, &batch); err != nil {
		return nil, err
	}
	frames, err := batch.ControlFrames()
	if err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return nil, errors.New("empty frame batch")
	}
	return &host.FramesMsg{Frames: frames}, nil
}

// Control implements Controller. It publishes status changes.
func (b *Bridge) Control(cc fx.ControlContext) error {
	var errs fx.AggregatedError
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mctx fx.MessageProcessingContext) {
		msg, ok := mctx.CurrentMessage().(*host.StatusMsg)
		if !ok {
			return
		}
		mctx.MessageTaken()
		errs.Add(b.publish(msg))
	}))
	return errs.Aggregate()
}

func (b *Bridge) publish(msg *host.StatusMsg) error {
	b.seq++
	status := NewHatStatus(msg.Status)
	status.Manual, status.Seq = msg.Manual, b.seq
	if b.Feed != nil {
		b.Feed.Broadcast(status)
	}
	if b.PubSub == nil {
		return nil
	}
	payload, err := proto.Marshal(status)
	if err != nil {
		return err
	}
	return b.PubSub.Publish(b.Topic(TopicStatus), payload)
}
