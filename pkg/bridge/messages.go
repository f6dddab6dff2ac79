package bridge

import (
	"fmt"

	"github.com/golang/protobuf/proto"

	"github.com/robotalks/moab.go/pkg/link"
)

// HatStatus is the status published to <id>/status.
type HatStatus struct {
	Menu     bool   `protobuf:"varint,1,opt,name=menu,proto3" json:"menu"`
	Joystick bool   `protobuf:"varint,2,opt,name=joystick,proto3" json:"joystick"`
	JoyX     int32  `protobuf:"zigzag32,3,opt,name=joy_x,proto3" json:"joy_x"`
	JoyY     int32  `protobuf:"zigzag32,4,opt,name=joy_y,proto3" json:"joy_y"`
	Manual   bool   `protobuf:"varint,5,opt,name=manual,proto3" json:"manual"`
	Seq      uint64 `protobuf:"varint,6,opt,name=seq,proto3" json:"seq"`
}

// NewHatStatus converts a link status.
func NewHatStatus(s link.Status) *HatStatus {
	return &HatStatus{
		Menu:     s.Buttons.Menu(),
		Joystick: s.Buttons.Joystick(),
		JoyX:     int32(s.X),
		JoyY:     int32(s.Y),
	}
}

// ProtoMessage implements proto.Message.
func (m *HatStatus) ProtoMessage() {}

// Reset implements proto.Message.
func (m *HatStatus) Reset() { *m = HatStatus{} }

// String implements proto.Message.
func (m *HatStatus) String() string { return proto.CompactTextString(m) }

// FrameBatch carries control frames to send in order.
type FrameBatch struct {
	Frames [][]byte `protobuf:"bytes,1,rep,name=frames,proto3" json:"frames,omitempty"`
}

// NewFrameBatch encodes commands into a FrameBatch.
func NewFrameBatch(frames ...link.ControlFrame) *FrameBatch {
	b := &FrameBatch{Frames: make([][]byte, len(frames))}
	for i := range frames {
		b.Frames[i] = append([]byte(nil), frames[i][:]...)
	}
	return b
}

// ControlFrames validates and returns the frames.
func (m *FrameBatch) ControlFrames() ([]link.ControlFrame, error) {
	frames := make([]link.ControlFrame, len(m.Frames))
	for i, b := range m.Frames {
		if len(b) != link.FrameSize {
			return nil, fmt.Errorf("frame %d: %w", i, link.ErrFrameSize)
		}
		copy(frames[i][:], b)
	}
	return frames, nil
}

// ProtoMessage implements proto.Message.
func (m *FrameBatch) ProtoMessage() {}

// Reset implements proto.Message.
func (m *FrameBatch) Reset() { *m = FrameBatch{} }

// String implements proto.Message.
func (m *FrameBatch) String() string { return proto.CompactTextString(m) }
