package framework

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoopPriorityAndMessages(t *testing.T) {
	var order []string
	var seen []Message
	loop := NewLoop(0)
	loop.AddController(PrLvActuate, ControlFunc(func(cc ControlContext) error {
		order = append(order, "actuate")
		cc.Messages().ProcessMessages(ProcessMessageFunc(func(mc MessageProcessingContext) {
			seen = append(seen, mc.CurrentMessage())
			mc.MessageTaken()
		}))
		return nil
	}))
	loop.AddController(PrLvSense, ControlFunc(func(cc ControlContext) error {
		order = append(order, "sense")
		require.Equal(t, PrLvSense, cc.PriorityLevel())
		cc.Messages().ProcessMessages(ProcessMessageFunc(func(mc MessageProcessingContext) {
			if mc.CurrentMessage() == "sense-only" {
				mc.MessageTaken()
			}
		}))
		return nil
	}))

	loop.PostMessage("sense-only")
	loop.PostMessage("both")
	loop.RunIteration(context.Background())
	require.Equal(t, []string{"sense", "actuate"}, order)
	require.Equal(t, []Message{"both"}, seen)

	seen = nil
	loop.RunIteration(context.Background())
	require.Empty(t, seen)
}

func TestLoopTriggerNext(t *testing.T) {
	loop := NewLoop(time.Hour)
	ran := make(chan struct{}, 1)
	loop.AddController(PrLvControl, ControlFunc(func(cc ControlContext) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)
	loop.TriggerNext()
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("iteration not triggered")
	}
}
