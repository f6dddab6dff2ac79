package hat

import (
	"context"
	"errors"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/moab.go/pkg/link"
	"github.com/robotalks/moab.go/pkg/plate"
)

// Dispatcher drains the Queue and applies every frame to the plate and
// the display, in arrival order.
type Dispatcher struct {
	Queue   *Queue
	Plate   *plate.Plate
	Display Display
	// Timeout bounds each wait on the queue. Zero waits forever.
	Timeout time.Duration

	text  link.TextBuffer
	prior link.Code
}

// Run implements Runnable.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		frame, err := d.Queue.Get(ctx, d.Timeout)
		if errors.Is(err, ErrTimeout) {
			continue
		}
		if err != nil {
			return err
		}
		if err := d.Dispatch(frame); err != nil {
			glog.Errorf("dispatch %s: %v", frame.Code(), err)
		}
	}
}

// Dispatch applies one frame. An unknown code is logged and ignored.
func (d *Dispatcher) Dispatch(frame link.ControlFrame) error {
	code := frame.Code()
	defer func() { d.prior = code }()

	cmd, err := frame.Decode()
	if err != nil {
		glog.Warningf("Bad control byte: %x. Prior was: %x", byte(code), byte(d.prior))
		return nil
	}
	switch c := cmd.(type) {
	case link.Noop:
	case link.ServoEnable:
		return d.Plate.Enable(true)
	case link.ServoDisable:
		return d.Plate.Enable(false)
	case link.ControlInfo:
		glog.V(3).Infof("control info % x", c.Payload[:])
	case link.SetPlateAngles:
		return d.Plate.SetTilt(float64(c.ThetaX), float64(c.ThetaY))
	case link.SetServoAngles:
		var angles [plate.NumServos]float64
		for i, v := range c.Centidegrees {
			angles[i] = float64(v) / 100
		}
		return d.Plate.SetServoAngles(angles)
	case link.CopyString:
		return d.text.Append(c.Chunk)
	case link.ShowBigTextIcon:
		text := d.text.Commit()
		icon := DisplayIcon(c.Icon)
		if !icon.Valid() {
			return &InvalidIconError{Icon: c.Icon}
		}
		return d.show(func(disp Display) error { return disp.ShowBigTextIcon(text, icon) }, text)
	case link.ShowBigText:
		text := d.text.Commit()
		return d.show(func(disp Display) error { return disp.ShowBigText(text) }, text)
	case link.ShowSmallText:
		text := d.text.Commit()
		return d.show(func(disp Display) error { return disp.ShowSmallText(text) }, text)
	case link.ShowPowerIcon:
		text := d.text.Commit()
		icon := PowerIcon(c.Icon)
		if !icon.Valid() {
			return &InvalidIconError{Icon: c.Icon, Power: true}
		}
		return d.show(func(disp Display) error { return disp.ShowPowerIcon(text, icon) }, text)
	}
	return nil
}

func (d *Dispatcher) show(fn func(Display) error, text string) error {
	if d.Display == nil {
		glog.Infof("display: %q", text)
		return nil
	}
	return fn(d.Display)
}
