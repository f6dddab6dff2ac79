package host

import (
	"github.com/golang/glog"

	fx "github.com/robotalks/moab.go/pkg/framework"
	"github.com/robotalks/moab.go/pkg/link"
)

// FramesMsg asks the loop to send raw frames to the hat.
type FramesMsg struct {
	Frames []link.ControlFrame
}

// StatusMsg is posted when the hat status changes.
type StatusMsg struct {
	Status link.Status
	Manual bool
}

// ManualController tilts the plate following the joystick. A joystick
// press engages the servos and a menu press hovers the plate and
// releases them.
type ManualController struct {
	Client   *Client
	MaxAngle float64

	active bool
	status link.Status
	polled bool
}

// NewManualController creates a ManualController.
func (c *Config) NewManualController(client *Client) *ManualController {
	return &ManualController{Client: client, MaxAngle: c.MaxAngle}
}

// AddToLoop implements LoopAdder.
func (m *ManualController) AddToLoop(loop *fx.Loop) {
	loop.AddController(fx.PrLvControl, m)
}

// Active reports whether the joystick drives the plate.
func (m *ManualController) Active() bool {
	return m.active
}

// Tilt maps a joystick position in percent to plate angles.
func (m *ManualController) Tilt(s link.Status) (x, y float64) {
	return -float64(s.Y) * m.MaxAngle / 100, float64(s.X) * m.MaxAngle / 100
}

// Control implements Controller.
func (m *ManualController) Control(cc fx.ControlContext) error {
	var errs fx.AggregatedError
	sent := false
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mctx fx.MessageProcessingContext) {
		if msg, ok := mctx.CurrentMessage().(*FramesMsg); ok {
			mctx.MessageTaken()
			_, err := m.Client.Send(msg.Frames...)
			errs.Add(err)
			sent = true
		}
	}))

	var err error
	switch {
	case m.active:
		err = m.Client.SetPlateAngles(m.Tilt(m.Client.Status()))
	case !sent:
		_, err = m.Client.Poll()
	}
	errs.Add(err)

	status, prev, wasActive := m.Client.Status(), m.status, m.active
	switch {
	case status.Buttons.Joystick() && !prev.Buttons.Joystick() && !m.active:
		errs.Add(m.engage())
	case status.Buttons.Menu() && !prev.Buttons.Menu() && m.active:
		errs.Add(m.release())
	}
	if !m.polled || status != prev || m.active != wasActive {
		cc.PostMessage(&StatusMsg{Status: status, Manual: m.active})
	}
	m.status, m.polled = status, true
	return errs.Aggregate()
}

func (m *ManualController) engage() error {
	if err := m.Client.EnableServos(); err != nil {
		return err
	}
	m.active = true
	glog.Info("manual control engaged")
	return nil
}

func (m *ManualController) release() error {
	m.active = false
	glog.Info("manual control released")
	var errs fx.AggregatedError
	return errs.Add(m.Client.Hover(), m.Client.DisableServos()).Aggregate()
}
