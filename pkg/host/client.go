package host

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/moab.go/pkg/link"
	"github.com/robotalks/moab.go/pkg/plate"
)

// Tilt coefficients of servos 2 and 3 when mixing servo offsets into
// plate angles.
const (
	xTiltServo = -0.5
	yTiltServo = 0.866
)

// DisplayMode selects the commit code used by Display.
type DisplayMode int

// Display modes.
const (
	DisplayBigTextIcon DisplayMode = iota
	DisplayBigText
	DisplaySmallText
	DisplayPowerIcon
)

var displayCommits = map[DisplayMode]func(icon byte) link.Command{
	DisplayBigTextIcon: func(icon byte) link.Command { return link.ShowBigTextIcon{Icon: icon} },
	DisplayBigText:     func(byte) link.Command { return link.ShowBigText{} },
	DisplaySmallText:   func(byte) link.Command { return link.ShowSmallText{} },
	DisplayPowerIcon:   func(icon byte) link.Command { return link.ShowPowerIcon{Icon: icon} },
}

// Client sends control frames to the hat. Calls are serialized so a text
// sequence is never interleaved with other frames.
type Client struct {
	Link link.Exchanger
	// Offsets are added to plate angles, one per servo, in degrees.
	Offsets [3]float64
	// ExchangeDelay is slept after every exchange.
	ExchangeDelay time.Duration
	// ChunkDelay is slept after every text chunk.
	ChunkDelay time.Duration

	lock   sync.Mutex
	status link.Status
}

// NewClient creates a Client with the delays in conf.
func (c *Config) NewClient(l link.Exchanger) *Client {
	return &Client{
		Link:          l,
		Offsets:       c.ServoOffsets,
		ExchangeDelay: c.ExchangeDelay,
		ChunkDelay:    c.ChunkDelay,
	}
}

// Status returns the status received in the last exchange.
func (c *Client) Status() link.Status {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.status
}

func (c *Client) exchangeLocked(frame link.ControlFrame) error {
	var rx link.StatusFrame
	n, err := c.Link.Exchange(frame[:], rx[:])
	if err != nil {
		return fmt.Errorf("exchange %s: %w", frame.Code(), err)
	}
	if n != link.FrameSize {
		return fmt.Errorf("exchange %s: %w", frame.Code(), link.ErrShortExchange)
	}
	status, err := link.DecodeStatus(rx[:])
	if err != nil {
		return err
	}
	c.status = status
	glog.V(5).Infof("tx % x rx % x", frame[:], rx[:])
	if c.ExchangeDelay > 0 {
		time.Sleep(c.ExchangeDelay)
	}
	return nil
}

// Send exchanges the frames in order and returns the last status.
func (c *Client) Send(frames ...link.ControlFrame) (link.Status, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	for _, f := range frames {
		if err := c.exchangeLocked(f); err != nil {
			return c.status, err
		}
	}
	return c.status, nil
}

func (c *Client) sendCommand(cmd link.Command) error {
	_, err := c.Send(cmd.Encode())
	return err
}

// Poll sends a no-op to read the buttons and the joystick.
func (c *Client) Poll() (link.Status, error) {
	return c.Send(link.Noop{}.Encode())
}

// EnableServos powers the servos.
func (c *Client) EnableServos() error {
	return c.sendCommand(link.ServoEnable{})
}

// DisableServos removes servo power.
func (c *Client) DisableServos() error {
	return c.sendCommand(link.ServoDisable{})
}

// SetPlateAngles tilts the plate, angles in degrees. The servo offsets are
// mixed in and the result is rounded to whole degrees.
func (c *Client) SetPlateAngles(x, y float64) error {
	x, y = MixOffsets(x, y, c.Offsets)
	return c.sendCommand(link.SetPlateAngles{ThetaX: toInt8(x), ThetaY: toInt8(y)})
}

// MixOffsets applies per-servo offsets to plate angles.
func MixOffsets(x, y float64, offsets [3]float64) (float64, float64) {
	x += offsets[0] + xTiltServo*offsets[1] + xTiltServo*offsets[2]
	y += yTiltServo*offsets[1] - yTiltServo*offsets[2]
	return x, y
}

// SetServoAngles sets the angle of servos 1..3 in degrees. The hat drives
// its channels 0..2 from servos 3, 1 and 2.
func (c *Client) SetServoAngles(angles [3]float64) error {
	return c.sendCommand(link.SetServoAngles{Centidegrees: [3]uint16{
		toCentidegrees(angles[2]),
		toCentidegrees(angles[0]),
		toCentidegrees(angles[1]),
	}})
}

// Hover moves all servos to the hover angle.
func (c *Client) Hover() error {
	return c.SetServoAngles([3]float64{plate.HoverAngle, plate.HoverAngle, plate.HoverAngle})
}

// Display copies text to the hat and commits it in the mode. The hat font
// only has upper case letters.
func (c *Client) Display(text string, mode DisplayMode, icon byte) error {
	commit, ok := displayCommits[mode]
	if !ok {
		return fmt.Errorf("unknown display mode %d", mode)
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	for _, f := range link.SplitText(strings.ToUpper(text)) {
		if err := c.exchangeLocked(f); err != nil {
			return err
		}
		if c.ChunkDelay > 0 {
			time.Sleep(c.ChunkDelay)
		}
	}
	return c.exchangeLocked(commit(icon).Encode())
}

func toInt8(v float64) int8 {
	return int8(math.Max(math.MinInt8, math.Min(math.MaxInt8, math.Round(v))))
}

func toCentidegrees(deg float64) uint16 {
	return uint16(math.Max(0, math.Min(math.MaxUint16, deg*100)))
}
