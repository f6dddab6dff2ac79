package display

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/moab.go/pkg/cli/sh"
	"github.com/robotalks/moab.go/pkg/host"
	"github.com/robotalks/moab.go/pkg/link"
)

var modes = map[string]host.DisplayMode{
	"icon":  host.DisplayBigTextIcon,
	"big":   host.DisplayBigText,
	"small": host.DisplaySmallText,
	"power": host.DisplayPowerIcon,
}

// ParseText parses MODE [ICON] TEXT... arguments.
func ParseText(args []string) (text string, mode host.DisplayMode, icon byte, err error) {
	if len(args) < 1 {
		return "", 0, 0, fmt.Errorf("MODE required")
	}
	mode, ok := modes[args[0]]
	if !ok {
		return "", 0, 0, fmt.Errorf("Invalid MODE %q", args[0])
	}
	args = args[1:]
	if mode == host.DisplayBigTextIcon || mode == host.DisplayPowerIcon {
		if len(args) < 1 {
			return "", 0, 0, fmt.Errorf("ICON required")
		}
		val, err := strconv.ParseUint(args[0], 0, 8)
		if err != nil {
			return "", 0, 0, fmt.Errorf("Invalid ICON: %v", err)
		}
		icon, args = byte(val), args[1:]
	}
	return strings.Join(args, " "), mode, icon, nil
}

// ParseFrame parses a frame in hex, shorter input is zero padded.
func ParseFrame(s string) (f link.ControlFrame, err error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return f, err
	}
	if len(b) == 0 || len(b) > link.FrameSize {
		return f, fmt.Errorf("1 to %d bytes expected", link.FrameSize)
	}
	copy(f[:], b)
	return f, nil
}

var (
	// TextCmd displays text.
	TextCmd = ishell.Cmd{
		Name:    "display.text",
		Aliases: []string{"text"},
		Help:    "icon|big|small|power [ICON] TEXT...",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			text, mode, icon, err := ParseText(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			sh.Do(c, func(client *host.Client) error {
				return client.Display(text, mode, icon)
			})
		}),
	}

	// RawCmd sends frames given in hex.
	RawCmd = ishell.Cmd{
		Name:    "raw",
		Aliases: []string{"x"},
		Help:    "HEX...",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			frames := make([]link.ControlFrame, 0, len(c.Args))
			for _, arg := range c.Args {
				f, err := ParseFrame(arg)
				if err != nil {
					c.Err(fmt.Errorf("frame %q: %v", arg, err))
					return
				}
				frames = append(frames, f)
			}
			if err := sh.ShellFrom(c).SendFrames(frames...); err != nil {
				c.Err(err)
				return
			}
			c.Println("OK")
		}),
	}
)

func init() {
	sh.AddCmds(
		&TextCmd,
		&RawCmd,
	)
}
