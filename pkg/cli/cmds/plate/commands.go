package plate

import (
	"fmt"
	"strconv"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/moab.go/pkg/cli/sh"
	"github.com/robotalks/moab.go/pkg/host"
)

func parseFloats(args []string, names ...string) ([]float64, error) {
	if len(args) < len(names) {
		return nil, fmt.Errorf("%v required", names)
	}
	vals := make([]float64, len(names))
	for i, name := range names {
		val, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return nil, fmt.Errorf("Invalid %s: %v", name, err)
		}
		vals[i] = val
	}
	return vals, nil
}

var (
	// ServoOnCmd powers the servos.
	ServoOnCmd = ishell.Cmd{
		Name:    "servo.on",
		Aliases: []string{"on"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.Do(c, (*host.Client).EnableServos)
		}),
	}

	// ServoOffCmd removes servo power.
	ServoOffCmd = ishell.Cmd{
		Name:    "servo.off",
		Aliases: []string{"off"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.Do(c, (*host.Client).DisableServos)
		}),
	}

	// TiltCmd tilts the plate.
	TiltCmd = ishell.Cmd{
		Name:    "plate.tilt",
		Aliases: []string{"tilt"},
		Help:    "X(degrees) Y(degrees)",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			vals, err := parseFloats(c.Args, "X", "Y")
			if err != nil {
				c.Err(err)
				return
			}
			sh.Do(c, func(client *host.Client) error {
				return client.SetPlateAngles(vals[0], vals[1])
			})
		}),
	}

	// ServosCmd sets the servo angles.
	ServosCmd = ishell.Cmd{
		Name:    "plate.servos",
		Aliases: []string{"servos"},
		Help:    "S1(degrees) S2(degrees) S3(degrees)",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			vals, err := parseFloats(c.Args, "S1", "S2", "S3")
			if err != nil {
				c.Err(err)
				return
			}
			sh.Do(c, func(client *host.Client) error {
				return client.SetServoAngles([3]float64{vals[0], vals[1], vals[2]})
			})
		}),
	}

	// HoverCmd moves the plate to the hover position.
	HoverCmd = ishell.Cmd{
		Name:    "plate.hover",
		Aliases: []string{"hover"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.Do(c, (*host.Client).Hover)
		}),
	}
)

func init() {
	sh.AddCmds(
		&ServoOnCmd,
		&ServoOffCmd,
		&TiltCmd,
		&ServosCmd,
		&HoverCmd,
	)
}
