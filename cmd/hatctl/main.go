package main

import (
	"github.com/robotalks/moab.go/pkg/bridge"
	"github.com/robotalks/moab.go/pkg/cli/sh"

	_ "github.com/robotalks/moab.go/pkg/cli/cmds/display"
	_ "github.com/robotalks/moab.go/pkg/cli/cmds/plate"
)

//go-build: CGO_ENABLED=0

func init() {
	bridge.SetupFlags()
}

func main() {
	sh.Main()
}
