package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/moab.go/pkg/calibration"
	"github.com/robotalks/moab.go/pkg/device/periph"
	"github.com/robotalks/moab.go/pkg/device/serial"
	fx "github.com/robotalks/moab.go/pkg/framework"
	"github.com/robotalks/moab.go/pkg/hat"
)

var (
	hatConfigFile   string
	boardConfigFile string
	calibrationFile = "/var/lib/moab/calibration.otp"
	serialPort      = "/dev/serial0"
	baudRate        = serial.DefaultBaudRate
	readTimeout     = time.Second
	resetServo      string
	dumpBanks       bool
)

func init() {
	if val := os.Getenv("MOAB_CALIBRATION"); val != "" {
		calibrationFile = val
	}
	hat.SetupFlags()
	flag.StringVar(&hatConfigFile, "config", hatConfigFile, "Hat config file, overrides flags.")
	flag.StringVar(&boardConfigFile, "board", boardConfigFile, "Board wiring config file.")
	flag.StringVar(&calibrationFile, "calibration", calibrationFile, "Calibration storage file.")
	flag.StringVar(&serialPort, "serial", serialPort, "Serial port of the host link.")
	flag.IntVar(&baudRate, "baud", baudRate, "Baud rate of the host link.")
	flag.DurationVar(&readTimeout, "read-timeout", readTimeout, "Host link read timeout.")
	flag.StringVar(&resetServo, "reset-servo", resetServo, "Write factory servo calibration with the TOKEN and exit.")
	flag.BoolVar(&dumpBanks, "dump-banks", dumpBanks, "Print calibration banks and exit.")
}

func main() {
	flag.Parse()

	otp, err := calibration.OpenFileOTP(calibrationFile)
	if err != nil {
		log.Fatalln(err)
	}
	defer otp.Close()

	switch {
	case dumpBanks:
		if err := calibration.NewStore(otp).Dump(os.Stdout); err != nil {
			log.Fatalln(err)
		}
		return
	case resetServo != "":
		bank, err := calibration.NewStore(otp).ResetServo(resetServo)
		if err != nil {
			log.Fatalln(err)
		}
		log.Printf("servo calibration reset in bank %d", bank)
		return
	}

	conf := hat.NewConfig()
	if hatConfigFile != "" {
		if conf, err = hat.LoadFile(hatConfigFile); err != nil {
			log.Fatalln(err)
		}
	}
	boardConf := periph.DefaultConfig()
	if boardConfigFile != "" {
		loaded, err := periph.LoadConfig(boardConfigFile)
		if err != nil {
			log.Fatalln(err)
		}
		boardConf = *loaded
	}
	board, err := periph.OpenBoard(&boardConf)
	if err != nil {
		log.Fatalln(err)
	}
	defer board.Close()

	hostLink, err := serial.Open(serialPort, baudRate, false, readTimeout)
	if err != nil {
		log.Fatalln(err)
	}

	dev := hat.Devices{
		Link:     hostLink,
		ADC:      board.ADC,
		Menu:     board.Menu,
		Joystick: board.Joystick,
		Actuator: board.Servos,
		Storage:  otp,
	}
	if board.Display != nil {
		dev.Display = board.Display
	}
	h := conf.MustNew(dev)

	glog.Infof("hat started on %s", serialPort)
	if err := fx.NewRunner().HandleSignals().Go(h).Wait(); err != nil {
		log.Fatalln(err)
	}
}
