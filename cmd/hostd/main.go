package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/moab.go/pkg/bridge"
	"github.com/robotalks/moab.go/pkg/device/periph"
	"github.com/robotalks/moab.go/pkg/device/serial"
	fx "github.com/robotalks/moab.go/pkg/framework"
	"github.com/robotalks/moab.go/pkg/host"
	"github.com/robotalks/moab.go/pkg/link"
)

var (
	spiPort     = periph.DefaultConfig().LinkPort
	spiHz       = periph.DefaultConfig().LinkHz
	serialPort  string
	baudRate    = serial.DefaultBaudRate
	readTimeout = 100 * time.Millisecond
)

func init() {
	host.SetupFlags()
	bridge.SetupFlags()
	flag.StringVar(&spiPort, "spi", spiPort, "SPI port of the hat link.")
	flag.Int64Var(&spiHz, "spi-hz", spiHz, "SPI clock of the hat link.")
	flag.StringVar(&serialPort, "serial", serialPort, "Use a serial hat link on this port instead of SPI.")
	flag.IntVar(&baudRate, "baud", baudRate, "Baud rate of the serial hat link.")
	flag.DurationVar(&readTimeout, "read-timeout", readTimeout, "Serial hat link read timeout.")
}

func openLink() (link.Exchanger, error) {
	if serialPort != "" {
		return serial.Open(serialPort, baudRate, true, readTimeout)
	}
	if err := periph.Init(); err != nil {
		return nil, err
	}
	return periph.OpenSPILink(spiPort, spiHz)
}

func main() {
	flag.Parse()

	hatLink, err := openLink()
	if err != nil {
		log.Fatalln(err)
	}

	conf := host.NewConfig()
	client := conf.NewClient(hatLink)
	manual := conf.NewManualController(client)

	bconf := bridge.NewConfig()
	b := bridge.New(nil, bconf.DeviceID())
	if bconf.MQTTBrokerURL != "" {
		q := bconf.MustNewQueue()
		defer q.Close()
		b.PubSub = q
	}

	runner := fx.NewRunner().HandleSignals()
	if bconf.FeedAddr != "" {
		feed := bridge.NewStatusFeed()
		b.WithFeed(feed)
		srv := &http.Server{Addr: bconf.FeedAddr, Handler: feed.Handler()}
		runner.Go(fx.NamedRun("feed", fx.RunFunc(func(ctx context.Context) error {
			go func() {
				<-ctx.Done()
				srv.Close()
			}()
			if err := srv.ListenAndServe(); err != http.ErrServerClosed {
				return err
			}
			return ctx.Err()
		})))
	}

	glog.Infof("host started as %s", b.ID)
	loop := fx.NewLoop(conf.Interval).Add(manual, b)
	runner.Go(fx.NamedRun("loop", loop))
	if err := runner.Wait(); err != nil {
		log.Fatalln(err)
	}
	if err := client.Hover(); err != nil {
		glog.Warningf("hover: %v", err)
	}
	if err := client.DisableServos(); err != nil {
		glog.Warningf("disable servos: %v", err)
	}
}
