package main

import (
	"flag"
	"log"
	"strings"

	"github.com/golang/protobuf/proto"

	"github.com/robotalks/moab.go/pkg/bridge"
	fx "github.com/robotalks/moab.go/pkg/framework"
)

func init() {
	bridge.SetupFlags()
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q := bridge.NewConfig().MustNewQueue()
	defer q.Close()

	_, err := q.Subscribe("#", func(topic string, payload []byte) {
		var msg proto.Message
		switch {
		case strings.HasSuffix(topic, "/"+bridge.TopicStatus):
			msg = &bridge.HatStatus{}
		case strings.HasSuffix(topic, "/"+bridge.TopicFrames):
			msg = &bridge.FrameBatch{}
		default:
			log.Printf("%s: %d bytes", topic, len(payload))
			return
		}
		if err := proto.Unmarshal(payload, msg); err != nil {
			log.Printf("%s: bad message: %v", topic, err)
			return
		}
		log.Printf("%s: %s", topic, msg.String())
	})
	if err != nil {
		log.Fatalln(err)
	}
	<-fx.NewRunner().HandleSignals().Context.Done()
}
