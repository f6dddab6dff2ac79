package sh

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/abiosoft/ishell"
	"github.com/golang/protobuf/proto"

	"github.com/robotalks/moab.go/pkg/bridge"
	"github.com/robotalks/moab.go/pkg/host"
	"github.com/robotalks/moab.go/pkg/link"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool

	Shell  *ishell.Shell
	Config *bridge.Config
	PubSub bridge.PubSub

	device string
	sub    io.Closer
	lock   sync.Mutex
	status *bridge.HatStatus
}

const (
	shellKey          = "$shell"
	unconnectedPrompt = "[none] > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool

	// commands
	commands = []*ishell.Cmd{
		&ConnectCmd,
		&DisconnectCmd,
		&StatusCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *bridge.Config, ps bridge.PubSub) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:  ishell.New(),
		Config: conf,
		PubSub: ps,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unconnectedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeConnected wraps command func requires a connection.
func MustBeConnected(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Device() == "" {
			c.Err(fmt.Errorf("not connected"))
			return
		}
		fn(c)
	}
}

// Device returns the connected device ID.
func (s *Shell) Device() string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.device
}

// Status returns the last status received from the device.
func (s *Shell) Status() *bridge.HatStatus {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.status
}

// Connect follows the status of a device and directs frames to it.
func (s *Shell) Connect(id string) error {
	s.Disconnect()
	sub, err := s.PubSub.Subscribe(id+"/"+bridge.TopicStatus, func(topic string, payload []byte) {
		var status bridge.HatStatus
		if err := proto.Unmarshal(payload, &status); err != nil {
			return
		}
		s.lock.Lock()
		s.status = &status
		s.lock.Unlock()
	})
	if err != nil {
		return err
	}
	s.lock.Lock()
	s.device, s.sub = id, sub
	s.lock.Unlock()
	s.Shell.SetPrompt(fmt.Sprintf("%s > ", id))
	return nil
}

// Disconnect stops following the current device.
func (s *Shell) Disconnect() {
	s.lock.Lock()
	sub := s.sub
	s.device, s.sub, s.status = "", nil, nil
	s.lock.Unlock()
	if sub != nil {
		sub.Close()
		s.Shell.SetPrompt(unconnectedPrompt)
	}
}

// Record captures the frames a host.Client produces in fn.
func Record(fn func(*host.Client) error) ([]link.ControlFrame, error) {
	var frames []link.ControlFrame
	client := &host.Client{Link: link.ExchangeFunc(func(tx, rx []byte) (int, error) {
		var f link.ControlFrame
		copy(f[:], tx)
		frames = append(frames, f)
		return link.FrameSize, nil
	})}
	if err := fn(client); err != nil {
		return nil, err
	}
	return frames, nil
}

// SendFrames publishes frames to the connected device.
func (s *Shell) SendFrames(frames ...link.ControlFrame) error {
	id := s.Device()
	if id == "" {
		return fmt.Errorf("not connected")
	}
	payload, err := proto.Marshal(bridge.NewFrameBatch(frames...))
	if err != nil {
		return err
	}
	return s.PubSub.Publish(id+"/"+bridge.TopicFrames, payload)
}

// Do records the frames produced by fn and sends them.
func Do(c *ishell.Context, fn func(*host.Client) error) error {
	frames, err := Record(fn)
	if err == nil {
		err = ShellFrom(c).SendFrames(frames...)
	}
	if err != nil {
		c.Err(err)
		return err
	}
	c.Println("OK")
	return nil
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if id := s.Config.ID; id != "" {
		if err := s.Connect(id); err != nil {
			log.Fatalf("connect %q failed: %v", id, err)
		}
	}
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

var (
	// ConnectCmd connects a device.
	ConnectCmd = ishell.Cmd{
		Name:    "connect",
		Aliases: []string{"c"},
		Help:    "ID",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Err(fmt.Errorf("device ID expected"))
				return
			}
			if err := ShellFrom(c).Connect(c.Args[0]); err != nil {
				c.Err(err)
			}
		},
	}

	// DisconnectCmd disconnects current device.
	DisconnectCmd = ishell.Cmd{
		Name:    "disconnect",
		Aliases: []string{"d"},
		Help:    "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Disconnect()
		},
	}

	// StatusCmd prints the last status.
	StatusCmd = ishell.Cmd{
		Name:    "status",
		Aliases: []string{"s"},
		Help:    "",
		Func: MustBeConnected(func(c *ishell.Context) {
			s := ShellFrom(c)
			status := s.Status()
			if status == nil {
				c.Println("no status received")
				return
			}
			if s.OutputJSON {
				out, err := json.Marshal(status)
				if err != nil {
					c.Err(err)
					return
				}
				c.Println(string(out))
				return
			}
			c.Printf("menu=%v joystick=%v x=%d y=%d manual=%v seq=%d\n",
				status.Menu, status.Joystick, status.JoyX, status.JoyY, status.Manual, status.Seq)
		}),
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	conf := bridge.NewConfig()
	q := conf.MustNewQueue()
	defer q.Close()
	New(conf, q).Run(flag.Args()...)
}
