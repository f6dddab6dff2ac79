package serial

import "github.com/robotalks/moab.go/pkg/link"

// Frames on the wire are wrapped as
//
//	syncByte, frame[0..FrameSize), checksum
//
// where checksum is the complement of the XOR of the frame bytes.
const (
	syncByte = 0xa5
	wireSize = link.FrameSize + 2
)

func checksum(frame []byte) byte {
	var sum byte
	for _, b := range frame {
		sum ^= b
	}
	return ^sum
}

// wrap encodes frame for the wire.
func wrap(frame []byte) []byte {
	out := make([]byte, 0, wireSize)
	out = append(out, syncByte)
	out = append(out, frame...)
	return append(out, checksum(frame))
}

type parseState int

const (
	stateSync parseState = iota // waiting for syncByte
	stateData                   // receiving frame bytes
	stateSum                    // waiting for checksum
)

// parser recovers frames from a byte stream. Bytes before a sync byte are
// skipped, and a frame failing the checksum is rescanned from the byte
// after its sync byte.
type parser struct {
	state   parseState
	frame   [link.FrameSize]byte
	recvLen int
	skipped int
}

// parse consumes one byte and reports whether a frame is complete.
func (p *parser) parse(b byte) bool {
	switch p.state {
	case stateSync:
		if b == syncByte {
			p.state, p.recvLen = stateData, 0
		} else {
			p.skipped++
		}
	case stateData:
		p.frame[p.recvLen] = b
		p.recvLen++
		if p.recvLen >= link.FrameSize {
			p.state = stateSum
		}
	case stateSum:
		p.state = stateSync
		if b == checksum(p.frame[:]) {
			return true
		}
		p.skipped++
		p.rescan(append(p.frame[:], b))
	}
	return false
}

// rescan feeds the bytes of a rejected frame again. They are shorter than
// a wrapped frame, so no frame completes here.
func (p *parser) rescan(data []byte) {
	for _, b := range data {
		p.parse(b)
	}
}

// partial returns the number of frame bytes received so far.
func (p *parser) partial() int {
	switch p.state {
	case stateData:
		return p.recvLen
	case stateSum:
		return link.FrameSize
	}
	return 0
}

// reset drops a partially received frame.
func (p *parser) reset() {
	p.state, p.recvLen = stateSync, 0
}
