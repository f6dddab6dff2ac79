package periph

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// SPILink is the master side of the hat link.
type SPILink struct {
	port spi.PortCloser
	conn spi.Conn
}

// OpenSPILink opens the SPI port in mode 0 with 8-bit words.
func OpenSPILink(name string, hz int64) (*SPILink, error) {
	port, err := spireg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open SPI %q: %w", name, err)
	}
	conn, err := port.Connect(physic.Frequency(hz)*physic.Hertz, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("connect SPI %q: %w", name, err)
	}
	return &SPILink{port: port, conn: conn}, nil
}

// Exchange implements link.Exchanger. Both buffers must have the same
// length.
func (l *SPILink) Exchange(tx, rx []byte) (int, error) {
	if len(rx) < len(tx) {
		return 0, fmt.Errorf("rx buffer %d shorter than tx %d", len(rx), len(tx))
	}
	if err := l.conn.Tx(tx, rx[:len(tx)]); err != nil {
		return 0, err
	}
	return len(tx), nil
}

// Close releases the port.
func (l *SPILink) Close() error {
	return l.port.Close()
}
