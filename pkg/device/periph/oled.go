package periph

import (
	"fmt"
	"image"
	"strings"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"github.com/robotalks/moab.go/pkg/hat"
)

// Screen geometry.
const (
	screenW = 128
	screenH = 64
	iconDim = 8
	// bigScale magnifies the 7x13 face for big text.
	bigScale = 2
)

// Drawer is the part of ssd1306.Dev used by OLED.
type Drawer interface {
	Bounds() image.Rectangle
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
}

// OLED renders hat display commands on an SSD1306.
type OLED struct {
	Dev Drawer

	lock sync.Mutex
	last *image1bit.VerticalLSB
}

// NewOLED opens an SSD1306 over SPI.
func NewOLED(port spi.Port, dc gpio.PinOut) (*OLED, error) {
	opts := ssd1306.DefaultOpts
	dev, err := ssd1306.NewSPI(port, dc, &opts)
	if err != nil {
		return nil, fmt.Errorf("ssd1306: %w", err)
	}
	return &OLED{Dev: dev}, nil
}

// ShowBigTextIcon implements hat.Display.
func (o *OLED) ShowBigTextIcon(text string, icon hat.DisplayIcon) error {
	img := newScreen()
	drawBigText(img, text, iconDim*bigScale+2)
	drawIcon(img, displayIcons[icon], image.Pt(0, (screenH-iconDim*bigScale)/2), bigScale)
	return o.show(img)
}

// ShowBigText implements hat.Display.
func (o *OLED) ShowBigText(text string) error {
	img := newScreen()
	drawBigText(img, text, 0)
	return o.show(img)
}

// ShowSmallText implements hat.Display.
func (o *OLED) ShowSmallText(text string) error {
	img := newScreen()
	d := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}
	for i, line := range wrap(text, screenW/basicfont.Face7x13.Advance) {
		y := (i + 1) * basicfont.Face7x13.Height
		if y > screenH {
			break
		}
		d.Dot = fixed.P(0, y-basicfont.Face7x13.Descent)
		d.DrawString(line)
	}
	return o.show(img)
}

// ShowPowerIcon implements hat.Display.
func (o *OLED) ShowPowerIcon(text string, icon hat.PowerIcon) error {
	img := newScreen()
	dim := iconDim * bigScale * 2
	drawIcon(img, powerIcons[icon], image.Pt((screenW-dim)/2, 0), bigScale*2)
	d := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}
	width := d.MeasureString(text).Ceil()
	d.Dot = fixed.P((screenW-width)/2, screenH-basicfont.Face7x13.Descent)
	d.DrawString(text)
	return o.show(img)
}

// Frame returns the last rendered frame.
func (o *OLED) Frame() *image1bit.VerticalLSB {
	o.lock.Lock()
	defer o.lock.Unlock()
	return o.last
}

func (o *OLED) show(img *image1bit.VerticalLSB) error {
	o.lock.Lock()
	defer o.lock.Unlock()
	o.last = img
	if o.Dev == nil {
		return nil
	}
	return o.Dev.Draw(o.Dev.Bounds(), img, image.Point{})
}

func newScreen() *image1bit.VerticalLSB {
	return image1bit.NewVerticalLSB(image.Rect(0, 0, screenW, screenH))
}

// drawBigText renders text vertically centered at 2x from column left.
func drawBigText(dst *image1bit.VerticalLSB, text string, left int) {
	face := basicfont.Face7x13
	small := image1bit.NewVerticalLSB(image.Rect(0, 0, (screenW-left)/bigScale, face.Height))
	d := &font.Drawer{
		Dst:  small,
		Src:  &image.Uniform{image1bit.On},
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(text)
	top := (screenH - face.Height*bigScale) / 2
	dr := image.Rect(left, top, left+small.Bounds().Dx()*bigScale, top+face.Height*bigScale)
	draw.NearestNeighbor.Scale(dst, dr, small, small.Bounds(), draw.Over, nil)
}

// drawIcon draws an 8x8 bitmap, one byte per row, MSB on the left.
func drawIcon(dst *image1bit.VerticalLSB, bitmap [iconDim]byte, at image.Point, scale int) {
	for row, bits := range bitmap {
		for col := 0; col < iconDim; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					dst.SetBit(at.X+col*scale+dx, at.Y+row*scale+dy, image1bit.On)
				}
			}
		}
	}
}

// wrap breaks text into lines of at most width characters at spaces.
func wrap(text string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		for len(word) > width {
			if line.Len() > 0 {
				lines = append(lines, line.String())
				line.Reset()
			}
			lines = append(lines, word[:width])
			word = word[width:]
		}
		if line.Len() > 0 && line.Len()+1+len(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

var displayIcons = map[hat.DisplayIcon][iconDim]byte{
	hat.IconBlank:  {},
	hat.IconUpDown: {0x18, 0x3c, 0x7e, 0x18, 0x18, 0x7e, 0x3c, 0x18},
	hat.IconDown:   {0x18, 0x18, 0x18, 0x18, 0xff, 0x7e, 0x3c, 0x18},
	hat.IconUp:     {0x18, 0x3c, 0x7e, 0xff, 0x18, 0x18, 0x18, 0x18},
	hat.IconDot:    {0x00, 0x3c, 0x7e, 0x7e, 0x7e, 0x7e, 0x3c, 0x00},
	hat.IconPause:  {0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66},
	hat.IconCheck:  {0x00, 0x01, 0x03, 0x06, 0x8c, 0xd8, 0x70, 0x20},
	hat.IconX:      {0xc3, 0x66, 0x3c, 0x18, 0x18, 0x3c, 0x66, 0xc3},
}

var powerIcons = map[hat.PowerIcon][iconDim]byte{
	hat.PowerSymbol: {0x18, 0x5a, 0x99, 0x99, 0x81, 0x81, 0x42, 0x3c},
	hat.PowerToggle: {0x3c, 0x42, 0x99, 0x99, 0x99, 0x81, 0x42, 0x3c},
	hat.PowerOn:     {0x18, 0x18, 0x18, 0x18, 0x18, 0x18, 0x18, 0x18},
	hat.PowerSleep:  {0x1c, 0x38, 0x70, 0x60, 0x60, 0x70, 0x38, 0x1c},
	hat.PowerOff:    {0x3c, 0x42, 0x81, 0x81, 0x81, 0x81, 0x42, 0x3c},
}
