package link

import "bytes"

// MaxText is the capacity of the text buffer.
const MaxText = 240

// TextBuffer accumulates CopyString chunks until a commit code displays
// them. It is owned by a single goroutine.
type TextBuffer struct {
	buf    [MaxText + 1]byte
	cursor int
}

// Len returns the number of accumulated bytes.
func (t *TextBuffer) Len() int {
	return t.cursor
}

// Append copies a chunk at the cursor. The chunk is rejected without
// moving the cursor if it does not fit.
func (t *TextBuffer) Append(chunk [PayloadSize]byte) error {
	if t.cursor+PayloadSize > MaxText {
		return ErrTextOverflow
	}
	if t.cursor == 0 {
		t.buf = [MaxText + 1]byte{}
	}
	copy(t.buf[t.cursor:], chunk[:])
	t.cursor += PayloadSize
	return nil
}

// Commit terminates the buffer at the cursor, resets the cursor and
// returns the text up to the first NUL.
func (t *TextBuffer) Commit() string {
	t.buf[t.cursor] = 0
	t.cursor = 0
	text := t.buf[:]
	if n := bytes.IndexByte(text, 0); n >= 0 {
		text = text[:n]
	}
	return string(text)
}

// MaxChunks is the number of CopyString frames the text buffer accepts.
const MaxChunks = MaxText / PayloadSize

// SplitText encodes text as CopyString frames. Text beyond MaxChunks
// frames is truncated.
func SplitText(text string) []ControlFrame {
	if len(text) > MaxChunks*PayloadSize {
		text = text[:MaxChunks*PayloadSize]
	}
	frames := make([]ControlFrame, 0, (len(text)+PayloadSize-1)/PayloadSize)
	for len(text) > 0 {
		var cmd CopyString
		n := copy(cmd.Chunk[:], text)
		text = text[n:]
		frames = append(frames, cmd.Encode())
	}
	return frames
}
