package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/flate"

	"uboterm/internal/storepb"
)

var (
	// ErrFrameSize is returned when the pixel data does not match the
	// declared dimensions.
	ErrFrameSize = errors.New("frame size mismatch")
	// ErrNotRenderEvent is returned for events that carry no frame.
	ErrNotRenderEvent = errors.New("event carries no display frame")
)

// BytesPerPixel is the size of one RGBA pixel.
const BytesPerPixel = 4

// Frame is one full RGBA image of the device display.
type Frame struct {
	Data   []byte
	Width  int
	Height int
}

// Validate checks that Data holds exactly Width*Height RGBA pixels.
func (f Frame) Validate() error {
	want, err := frameBytes(f.Width, f.Height)
	if err != nil {
		return err
	}
	if len(f.Data) != want {
		return fmt.Errorf("%w: %dx%d needs %d bytes, got %d", ErrFrameSize, f.Width, f.Height, want, len(f.Data))
	}
	return nil
}

// frameBytes returns the buffer size of a width x height frame. Dimensions
// come from the server, so the product is checked for overflow.
func frameBytes(width, height int) (int, error) {
	if width < 0 || height < 0 {
		return 0, fmt.Errorf("%w: negative dimensions %dx%d", ErrFrameSize, width, height)
	}
	if width > 0 && height > math.MaxInt/BytesPerPixel/width {
		return 0, fmt.Errorf("%w: %dx%d is too large", ErrFrameSize, width, height)
	}
	return width * height * BytesPerPixel, nil
}

// FrameFromEvent extracts and validates the frame carried by ev. Compressed
// frames are inflated first. The rectangle's offset is ignored; the frame
// always covers the whole display.
func FrameFromEvent(ev storepb.Event) (Frame, error) {
	var f Frame
	switch e := ev.(type) {
	case *storepb.DisplayRender:
		if e == nil {
			return Frame{}, ErrNotRenderEvent
		}
		f = Frame{Data: e.Data, Width: e.Rectangle.Width, Height: e.Rectangle.Height}
	case *storepb.DisplayCompressedRender:
		if e == nil {
			return Frame{}, ErrNotRenderEvent
		}
		want, err := frameBytes(e.Rectangle.Width, e.Rectangle.Height)
		if err != nil {
			return Frame{}, err
		}
		data, err := Inflate(e.CompressedData, want)
		if err != nil {
			return Frame{}, err
		}
		f = Frame{Data: data, Width: e.Rectangle.Width, Height: e.Rectangle.Height}
	default:
		return Frame{}, fmt.Errorf("%w: %s", ErrNotRenderEvent, storepb.EventKind(ev))
	}

	if err := f.Validate(); err != nil {
		return Frame{}, err
	}
	return f, nil
}

// Inflate decompresses raw DEFLATE data that may expand to at most want
// bytes. It never reads more than want+1 bytes of output.
func Inflate(data []byte, want int) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()

	out, err := io.ReadAll(io.LimitReader(r, int64(want)+1))
	if err != nil {
		return nil, fmt.Errorf("inflate frame: %w", err)
	}
	if len(out) > want {
		return nil, fmt.Errorf("%w: compressed frame expands past %d bytes", ErrFrameSize, want)
	}
	return out, nil
}
