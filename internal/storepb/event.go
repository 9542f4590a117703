package storepb

import "fmt"

// Event reports something that happened on the device.
type Event interface {
	isEvent()
}

// Rectangle is the display region an event covers, encoded on the wire as
// the four-element list [x, y, width, height].
type Rectangle struct {
	_      struct{} `cbor:",toarray"`
	X      int
	Y      int
	Width  int
	Height int
}

// Rect builds a Rectangle.
func Rect(x, y, width, height int) Rectangle {
	return Rectangle{X: x, Y: y, Width: width, Height: height}
}

// DisplayRender carries an uncompressed RGBA frame of the device display.
type DisplayRender struct {
	Data      []byte    `cbor:"1,keyasint,omitempty"`
	Rectangle Rectangle `cbor:"2,keyasint"`
}

// DisplayCompressedRender carries a raw DEFLATE compressed RGBA frame.
type DisplayCompressedRender struct {
	CompressedData []byte    `cbor:"1,keyasint,omitempty"`
	Rectangle      Rectangle `cbor:"2,keyasint"`
}

func (*DisplayRender) isEvent()           {}
func (*DisplayCompressedRender) isEvent() {}

// EventKind names the variant of e, or "none" for nil.
func EventKind(e Event) string {
	switch e.(type) {
	case *DisplayRender:
		return "display_render"
	case *DisplayCompressedRender:
		return "display_compressed_render"
	case nil:
		return "none"
	default:
		return fmt.Sprintf("%T", e)
	}
}

type eventEnvelope struct {
	DisplayRender           *DisplayRender           `cbor:"1,keyasint,omitempty"`
	DisplayCompressedRender *DisplayCompressedRender `cbor:"2,keyasint,omitempty"`
}

func wrapEvent(e Event) (*eventEnvelope, error) {
	switch v := e.(type) {
	case *DisplayRender:
		if v == nil {
			break
		}
		return &eventEnvelope{DisplayRender: v}, nil
	case *DisplayCompressedRender:
		if v == nil {
			break
		}
		return &eventEnvelope{DisplayCompressedRender: v}, nil
	case nil:
	default:
		return nil, fmt.Errorf("unsupported event type %T", e)
	}
	return nil, fmt.Errorf("event: %w", ErrEmptyOneof)
}

func (e *eventEnvelope) unwrap() (Event, error) {
	var (
		out Event
		set int
	)
	if e.DisplayRender != nil {
		out, set = e.DisplayRender, set+1
	}
	if e.DisplayCompressedRender != nil {
		out, set = e.DisplayCompressedRender, set+1
	}
	if set != 1 {
		return nil, fmt.Errorf("event: %w (got %d)", ErrEmptyOneof, set)
	}
	return out, nil
}

// SameKind reports whether a and b are the same event variant. Subscription
// filters are matched this way.
func SameKind(a, b Event) bool {
	return EventKind(a) == EventKind(b)
}
