package storepb

import (
	"errors"
	"fmt"
)

// ErrEmptyOneof is returned when an envelope carries no variant or more
// than one.
var ErrEmptyOneof = errors.New("envelope must carry exactly one variant")

// Action is a request for the device to do something.
type Action interface {
	isAction()
}

// KeypadKeyPress simulates a press of a keypad key. Time is the press
// timestamp in seconds; clients send 0.
type KeypadKeyPress struct {
	Key  KeyCode `cbor:"1,keyasint"`
	Time float64 `cbor:"2,keyasint"`
}

// NotificationsAdd shows a notification on the device.
type NotificationsAdd struct {
	Notification Notification `cbor:"1,keyasint"`
}

// AudioPlayChime plays one of the device's named chimes.
type AudioPlayChime struct {
	Name string `cbor:"1,keyasint"`
}

func (*KeypadKeyPress) isAction()   {}
func (*NotificationsAdd) isAction() {}
func (*AudioPlayChime) isAction()   {}

// Notification is the payload of NotificationsAdd.
type Notification struct {
	ID      string               `cbor:"1,keyasint,omitempty"`
	Title   string               `cbor:"2,keyasint,omitempty"`
	Content string               `cbor:"3,keyasint,omitempty"`
	Color   string               `cbor:"4,keyasint,omitempty"`
	Icon    string               `cbor:"5,keyasint,omitempty"`
	Chime   Chime                `cbor:"6,keyasint,omitempty"`
	Actions []NotificationAction `cbor:"7,keyasint,omitempty"`
}

// NotificationAction is a button attached to a notification. Selecting it
// on the device dispatches Operation.
type NotificationAction struct {
	Label           string
	Color           string
	BackgroundColor string
	Icon            string
	Operation       Action
}

type notificationActionWire struct {
	Label           string          `cbor:"1,keyasint,omitempty"`
	Color           string          `cbor:"2,keyasint,omitempty"`
	BackgroundColor string          `cbor:"3,keyasint,omitempty"`
	Icon            string          `cbor:"4,keyasint,omitempty"`
	Operation       *actionEnvelope `cbor:"5,keyasint,omitempty"`
}

func (n NotificationAction) MarshalCBOR() ([]byte, error) {
	w := notificationActionWire{
		Label:           n.Label,
		Color:           n.Color,
		BackgroundColor: n.BackgroundColor,
		Icon:            n.Icon,
	}
	if n.Operation != nil {
		env, err := wrapAction(n.Operation)
		if err != nil {
			return nil, fmt.Errorf("notification action %q: %w", n.Label, err)
		}
		w.Operation = env
	}
	return encMode.Marshal(w)
}

func (n *NotificationAction) UnmarshalCBOR(data []byte) error {
	var w notificationActionWire
	if err := decMode.Unmarshal(data, &w); err != nil {
		return err
	}
	*n = NotificationAction{
		Label:           w.Label,
		Color:           w.Color,
		BackgroundColor: w.BackgroundColor,
		Icon:            w.Icon,
	}
	if w.Operation != nil {
		op, err := w.Operation.unwrap()
		if err != nil {
			return fmt.Errorf("notification action %q: %w", w.Label, err)
		}
		n.Operation = op
	}
	return nil
}

type actionEnvelope struct {
	KeypadKeyPress   *KeypadKeyPress   `cbor:"1,keyasint,omitempty"`
	NotificationsAdd *NotificationsAdd `cbor:"2,keyasint,omitempty"`
	AudioPlayChime   *AudioPlayChime   `cbor:"3,keyasint,omitempty"`
}

func wrapAction(a Action) (*actionEnvelope, error) {
	switch v := a.(type) {
	case *KeypadKeyPress:
		if v == nil {
			break
		}
		return &actionEnvelope{KeypadKeyPress: v}, nil
	case *NotificationsAdd:
		if v == nil {
			break
		}
		return &actionEnvelope{NotificationsAdd: v}, nil
	case *AudioPlayChime:
		if v == nil {
			break
		}
		return &actionEnvelope{AudioPlayChime: v}, nil
	case nil:
	default:
		return nil, fmt.Errorf("unsupported action type %T", a)
	}
	return nil, fmt.Errorf("action: %w", ErrEmptyOneof)
}

func (e *actionEnvelope) unwrap() (Action, error) {
	var (
		out Action
		set int
	)
	if e.KeypadKeyPress != nil {
		out, set = e.KeypadKeyPress, set+1
	}
	if e.NotificationsAdd != nil {
		out, set = e.NotificationsAdd, set+1
	}
	if e.AudioPlayChime != nil {
		out, set = e.AudioPlayChime, set+1
	}
	if set != 1 {
		return nil, fmt.Errorf("action: %w (got %d)", ErrEmptyOneof, set)
	}
	return out, nil
}
