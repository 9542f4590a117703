package storepb

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKey is returned when a key name does not map to a KeyCode.
var ErrUnknownKey = errors.New("unknown key")

// KeyCode identifies a keypad key on the device.
type KeyCode int32

const (
	KeyUnspecified KeyCode = iota
	KeyL1
	KeyL2
	KeyL3
	KeyUp
	KeyDown
	KeyBack
	KeyHome
)

var keyNames = map[KeyCode]string{
	KeyUnspecified: "UNSPECIFIED",
	KeyL1:          "L1",
	KeyL2:          "L2",
	KeyL3:          "L3",
	KeyUp:          "UP",
	KeyDown:        "DOWN",
	KeyBack:        "BACK",
	KeyHome:        "HOME",
}

func (k KeyCode) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KeyCode(%d)", int32(k))
}

// ParseKeyCode resolves a case-insensitive key name such as "home" or "L1".
// The "KEY_" prefix used by the device's own enum names is accepted.
func ParseKeyCode(name string) (KeyCode, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	n = strings.TrimPrefix(n, "KEY_")
	for code, s := range keyNames {
		if s == n && code != KeyUnspecified {
			return code, nil
		}
	}
	return KeyUnspecified, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

func (k KeyCode) MarshalText() ([]byte, error) {
	if _, ok := keyNames[k]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKey, int32(k))
	}
	return []byte(k.String()), nil
}

func (k *KeyCode) UnmarshalText(text []byte) error {
	code, err := ParseKeyCode(string(text))
	if err != nil {
		return err
	}
	*k = code
	return nil
}

// Chime names a sound the device plays alongside a notification.
type Chime int32

const (
	ChimeUnspecified Chime = iota
	ChimeAdd
	ChimeDone
	ChimeFailure
	ChimeVolumeChange
)

var chimeNames = map[Chime]string{
	ChimeUnspecified:  "UNSPECIFIED",
	ChimeAdd:          "ADD",
	ChimeDone:         "DONE",
	ChimeFailure:      "FAILURE",
	ChimeVolumeChange: "VOLUME_CHANGE",
}

func (c Chime) String() string {
	if name, ok := chimeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Chime(%d)", int32(c))
}

// ParseChime resolves a case-insensitive chime name. The empty string maps
// to ChimeUnspecified.
func ParseChime(name string) (Chime, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	n = strings.TrimPrefix(n, "CHIME_")
	if n == "" {
		return ChimeUnspecified, nil
	}
	for c, s := range chimeNames {
		if s == n {
			return c, nil
		}
	}
	return ChimeUnspecified, fmt.Errorf("unknown chime %q", name)
}
