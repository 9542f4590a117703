package render

import (
	"encoding/base64"
	"fmt"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/ansi/iterm2"
)

// PAMHeader returns the Netpbm PAM header for an RGBA image.
func PAMHeader(width, height int) string {
	return fmt.Sprintf("P7\nWIDTH %d\nHEIGHT %d\nDEPTH 4\nMAXVAL 255\nTUPLTYPE RGB_ALPHA\nENDHDR\n", width, height)
}

// EncodeITerm2 encodes an RGBA frame for the iTerm2 inline image protocol:
// a PAM header followed by the pixels, base64 encoded once, sent as a single
// OSC 1337 sequence. The cursor is homed first so each frame overdraws the
// last, and a newline follows.
func EncodeITerm2(data []byte, width, height int) string {
	header := PAMHeader(width, height)
	pam := make([]byte, 0, len(header)+len(data))
	pam = append(pam, header...)
	pam = append(pam, data...)

	encoded := base64.StdEncoding.EncodeToString(pam)
	file := iterm2.File{
		Size:    int64(len(encoded)),
		Width:   iterm2.Pixels(width),
		Height:  iterm2.Pixels(height),
		Inline:  true,
		Content: []byte(encoded),
	}
	return ansi.CursorHomePosition + ansi.ITerm2(file) + "\n"
}
