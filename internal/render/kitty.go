package render

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/ansi/kitty"
)

// KittyImageID is the image number every frame is transmitted under, so each
// new frame replaces the previous one.
const KittyImageID = 1

// Chunk is one escape sequence of a kitty transmission.
type Chunk struct {
	// Sequence is the complete APC sequence written to the terminal.
	Sequence string
	// Payload is the base64 slice the sequence carries.
	Payload string
	// More is true when further chunks follow (m=1).
	More bool
}

// EncodeKitty encodes an RGBA frame as kitty graphics sequences. The base64
// form of data is split into chunks of at most kitty.MaxChunkSize
// characters. The first chunk carries the full control data, later chunks
// only the continuation flag, and the last chunk has m=0.
func EncodeKitty(data []byte, width, height int) []Chunk {
	encoded := base64.StdEncoding.EncodeToString(data)
	parts := splitEvery(encoded, kitty.MaxChunkSize)

	chunks := make([]Chunk, len(parts))
	for i, part := range parts {
		more := i < len(parts)-1

		var opts []string
		if i == 0 {
			opts = []string{
				"m=" + moreFlag(more),
				fmt.Sprintf("a=%c", kitty.TransmitAndPut),
				"i=" + strconv.Itoa(KittyImageID),
				"q=1",
				"f=" + strconv.Itoa(kitty.RGBA),
				"C=1",
				"s=" + strconv.Itoa(width),
				"v=" + strconv.Itoa(height),
			}
		} else {
			opts = []string{"m=" + moreFlag(more), "q=1"}
		}

		chunks[i] = Chunk{
			Sequence: ansi.KittyGraphics([]byte(part), opts...),
			Payload:  part,
			More:     more,
		}
	}
	return chunks
}

// KittySequence joins the chunks of EncodeKitty into one string.
func KittySequence(data []byte, width, height int) string {
	var b strings.Builder
	for _, c := range EncodeKitty(data, width, height) {
		b.WriteString(c.Sequence)
	}
	return b.String()
}

func moreFlag(more bool) string {
	if more {
		return "1"
	}
	return "0"
}

// splitEvery splits s into pieces of n bytes; the last piece may be shorter.
// An empty s yields a single empty piece.
func splitEvery(s string, n int) []string {
	if len(s) <= n {
		return []string{s}
	}
	parts := make([]string, 0, (len(s)+n-1)/n)
	for len(s) > n {
		parts = append(parts, s[:n])
		s = s[n:]
	}
	return append(parts, s)
}
