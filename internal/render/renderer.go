package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/klauspost/compress/zstd"

	"uboterm/internal/color"
	"uboterm/internal/terminal"
	"uboterm/pkg/logging"
)

// Renderer shows frames using one output method.
type Renderer interface {
	// Begin prepares the output once before the first frame.
	Begin() error
	// Render shows one frame. Each call is independent; nothing is cached
	// between frames.
	Render(f Frame) error
}

// clearScreen erases the terminal and homes the cursor.
const clearScreen = ansi.EraseEntireScreen + ansi.CursorHomePosition

// KittyRenderer draws frames with the kitty graphics protocol.
type KittyRenderer struct {
	Out io.Writer
}

func (r *KittyRenderer) Begin() error {
	_, err := io.WriteString(r.Out, clearScreen)
	return err
}

func (r *KittyRenderer) Render(f Frame) error {
	_, err := io.WriteString(r.Out, KittySequence(f.Data, f.Width, f.Height))
	return err
}

// ITerm2Renderer draws frames with the iTerm2 inline image protocol.
type ITerm2Renderer struct {
	Out io.Writer
}

func (r *ITerm2Renderer) Begin() error {
	_, err := io.WriteString(r.Out, clearScreen)
	return err
}

func (r *ITerm2Renderer) Render(f Frame) error {
	_, err := io.WriteString(r.Out, EncodeITerm2(f.Data, f.Width, f.Height))
	return err
}

// DumpCompression selects how FileRenderer stores frames.
type DumpCompression string

const (
	DumpRaw  DumpCompression = "none"
	DumpZstd DumpCompression = "zstd"
)

// FileRenderer overwrites a file with the raw pixels of every frame. It is
// the fallback when the terminal cannot show images.
type FileRenderer struct {
	Path        string
	Compression DumpCompression
	// Notice receives the line telling the user where frames go.
	Notice io.Writer

	encoder *zstd.Encoder
}

// NewFileRenderer returns a FileRenderer writing to path. With zstd
// compression a ".zst" suffix is added when missing.
func NewFileRenderer(path string, compression DumpCompression, notice io.Writer) (*FileRenderer, error) {
	r := &FileRenderer{Path: path, Compression: compression, Notice: notice}
	switch compression {
	case "", DumpRaw:
		r.Compression = DumpRaw
	case DumpZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if err != nil {
			return nil, fmt.Errorf("create zstd encoder: %w", err)
		}
		r.encoder = enc
		if !strings.HasSuffix(r.Path, ".zst") {
			r.Path += ".zst"
		}
	default:
		return nil, fmt.Errorf("unsupported dump compression %q", compression)
	}
	return r, nil
}

func (r *FileRenderer) Begin() error {
	if r.Notice == nil {
		return nil
	}
	_, err := fmt.Fprintf(r.Notice, "%s\n%s\n",
		color.Notice(fmt.Sprintf("Saving display in `%s`", r.Path)),
		color.Hint("Run in a terminal supporting iTerm2 or Kitty image display to see the screen in your terminal."))
	return err
}

func (r *FileRenderer) Render(f Frame) error {
	data := f.Data
	if r.encoder != nil {
		data = r.encoder.EncodeAll(f.Data, make([]byte, 0, len(f.Data)/2))
	}
	if err := os.WriteFile(r.Path, data, 0o644); err != nil {
		return fmt.Errorf("write display dump: %w", err)
	}
	return nil
}

// New returns the renderer for protocol. Auto must be resolved by the
// caller beforehand.
func New(protocol terminal.Protocol, out io.Writer, dumpPath string, dumpCompression DumpCompression) (Renderer, error) {
	switch protocol {
	case terminal.ProtocolKitty:
		return &KittyRenderer{Out: out}, nil
	case terminal.ProtocolITerm2:
		return &ITerm2Renderer{Out: out}, nil
	case terminal.ProtocolFile:
		logging.Debug("Render", "Dumping frames to %s (compression=%s)", dumpPath, dumpCompression)
		return NewFileRenderer(dumpPath, dumpCompression, out)
	default:
		return nil, fmt.Errorf("no renderer for protocol %q", protocol)
	}
}
