package render

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uboterm/internal/storepb"
	"uboterm/internal/terminal"
)

func pixels(width, height int) []byte {
	data := make([]byte, width*height*BytesPerPixel)
	for i := range data {
		data[i] = byte(i * 7)
	}
	return data
}

func deflate(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestSpeed)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestEncodeKitty_PayloadRoundTrip(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {16, 16}, {64, 48}, {240, 240}} {
		w, h := size[0], size[1]
		t.Run(strconv.Itoa(w)+"x"+strconv.Itoa(h), func(t *testing.T) {
			data := pixels(w, h)
			chunks := EncodeKitty(data, w, h)

			var joined strings.Builder
			for _, c := range chunks {
				assert.LessOrEqual(t, len(c.Payload), 4096)
				joined.WriteString(c.Payload)
			}
			decoded, err := base64.StdEncoding.DecodeString(joined.String())
			require.NoError(t, err)
			assert.Equal(t, data, decoded)
		})
	}
}

func TestEncodeKitty_SingleChunk(t *testing.T) {
	chunks := EncodeKitty(pixels(2, 2), 2, 2)
	require.Len(t, chunks, 1)

	c := chunks[0]
	assert.False(t, c.More)
	assert.Equal(t, "\x1b_Gm=0,a=T,i=1,q=1,f=32,C=1,s=2,v=2;"+c.Payload+"\x1b\\", c.Sequence)
	assert.NotContains(t, c.Sequence, "m=1")
}

func TestEncodeKitty_MultiChunkMarkers(t *testing.T) {
	// 64x64 RGBA is 16384 bytes, 21848 base64 characters: six chunks.
	data := pixels(64, 64)
	chunks := EncodeKitty(data, 64, 64)
	require.Len(t, chunks, 6)

	header := regexp.MustCompile(`^\x1b_Gm=1,a=T,i=1,q=1,f=32,C=1,s=64,v=64;[A-Za-z0-9+/=]+\x1b\\$`)
	interior := regexp.MustCompile(`^\x1b_Gm=1,q=1;[A-Za-z0-9+/=]+\x1b\\$`)
	final := regexp.MustCompile(`^\x1b_Gm=0,q=1;[A-Za-z0-9+/=]+\x1b\\$`)

	assert.Regexp(t, header, chunks[0].Sequence)
	for _, c := range chunks[1 : len(chunks)-1] {
		assert.Regexp(t, interior, c.Sequence)
		assert.True(t, c.More)
		assert.Len(t, c.Payload, 4096)
	}
	last := chunks[len(chunks)-1]
	assert.Regexp(t, final, last.Sequence)
	assert.False(t, last.More)

	seq := KittySequence(data, 64, 64)
	assert.Equal(t, 1, strings.Count(seq, "a=T"), "exactly one leading chunk")
	assert.Equal(t, 1, strings.Count(seq, "m=0"), "exactly one final chunk")
}

func TestEncodeKitty_ExactMultipleOfChunkSize(t *testing.T) {
	// 3072 bytes encode to exactly 4096 characters.
	data := bytes.Repeat([]byte{0xAB}, 3072)
	chunks := EncodeKitty(data, 32, 24)
	require.Len(t, chunks, 1)
	assert.Len(t, chunks[0].Payload, 4096)
	assert.False(t, chunks[0].More)
}

func TestEncodeKitty_Empty(t *testing.T) {
	chunks := EncodeKitty(nil, 0, 0)
	require.Len(t, chunks, 1)
	assert.Empty(t, chunks[0].Payload)
	assert.False(t, chunks[0].More)
}

var iterm2Pattern = regexp.MustCompile(`^\x1b\[H\x1b\]1337;File=size=(\d+);width=(\d+)px;height=(\d+)px;inline=1:([A-Za-z0-9+/=]+)\a\n$`)

func TestEncodeITerm2_HeaderAndSize(t *testing.T) {
	data := pixels(20, 10)
	out := EncodeITerm2(data, 20, 10)

	m := iterm2Pattern.FindStringSubmatch(out)
	require.NotNil(t, m, "unexpected sequence %q", out)

	size, _ := strconv.Atoi(m[1])
	assert.Equal(t, len(m[4]), size, "declared size equals payload length")
	assert.Equal(t, "20", m[2])
	assert.Equal(t, "10", m[3])

	pam, err := base64.StdEncoding.DecodeString(m[4])
	require.NoError(t, err)
	header := "P7\nWIDTH 20\nHEIGHT 10\nDEPTH 4\nMAXVAL 255\nTUPLTYPE RGB_ALPHA\nENDHDR\n"
	require.True(t, bytes.HasPrefix(pam, []byte(header)))
	assert.Equal(t, data, pam[len(header):])
}

func TestFrameFromEvent(t *testing.T) {
	good := pixels(3, 2)

	tests := []struct {
		name    string
		event   storepb.Event
		wantErr error
		want    Frame
	}{
		{
			name:  "plain frame",
			event: &storepb.DisplayRender{Data: good, Rectangle: storepb.Rect(5, 5, 3, 2)},
			want:  Frame{Data: good, Width: 3, Height: 2},
		},
		{
			name:  "compressed frame",
			event: &storepb.DisplayCompressedRender{CompressedData: deflate(t, good), Rectangle: storepb.Rect(0, 0, 3, 2)},
			want:  Frame{Data: good, Width: 3, Height: 2},
		},
		{
			name:    "short buffer",
			event:   &storepb.DisplayRender{Data: good[:len(good)-1], Rectangle: storepb.Rect(0, 0, 3, 2)},
			wantErr: ErrFrameSize,
		},
		{
			name:    "wrong dimensions",
			event:   &storepb.DisplayRender{Data: good, Rectangle: storepb.Rect(0, 0, 2, 2)},
			wantErr: ErrFrameSize,
		},
		{
			name:    "negative dimensions",
			event:   &storepb.DisplayRender{Data: nil, Rectangle: storepb.Rect(0, 0, -1, 0)},
			wantErr: ErrFrameSize,
		},
		{
			name:    "overflowing dimensions",
			event:   &storepb.DisplayRender{Data: nil, Rectangle: storepb.Rect(0, 0, 1<<61, 2)},
			wantErr: ErrFrameSize,
		},
		{
			name:    "overflowing compressed dimensions",
			event:   &storepb.DisplayCompressedRender{CompressedData: deflate(t, nil), Rectangle: storepb.Rect(0, 0, 2, 1<<61)},
			wantErr: ErrFrameSize,
		},
		{
			name:    "compressed frame larger than rectangle",
			event:   &storepb.DisplayCompressedRender{CompressedData: deflate(t, make([]byte, 1<<20)), Rectangle: storepb.Rect(0, 0, 1, 1)},
			wantErr: ErrFrameSize,
		},
		{
			name:    "compressed frame smaller than rectangle",
			event:   &storepb.DisplayCompressedRender{CompressedData: deflate(t, good[:4]), Rectangle: storepb.Rect(0, 0, 3, 2)},
			wantErr: ErrFrameSize,
		},
		{
			name:    "nil event",
			event:   nil,
			wantErr: ErrNotRenderEvent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FrameFromEvent(tt.event)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFrameFromEvent_CorruptCompressedData(t *testing.T) {
	_, err := FrameFromEvent(&storepb.DisplayCompressedRender{
		CompressedData: []byte{0xff, 0xff, 0xff},
		Rectangle:      storepb.Rect(0, 0, 1, 1),
	})
	assert.Error(t, err)
}

func TestInflate_StopsAtLimit(t *testing.T) {
	out, err := Inflate(deflate(t, make([]byte, 4<<20)), 8)
	assert.ErrorIs(t, err, ErrFrameSize)
	assert.Nil(t, out)

	out, err = Inflate(deflate(t, pixels(2, 1)), 8)
	require.NoError(t, err)
	assert.Equal(t, pixels(2, 1), out)
}

func TestKittyRenderer(t *testing.T) {
	var out bytes.Buffer
	r := &KittyRenderer{Out: &out}

	require.NoError(t, r.Begin())
	assert.Equal(t, "\x1b[2J\x1b[H", out.String())

	out.Reset()
	f := Frame{Data: pixels(2, 2), Width: 2, Height: 2}
	require.NoError(t, r.Render(f))
	assert.Equal(t, KittySequence(f.Data, 2, 2), out.String())
}

func TestFileRenderer_Raw(t *testing.T) {
	path := filepath.Join(t.TempDir(), "display.raw")
	var notice bytes.Buffer

	r, err := NewFileRenderer(path, DumpRaw, &notice)
	require.NoError(t, err)
	require.NoError(t, r.Begin())
	assert.Contains(t, notice.String(), "Saving display in `"+path+"`")
	assert.Equal(t, 2, strings.Count(notice.String(), "\n"))

	first := Frame{Data: pixels(2, 2), Width: 2, Height: 2}
	second := Frame{Data: pixels(1, 1), Width: 1, Height: 1}
	require.NoError(t, r.Render(first))
	require.NoError(t, r.Render(second))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, second.Data, got, "each frame replaces the previous dump")
}

func TestFileRenderer_Zstd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "display.raw")

	r, err := NewFileRenderer(path, DumpZstd, nil)
	require.NoError(t, err)
	assert.Equal(t, path+".zst", r.Path)
	require.NoError(t, r.Begin())

	f := Frame{Data: pixels(8, 8), Width: 8, Height: 8}
	require.NoError(t, r.Render(f))

	compressed, err := os.ReadFile(r.Path)
	require.NoError(t, err)
	dec, err := zstd.NewReader(nil)
	require.NoError(t, err)
	defer dec.Close()
	got, err := dec.DecodeAll(compressed, nil)
	require.NoError(t, err)
	assert.Equal(t, f.Data, got)
}

func TestNew(t *testing.T) {
	var out bytes.Buffer

	r, err := New(terminal.ProtocolKitty, &out, "", DumpRaw)
	require.NoError(t, err)
	assert.IsType(t, &KittyRenderer{}, r)

	r, err = New(terminal.ProtocolITerm2, &out, "", DumpRaw)
	require.NoError(t, err)
	assert.IsType(t, &ITerm2Renderer{}, r)

	r, err = New(terminal.ProtocolFile, &out, "display.raw", DumpRaw)
	require.NoError(t, err)
	assert.IsType(t, &FileRenderer{}, r)

	_, err = New(terminal.ProtocolAuto, &out, "", DumpRaw)
	assert.Error(t, err)

	_, err = NewFileRenderer("x", "lz4", nil)
	assert.Error(t, err)
}
