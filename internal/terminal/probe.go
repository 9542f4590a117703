package terminal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/x/ansi"

	"uboterm/pkg/logging"
)

// Protocol is the way frames are shown on the local terminal.
type Protocol string

const (
	ProtocolAuto   Protocol = "auto"
	ProtocolKitty  Protocol = "kitty"
	ProtocolITerm2 Protocol = "iterm2"
	ProtocolFile   Protocol = "file"
)

// ParseProtocol validates a protocol name. The empty string means auto.
func ParseProtocol(s string) (Protocol, error) {
	switch p := Protocol(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return ProtocolAuto, nil
	case ProtocolAuto, ProtocolKitty, ProtocolITerm2, ProtocolFile:
		return p, nil
	default:
		return "", fmt.Errorf("unknown display protocol %q (want auto, kitty, iterm2 or file)", s)
	}
}

// DefaultProbeTimeout bounds how long the kitty query waits for a reply.
const DefaultProbeTimeout = time.Second

// ITermProgram is the TERM_PROGRAM value iTerm2 sets.
const ITermProgram = "iTerm.app"

const (
	// kittyOK is the marker a kitty-capable terminal includes in its reply.
	kittyOK = ";OK"
	// stringTerminator ends an APC reply.
	stringTerminator = "\x1b\\"
)

// KittyQuery asks the terminal to validate, without storing, a 1x1 RGB
// image. Terminals that understand the protocol answer with ";OK".
var KittyQuery = ansi.KittyGraphics([]byte("AAAA"), "i=1", "a=q", "s=1", "v=1", "f=24")

// pollInterval caps a single wait so context cancellation is noticed.
var pollInterval = 100 * time.Millisecond

// ProbeKitty sends KittyQuery and reports whether the terminal replied with
// an OK within timeout. Any error means unsupported. The terminal is put
// back into its previous mode on every return path.
func ProbeKitty(ctx context.Context, c Console, timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	restore, err := c.Acquire(CBreak|NonBlocking, RestoreFlush)
	if err != nil {
		logging.Debug("Probe", "Cannot change terminal mode, skipping kitty query: %v", err)
		return false
	}
	defer func() {
		if err := restore(); err != nil {
			logging.Warn("Probe", "Failed to restore terminal mode: %v", err)
		}
	}()

	if _, err := c.Write([]byte(KittyQuery)); err != nil {
		logging.Debug("Probe", "Writing kitty query failed: %v", err)
		return false
	}

	deadline := time.Now().Add(timeout)
	var reply []byte
	buf := make([]byte, 256)
	for {
		if ctx.Err() != nil {
			return false
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			logging.Debug("Probe", "No kitty reply within %s", timeout)
			return false
		}

		ready, err := c.WaitReadable(min(remaining, pollInterval))
		if err != nil {
			logging.Debug("Probe", "Waiting for kitty reply failed: %v", err)
			return false
		}
		if !ready {
			continue
		}

		n, err := c.Read(buf)
		reply = append(reply, buf[:n]...)
		if bytes.Contains(reply, []byte(kittyOK)) {
			return true
		}
		// A complete reply without the marker is a refusal.
		if bytes.Contains(reply, []byte(stringTerminator)) {
			logging.Debug("Probe", "Kitty query refused: %q", reply)
			return false
		}
		if err != nil && !errors.Is(err, syscall.EAGAIN) {
			logging.Debug("Probe", "Reading kitty reply failed: %v", err)
			return false
		}
	}
}

// DetectOptions configures Detect.
type DetectOptions struct {
	// Forced skips detection when set to anything but auto.
	Forced      Protocol
	TermProgram string
	Timeout     time.Duration
}

// Detect picks the protocol for c: the forced protocol, kitty when the
// query succeeds, iTerm2 when TermProgram says so, otherwise file.
func Detect(ctx context.Context, c Console, opts DetectOptions) Protocol {
	if opts.Forced != "" && opts.Forced != ProtocolAuto {
		logging.Debug("Probe", "Using configured protocol %s", opts.Forced)
		return opts.Forced
	}

	if c.IsTerminal() {
		if ProbeKitty(ctx, c, opts.Timeout) {
			logging.Info("Probe", "Terminal supports the kitty graphics protocol")
			return ProtocolKitty
		}
	} else {
		logging.Debug("Probe", "Input is not a terminal, skipping kitty query")
	}

	if opts.TermProgram == ITermProgram {
		logging.Info("Probe", "Detected iTerm2 from TERM_PROGRAM")
		return ProtocolITerm2
	}

	logging.Info("Probe", "No inline image protocol available, falling back to file output")
	return ProtocolFile
}
