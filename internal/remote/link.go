// Package remote connects to the device's store service and exposes the
// three operations a client needs: dispatching actions, dispatching events,
// and subscribing to events.
package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/encoding/gzip"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/status"

	"uboterm/internal/storepb"
	"uboterm/pkg/logging"
)

// ErrClosed is returned by operations on a link after Close.
var ErrClosed = errors.New("remote link closed")

// Link is a connection to the remote store.
type Link interface {
	// DispatchAction sends one action as a single unary call.
	DispatchAction(ctx context.Context, action storepb.Action) error
	// DispatchEvent sends one event as a single unary call.
	DispatchEvent(ctx context.Context, event storepb.Event) error
	// Subscribe opens a stream of events of the same variant as filter.
	Subscribe(ctx context.Context, filter storepb.Event) (EventStream, error)
	// Close tears down the transport. Pending streams end with an error.
	Close() error
}

// EventStream yields events in the order the server sent them. Recv returns
// io.EOF when the server ends the stream normally.
type EventStream interface {
	Recv() (storepb.Event, error)
}

// Options configures Dial.
type Options struct {
	Host string
	Port int
	// Address, when set, is used verbatim as the gRPC target instead of
	// Host and Port.
	Address string
	// Compression is "gzip" or "" for none.
	Compression   string
	KeepaliveTime time.Duration
	// DialOptions are appended after the defaults; tests use it to dial an
	// in-process listener.
	DialOptions []grpc.DialOption
}

// Target returns the host:port the link dials.
func (o Options) Target() string {
	if o.Address != "" {
		return o.Address
	}
	return net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
}

// GRPCLink is a Link over a gRPC client connection.
type GRPCLink struct {
	conn   *grpc.ClientConn
	client storepb.StoreServiceClient

	mu     sync.Mutex
	closed bool
}

// Dial creates a link to the store at opts.Target(). The connection is
// established lazily on the first call.
func Dial(opts Options) (*GRPCLink, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	switch opts.Compression {
	case "", "none":
	case gzip.Name:
		dialOpts = append(dialOpts, grpc.WithDefaultCallOptions(grpc.UseCompressor(gzip.Name)))
	default:
		return nil, fmt.Errorf("unsupported compression %q", opts.Compression)
	}
	if opts.KeepaliveTime > 0 {
		dialOpts = append(dialOpts, grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:    opts.KeepaliveTime,
			Timeout: 20 * time.Second,
		}))
	}
	dialOpts = append(dialOpts, opts.DialOptions...)

	target := opts.Target()
	conn, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client for %s: %w", target, err)
	}
	logging.Debug("Link", "Created client for %s (compression=%q)", target, opts.Compression)

	return &GRPCLink{
		conn:   conn,
		client: storepb.NewStoreServiceClient(conn),
	}, nil
}

func (l *GRPCLink) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

func (l *GRPCLink) DispatchAction(ctx context.Context, action storepb.Action) error {
	if l.isClosed() {
		return ErrClosed
	}
	if _, err := l.client.DispatchAction(ctx, &storepb.DispatchActionRequest{Action: action}); err != nil {
		return fmt.Errorf("dispatch action %T: %w", action, err)
	}
	return nil
}

func (l *GRPCLink) DispatchEvent(ctx context.Context, event storepb.Event) error {
	if l.isClosed() {
		return ErrClosed
	}
	if _, err := l.client.DispatchEvent(ctx, &storepb.DispatchEventRequest{Event: event}); err != nil {
		return fmt.Errorf("dispatch event %s: %w", storepb.EventKind(event), err)
	}
	return nil
}

func (l *GRPCLink) Subscribe(ctx context.Context, filter storepb.Event) (EventStream, error) {
	if l.isClosed() {
		return nil, ErrClosed
	}
	stream, err := l.client.SubscribeEvent(ctx, &storepb.SubscribeEventRequest{Event: filter})
	if err != nil {
		return nil, fmt.Errorf("subscribe to %s: %w", storepb.EventKind(filter), err)
	}
	logging.Debug("Link", "Subscribed to %s events", storepb.EventKind(filter))
	return &grpcEventStream{stream: stream}, nil
}

// Close is safe to call more than once.
func (l *GRPCLink) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	l.mu.Unlock()

	logging.Debug("Link", "Closing connection")
	return l.conn.Close()
}

type grpcEventStream struct {
	stream grpc.ServerStreamingClient[storepb.SubscribeEventResponse]
}

func (s *grpcEventStream) Recv() (storepb.Event, error) {
	resp, err := s.stream.Recv()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("receive event: %w", err)
	}
	return resp.Event, nil
}

// IsCanceled reports whether err stems from context cancellation rather
// than a transport failure.
func IsCanceled(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, ErrClosed) {
		return true
	}
	return status.Code(err) == codes.Canceled
}
