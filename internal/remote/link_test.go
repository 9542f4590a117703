package remote

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"

	"uboterm/internal/storepb"
)

type fakeStore struct {
	storepb.UnimplementedStoreServiceServer

	mu      sync.Mutex
	actions []storepb.Action
	events  []storepb.Event
	filters []storepb.Event

	toSend []storepb.Event
	// hold keeps the subscription open until the client goes away.
	hold bool
}

func (f *fakeStore) DispatchAction(_ context.Context, req *storepb.DispatchActionRequest) (*storepb.DispatchActionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, req.Action)
	return &storepb.DispatchActionResponse{}, nil
}

func (f *fakeStore) DispatchEvent(_ context.Context, req *storepb.DispatchEventRequest) (*storepb.DispatchEventResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, req.Event)
	return &storepb.DispatchEventResponse{}, nil
}

func (f *fakeStore) SubscribeEvent(req *storepb.SubscribeEventRequest, stream grpc.ServerStreamingServer[storepb.SubscribeEventResponse]) error {
	f.mu.Lock()
	f.filters = append(f.filters, req.Event)
	toSend := f.toSend
	hold := f.hold
	f.mu.Unlock()

	for _, ev := range toSend {
		if !storepb.SameKind(req.Event, ev) {
			continue
		}
		if err := stream.Send(&storepb.SubscribeEventResponse{Event: ev}); err != nil {
			return err
		}
	}
	if hold {
		<-stream.Context().Done()
	}
	return nil
}

func startStore(t *testing.T, store *fakeStore, compression string) *GRPCLink {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	storepb.RegisterStoreServiceServer(srv, store)
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	link, err := Dial(Options{
		Address:     "passthrough:///bufnet",
		Compression: compression,
		DialOptions: []grpc.DialOption{
			grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
				return lis.DialContext(ctx)
			}),
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = link.Close() })
	return link
}

func TestGRPCLink_DispatchAction(t *testing.T) {
	store := &fakeStore{}
	link := startStore(t, store, "")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, link.DispatchAction(ctx, &storepb.KeypadKeyPress{Key: storepb.KeyDown}))

	store.mu.Lock()
	defer store.mu.Unlock()
	require.Len(t, store.actions, 1)
	assert.Equal(t, &storepb.KeypadKeyPress{Key: storepb.KeyDown, Time: 0}, store.actions[0])
}

func TestGRPCLink_DispatchEvent_Gzip(t *testing.T) {
	store := &fakeStore{}
	link := startStore(t, store, "gzip")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ev := &storepb.DisplayRender{Data: []byte{1, 2, 3, 4}, Rectangle: storepb.Rect(0, 0, 1, 1)}
	require.NoError(t, link.DispatchEvent(ctx, ev))

	store.mu.Lock()
	defer store.mu.Unlock()
	require.Len(t, store.events, 1)
	assert.Equal(t, ev, store.events[0])
}

func TestGRPCLink_SubscribeDeliversInOrderThenEOF(t *testing.T) {
	store := &fakeStore{toSend: []storepb.Event{
		&storepb.DisplayRender{Data: []byte{1}, Rectangle: storepb.Rect(0, 0, 1, 1)},
		&storepb.DisplayCompressedRender{CompressedData: []byte{9}},
		&storepb.DisplayRender{Data: []byte{2}, Rectangle: storepb.Rect(0, 0, 1, 1)},
	}}
	link := startStore(t, store, "")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := link.Subscribe(ctx, &storepb.DisplayRender{})
	require.NoError(t, err)

	var got [][]byte
	for {
		ev, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, ev.(*storepb.DisplayRender).Data)
	}
	assert.Equal(t, [][]byte{{1}, {2}}, got)
}

func TestGRPCLink_SubscribeCanceled(t *testing.T) {
	store := &fakeStore{hold: true}
	link := startStore(t, store, "")

	ctx, cancel := context.WithCancel(context.Background())
	stream, err := link.Subscribe(ctx, &storepb.DisplayRender{})
	require.NoError(t, err)

	cancel()
	_, err = stream.Recv()
	require.Error(t, err)
	assert.True(t, IsCanceled(err), "expected cancellation, got %v", err)
}

func TestGRPCLink_ClosedLinkRejectsCalls(t *testing.T) {
	link := startStore(t, &fakeStore{}, "")
	require.NoError(t, link.Close())
	require.NoError(t, link.Close())

	err := link.DispatchAction(context.Background(), &storepb.KeypadKeyPress{Key: storepb.KeyHome})
	assert.ErrorIs(t, err, ErrClosed)

	_, err = link.Subscribe(context.Background(), &storepb.DisplayRender{})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestDial_RejectsUnknownCompression(t *testing.T) {
	_, err := Dial(Options{Host: "127.0.0.1", Port: 50051, Compression: "brotli"})
	assert.Error(t, err)
}

func TestOptions_Target(t *testing.T) {
	assert.Equal(t, "127.0.0.1:50051", Options{Host: "127.0.0.1", Port: 50051}.Target())
	assert.Equal(t, "[::1]:50051", Options{Host: "::1", Port: 50051}.Target())
	assert.Equal(t, "passthrough:///x", Options{Address: "passthrough:///x", Port: 1}.Target())
}
