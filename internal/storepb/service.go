package storepb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ServiceName = "store.v1.StoreService"

	DispatchActionMethod = "/" + ServiceName + "/DispatchAction"
	DispatchEventMethod  = "/" + ServiceName + "/DispatchEvent"
	SubscribeEventMethod = "/" + ServiceName + "/SubscribeEvent"
)

// StoreServiceClient is the client API for the store service.
type StoreServiceClient interface {
	DispatchAction(ctx context.Context, in *DispatchActionRequest, opts ...grpc.CallOption) (*DispatchActionResponse, error)
	DispatchEvent(ctx context.Context, in *DispatchEventRequest, opts ...grpc.CallOption) (*DispatchEventResponse, error)
	SubscribeEvent(ctx context.Context, in *SubscribeEventRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[SubscribeEventResponse], error)
}

type storeServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewStoreServiceClient returns a client that encodes every call with the
// CBOR codec.
func NewStoreServiceClient(cc grpc.ClientConnInterface) StoreServiceClient {
	return &storeServiceClient{cc: cc}
}

func callOptions(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

func (c *storeServiceClient) DispatchAction(ctx context.Context, in *DispatchActionRequest, opts ...grpc.CallOption) (*DispatchActionResponse, error) {
	out := new(DispatchActionResponse)
	if err := c.cc.Invoke(ctx, DispatchActionMethod, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storeServiceClient) DispatchEvent(ctx context.Context, in *DispatchEventRequest, opts ...grpc.CallOption) (*DispatchEventResponse, error) {
	out := new(DispatchEventResponse)
	if err := c.cc.Invoke(ctx, DispatchEventMethod, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storeServiceClient) SubscribeEvent(ctx context.Context, in *SubscribeEventRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[SubscribeEventResponse], error) {
	stream, err := c.cc.NewStream(ctx, &ServiceDesc.Streams[0], SubscribeEventMethod, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[SubscribeEventRequest, SubscribeEventResponse]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// StoreServiceServer is the server API for the store service.
type StoreServiceServer interface {
	DispatchAction(context.Context, *DispatchActionRequest) (*DispatchActionResponse, error)
	DispatchEvent(context.Context, *DispatchEventRequest) (*DispatchEventResponse, error)
	SubscribeEvent(*SubscribeEventRequest, grpc.ServerStreamingServer[SubscribeEventResponse]) error
}

// UnimplementedStoreServiceServer can be embedded to have forward compatible
// implementations.
type UnimplementedStoreServiceServer struct{}

func (UnimplementedStoreServiceServer) DispatchAction(context.Context, *DispatchActionRequest) (*DispatchActionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DispatchAction not implemented")
}

func (UnimplementedStoreServiceServer) DispatchEvent(context.Context, *DispatchEventRequest) (*DispatchEventResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DispatchEvent not implemented")
}

func (UnimplementedStoreServiceServer) SubscribeEvent(*SubscribeEventRequest, grpc.ServerStreamingServer[SubscribeEventResponse]) error {
	return status.Error(codes.Unimplemented, "method SubscribeEvent not implemented")
}

// RegisterStoreServiceServer registers srv on s.
func RegisterStoreServiceServer(s grpc.ServiceRegistrar, srv StoreServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func dispatchActionHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(DispatchActionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StoreServiceServer).DispatchAction(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DispatchActionMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StoreServiceServer).DispatchAction(ctx, req.(*DispatchActionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func dispatchEventHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(DispatchEventRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StoreServiceServer).DispatchEvent(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DispatchEventMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StoreServiceServer).DispatchEvent(ctx, req.(*DispatchEventRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func subscribeEventHandler(srv any, stream grpc.ServerStream) error {
	m := new(SubscribeEventRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(StoreServiceServer).SubscribeEvent(m, &grpc.GenericServerStream[SubscribeEventRequest, SubscribeEventResponse]{ServerStream: stream})
}

// ServiceDesc describes the store service for grpc.Server registration.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StoreServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "DispatchAction", Handler: dispatchActionHandler},
		{MethodName: "DispatchEvent", Handler: dispatchEventHandler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "SubscribeEvent", Handler: subscribeEventHandler, ServerStreams: true},
	},
	Metadata: "store/v1/store.proto",
}
