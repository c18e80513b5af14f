package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ProcessRunnerService_ListProcesses_FullMethodName = "/process_runner.v1.ProcessRunnerService/ListProcesses"
	ProcessRunnerService_CreateProcess_FullMethodName = "/process_runner.v1.ProcessRunnerService/CreateProcess"
	ProcessRunnerService_GetProcess_FullMethodName    = "/process_runner.v1.ProcessRunnerService/GetProcess"
	ProcessRunnerService_LiveLog_FullMethodName       = "/process_runner.v1.ProcessRunnerService/LiveLog"
	ProcessRunnerService_DeleteProcess_FullMethodName = "/process_runner.v1.ProcessRunnerService/DeleteProcess"
)

// ProcessRunnerServiceClient is the client API for ProcessRunnerService.
type ProcessRunnerServiceClient interface {
	ListProcesses(ctx context.Context, in *ListProcessesRequest, opts ...grpc.CallOption) (*ListProcessesResponse, error)
	CreateProcess(ctx context.Context, in *CreateProcessRequest, opts ...grpc.CallOption) (*Process, error)
	GetProcess(ctx context.Context, in *GetProcessRequest, opts ...grpc.CallOption) (*Process, error)
	LiveLog(ctx context.Context, in *LiveLogRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[LiveLogResponse], error)
	DeleteProcess(ctx context.Context, in *DeleteProcessRequest, opts ...grpc.CallOption) (*DeleteProcessResponse, error)
}

type processRunnerServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewProcessRunnerServiceClient returns a client that sends every call with the JSON codec.
func NewProcessRunnerServiceClient(cc grpc.ClientConnInterface) ProcessRunnerServiceClient {
	return &processRunnerServiceClient{cc}
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

func (c *processRunnerServiceClient) ListProcesses(ctx context.Context, in *ListProcessesRequest, opts ...grpc.CallOption) (*ListProcessesResponse, error) {
	out := new(ListProcessesResponse)
	err := c.cc.Invoke(ctx, ProcessRunnerService_ListProcesses_FullMethodName, in, out, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *processRunnerServiceClient) CreateProcess(ctx context.Context, in *CreateProcessRequest, opts ...grpc.CallOption) (*Process, error) {
	out := new(Process)
	err := c.cc.Invoke(ctx, ProcessRunnerService_CreateProcess_FullMethodName, in, out, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *processRunnerServiceClient) GetProcess(ctx context.Context, in *GetProcessRequest, opts ...grpc.CallOption) (*Process, error) {
	out := new(Process)
	err := c.cc.Invoke(ctx, ProcessRunnerService_GetProcess_FullMethodName, in, out, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *processRunnerServiceClient) LiveLog(ctx context.Context, in *LiveLogRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[LiveLogResponse], error) {
	stream, err := c.cc.NewStream(ctx, &ProcessRunnerService_ServiceDesc.Streams[0], ProcessRunnerService_LiveLog_FullMethodName, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[LiveLogRequest, LiveLogResponse]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

func (c *processRunnerServiceClient) DeleteProcess(ctx context.Context, in *DeleteProcessRequest, opts ...grpc.CallOption) (*DeleteProcessResponse, error) {
	out := new(DeleteProcessResponse)
	err := c.cc.Invoke(ctx, ProcessRunnerService_DeleteProcess_FullMethodName, in, out, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ProcessRunnerServiceServer is the server API for ProcessRunnerService.
// Implementations must embed UnimplementedProcessRunnerServiceServer.
type ProcessRunnerServiceServer interface {
	ListProcesses(context.Context, *ListProcessesRequest) (*ListProcessesResponse, error)
	CreateProcess(context.Context, *CreateProcessRequest) (*Process, error)
	GetProcess(context.Context, *GetProcessRequest) (*Process, error)
	LiveLog(*LiveLogRequest, grpc.ServerStreamingServer[LiveLogResponse]) error
	DeleteProcess(context.Context, *DeleteProcessRequest) (*DeleteProcessResponse, error)
	mustEmbedUnimplementedProcessRunnerServiceServer()
}

type UnimplementedProcessRunnerServiceServer struct{}

func (UnimplementedProcessRunnerServiceServer) ListProcesses(context.Context, *ListProcessesRequest) (*ListProcessesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListProcesses not implemented")
}
func (UnimplementedProcessRunnerServiceServer) CreateProcess(context.Context, *CreateProcessRequest) (*Process, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateProcess not implemented")
}
func (UnimplementedProcessRunnerServiceServer) GetProcess(context.Context, *GetProcessRequest) (*Process, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetProcess not implemented")
}
func (UnimplementedProcessRunnerServiceServer) LiveLog(*LiveLogRequest, grpc.ServerStreamingServer[LiveLogResponse]) error {
	return status.Errorf(codes.Unimplemented, "method LiveLog not implemented")
}
func (UnimplementedProcessRunnerServiceServer) DeleteProcess(context.Context, *DeleteProcessRequest) (*DeleteProcessResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DeleteProcess not implemented")
}
func (UnimplementedProcessRunnerServiceServer) mustEmbedUnimplementedProcessRunnerServiceServer() {}

func RegisterProcessRunnerServiceServer(s grpc.ServiceRegistrar, srv ProcessRunnerServiceServer) {
	s.RegisterService(&ProcessRunnerService_ServiceDesc, srv)
}

func _ProcessRunnerService_ListProcesses_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListProcessesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProcessRunnerServiceServer).ListProcesses(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ProcessRunnerService_ListProcesses_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProcessRunnerServiceServer).ListProcesses(ctx, req.(*ListProcessesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ProcessRunnerService_CreateProcess_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CreateProcessRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProcessRunnerServiceServer).CreateProcess(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ProcessRunnerService_CreateProcess_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProcessRunnerServiceServer).CreateProcess(ctx, req.(*CreateProcessRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ProcessRunnerService_GetProcess_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetProcessRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProcessRunnerServiceServer).GetProcess(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ProcessRunnerService_GetProcess_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProcessRunnerServiceServer).GetProcess(ctx, req.(*GetProcessRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ProcessRunnerService_LiveLog_Handler(srv any, stream grpc.ServerStream) error {
	m := new(LiveLogRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ProcessRunnerServiceServer).LiveLog(m, &grpc.GenericServerStream[LiveLogRequest, LiveLogResponse]{ServerStream: stream})
}

func _ProcessRunnerService_DeleteProcess_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(DeleteProcessRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProcessRunnerServiceServer).DeleteProcess(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ProcessRunnerService_DeleteProcess_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProcessRunnerServiceServer).DeleteProcess(ctx, req.(*DeleteProcessRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// ProcessRunnerService_ServiceDesc is the grpc.ServiceDesc for ProcessRunnerService.
var ProcessRunnerService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "process_runner.v1.ProcessRunnerService",
	HandlerType: (*ProcessRunnerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListProcesses",
			Handler:    _ProcessRunnerService_ListProcesses_Handler,
		},
		{
			MethodName: "CreateProcess",
			Handler:    _ProcessRunnerService_CreateProcess_Handler,
		},
		{
			MethodName: "GetProcess",
			Handler:    _ProcessRunnerService_GetProcess_Handler,
		},
		{
			MethodName: "DeleteProcess",
			Handler:    _ProcessRunnerService_DeleteProcess_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "LiveLog",
			Handler:       _ProcessRunnerService_LiveLog_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "api/v1/service_grpc.go",
}
