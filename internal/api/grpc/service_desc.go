package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "library.v1.LibraryService"

// LibraryServiceServer is the server API. Messages are protobuf well-known
// types: requests and single records travel as Struct, ids as Int64Value and
// collections as ListValue of Structs.
type LibraryServiceServer interface {
	CreateBook(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetBook(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
	ListBooks(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	CreateMember(context.Context, *structpb.Struct) (*structpb.Struct, error)
	IssueLoan(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ReturnLoan(context.Context, *wrapperspb.Int64Value) (*wrapperspb.Int64Value, error)
	ListMemberRentals(context.Context, *wrapperspb.Int64Value) (*structpb.ListValue, error)
}

func RegisterLibraryServiceServer(s grpc.ServiceRegistrar, srv LibraryServiceServer) {
	s.RegisterService(&LibraryServiceDesc, srv)
}

var LibraryServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LibraryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateBook", Handler: unaryHandler("CreateBook", LibraryServiceServer.CreateBook)},
		{MethodName: "GetBook", Handler: unaryHandler("GetBook", LibraryServiceServer.GetBook)},
		{MethodName: "ListBooks", Handler: unaryHandler("ListBooks", LibraryServiceServer.ListBooks)},
		{MethodName: "CreateMember", Handler: unaryHandler("CreateMember", LibraryServiceServer.CreateMember)},
		{MethodName: "IssueLoan", Handler: unaryHandler("IssueLoan", LibraryServiceServer.IssueLoan)},
		{MethodName: "ReturnLoan", Handler: unaryHandler("ReturnLoan", LibraryServiceServer.ReturnLoan)},
		{MethodName: "ListMemberRentals", Handler: unaryHandler("ListMemberRentals", LibraryServiceServer.ListMemberRentals)},
	},
	Streams: []grpc.StreamDesc{},
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// unaryHandler adapts a typed server method to grpc.MethodHandler.
func unaryHandler[Req any, PReq interface {
	*Req
	proto.Message
}, Resp proto.Message](method string, call func(LibraryServiceServer, context.Context, PReq) (Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := PReq(new(Req))
		if err := dec(in); err != nil {
			return nil, err
		}
		server := srv.(LibraryServiceServer)
		if interceptor == nil {
			return call(server, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(method)}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(server, ctx, req.(PReq))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// LibraryServiceClient calls LibraryService over a client connection.
type LibraryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewLibraryServiceClient(cc grpc.ClientConnInterface) *LibraryServiceClient {
	return &LibraryServiceClient{cc: cc}
}

func (c *LibraryServiceClient) CreateBook(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	return out, c.cc.Invoke(ctx, fullMethod("CreateBook"), in, out, opts...)
}

func (c *LibraryServiceClient) GetBook(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	return out, c.cc.Invoke(ctx, fullMethod("GetBook"), in, out, opts...)
}

func (c *LibraryServiceClient) ListBooks(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	return out, c.cc.Invoke(ctx, fullMethod("ListBooks"), in, out, opts...)
}

func (c *LibraryServiceClient) CreateMember(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	return out, c.cc.Invoke(ctx, fullMethod("CreateMember"), in, out, opts...)
}

func (c *LibraryServiceClient) IssueLoan(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	return out, c.cc.Invoke(ctx, fullMethod("IssueLoan"), in, out, opts...)
}

func (c *LibraryServiceClient) ReturnLoan(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error) {
	out := new(wrapperspb.Int64Value)
	return out, c.cc.Invoke(ctx, fullMethod("ReturnLoan"), in, out, opts...)
}

func (c *LibraryServiceClient) ListMemberRentals(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	return out, c.cc.Invoke(ctx, fullMethod("ListMemberRentals"), in, out, opts...)
}
