package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The service is described by hand over well-known protobuf types, so there is
// no generated code: requests and responses are Struct, ListValue, UInt64Value
// and Empty.
const (
	ServiceName = "bookmarks.v1.Bookmarks"

	MethodListBookmarks  = "/" + ServiceName + "/ListBookmarks"
	MethodGetBookmark    = "/" + ServiceName + "/GetBookmark"
	MethodCreateBookmark = "/" + ServiceName + "/CreateBookmark"
	MethodDeleteBookmark = "/" + ServiceName + "/DeleteBookmark"
)

type BookmarksServer interface {
	ListBookmarks(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	GetBookmark(context.Context, *wrapperspb.UInt64Value) (*structpb.Struct, error)
	CreateBookmark(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteBookmark(context.Context, *wrapperspb.UInt64Value) (*emptypb.Empty, error)
}

func RegisterBookmarksServer(s grpc.ServiceRegistrar, srv BookmarksServer) {
	s.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BookmarksServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListBookmarks", Handler: listBookmarksHandler},
		{MethodName: "GetBookmark", Handler: getBookmarkHandler},
		{MethodName: "CreateBookmark", Handler: createBookmarkHandler},
		{MethodName: "DeleteBookmark", Handler: deleteBookmarkHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bookmarks/v1/bookmarks.proto",
}

func listBookmarksHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BookmarksServer).ListBookmarks(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodListBookmarks}
	return interceptor(ctx, in, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BookmarksServer).ListBookmarks(ctx, req.(*emptypb.Empty))
	})
}

func getBookmarkHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.UInt64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BookmarksServer).GetBookmark(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodGetBookmark}
	return interceptor(ctx, in, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BookmarksServer).GetBookmark(ctx, req.(*wrapperspb.UInt64Value))
	})
}

func createBookmarkHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BookmarksServer).CreateBookmark(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodCreateBookmark}
	return interceptor(ctx, in, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BookmarksServer).CreateBookmark(ctx, req.(*structpb.Struct))
	})
}

func deleteBookmarkHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.UInt64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BookmarksServer).DeleteBookmark(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodDeleteBookmark}
	return interceptor(ctx, in, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BookmarksServer).DeleteBookmark(ctx, req.(*wrapperspb.UInt64Value))
	})
}

// Client calls the Bookmarks service on an existing connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) ListBookmarks(ctx context.Context, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, MethodListBookmarks, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetBookmark(ctx context.Context, id uint64, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodGetBookmark, wrapperspb.UInt64(id), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateBookmark(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodCreateBookmark, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteBookmark(ctx context.Context, id uint64, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, MethodDeleteBookmark, wrapperspb.UInt64(id), new(emptypb.Empty), opts...)
}
