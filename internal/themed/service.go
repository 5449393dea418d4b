// Package themed serves the theme registry over gRPC.
//
// The service is described by hand over protobuf well-known types so that no
// generated code is needed:
//
//	service ThemeService {
//	  rpc ListThemes(google.protobuf.Empty) returns (google.protobuf.ListValue);
//	  rpc GetTheme(google.protobuf.StringValue) returns (google.protobuf.Struct);
//	  rpc Ping(google.protobuf.Empty) returns (google.protobuf.Struct);
//	}
package themed

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName = "mdtheme.v1.ThemeService"

	ListThemesMethod = "/" + ServiceName + "/ListThemes"
	GetThemeMethod   = "/" + ServiceName + "/GetTheme"
	PingMethod       = "/" + ServiceName + "/Ping"
)

// ThemeServiceServer is the server API for ThemeService.
type ThemeServiceServer interface {
	ListThemes(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	GetTheme(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	Ping(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// RegisterThemeServiceServer registers srv with a gRPC server.
func RegisterThemeServiceServer(s grpc.ServiceRegistrar, srv ThemeServiceServer) {
	s.RegisterService(&themeServiceDesc, srv)
}

var themeServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ThemeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListThemes", Handler: listThemesHandler},
		{MethodName: "GetTheme", Handler: getThemeHandler},
		{MethodName: "Ping", Handler: pingHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "mdtheme/v1/theme.proto",
}

func listThemesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ThemeServiceServer).ListThemes(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ListThemesMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ThemeServiceServer).ListThemes(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func getThemeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ThemeServiceServer).GetTheme(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetThemeMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ThemeServiceServer).GetTheme(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func pingHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ThemeServiceServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: PingMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ThemeServiceServer).Ping(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}
