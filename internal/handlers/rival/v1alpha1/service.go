package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// ServiceName is the fully qualified rival service name
	ServiceName = "pixelxp.rival.v1alpha1.RivalService"

	// CalculateRivalXpMethod is the full method name for rival XP calculation
	CalculateRivalXpMethod = "/" + ServiceName + "/CalculateRivalXp"
)

// RivalServiceServer is the server API for the rival service. Bodies are
// google.protobuf.Struct values carrying the calculator's JSON shapes.
type RivalServiceServer interface {
	CalculateRivalXp(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// RegisterRivalServiceServer registers srv with the grpc server
func RegisterRivalServiceServer(s grpc.ServiceRegistrar, srv RivalServiceServer) {
	s.RegisterService(&RivalServiceDesc, srv)
}

// RivalServiceDesc describes the rival service to grpc
var RivalServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RivalServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CalculateRivalXp",
			Handler:    calculateRivalXpHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pixelxp/rival/v1alpha1/rival.proto",
}

func calculateRivalXpHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RivalServiceServer).CalculateRivalXp(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CalculateRivalXpMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RivalServiceServer).CalculateRivalXp(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
