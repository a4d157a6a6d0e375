package responder

import (
	"context"

	"github.com/ashureev/matter/internal/domain"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	sidecarServiceName = "matter.responder.v1.Responder"
	respondMethod      = "/" + sidecarServiceName + "/Respond"
)

// SidecarServer is implemented by processes that answer reflections over gRPC.
// The request struct carries goal_text, category, reflection and prompt.
type SidecarServer interface {
	Respond(ctx context.Context, req *structpb.Struct) (*wrapperspb.StringValue, error)
}

// RegisterSidecarServer registers impl on s.
func RegisterSidecarServer(s grpc.ServiceRegistrar, impl SidecarServer) {
	s.RegisterService(&sidecarServiceDesc, impl)
}

func respondHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SidecarServer).Respond(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: respondMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SidecarServer).Respond(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var sidecarServiceDesc = grpc.ServiceDesc{
	ServiceName: sidecarServiceName,
	HandlerType: (*SidecarServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Respond", Handler: respondHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "matter/responder/v1/responder.proto",
}

type sidecar struct {
	responder *Responder
}

// NewSidecar exposes r as a SidecarServer so one process can hold the model
// credentials while servers call it with the grpc provider.
func NewSidecar(r *Responder) SidecarServer {
	return &sidecar{responder: r}
}

func (s *sidecar) Respond(ctx context.Context, req *structpb.Struct) (*wrapperspb.StringValue, error) {
	fields := req.GetFields()
	text := s.responder.Respond(ctx, Request{
		GoalText:   fields["goal_text"].GetStringValue(),
		Category:   domain.Category(fields["category"].GetStringValue()),
		Reflection: fields["reflection"].GetStringValue(),
	})
	return wrapperspb.String(text), nil
}
