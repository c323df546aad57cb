package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const (
	ServiceName = "rugbyrank.Fetcher"

	getRankingsMethod  = "/" + ServiceName + "/GetRankings"
	getFixturesMethod  = "/" + ServiceName + "/GetFixtures"
	saveSnapshotMethod = "/" + ServiceName + "/SaveSnapshot"
)

// FetcherServer is implemented by the fetcher.
type FetcherServer interface {
	GetRankings(ctx context.Context, req *RankingsRequest) (*RankingsResponse, error)
	GetFixtures(ctx context.Context, req *FixturesRequest) (*FixturesResponse, error)
	SaveSnapshot(ctx context.Context, req *SnapshotRequest) (*SnapshotResponse, error)
}

// FetcherServiceDesc describes the fetcher service for the gRPC server.
var FetcherServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FetcherServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetRankings",
			Handler:    unaryHandler(getRankingsMethod, FetcherServer.GetRankings),
		},
		{
			MethodName: "GetFixtures",
			Handler:    unaryHandler(getFixturesMethod, FetcherServer.GetFixtures),
		},
		{
			MethodName: "SaveSnapshot",
			Handler:    unaryHandler(saveSnapshotMethod, FetcherServer.SaveSnapshot),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rugbyrank/fetcher",
}

// RegisterFetcherServer registers the implementation on the server.
// The server must be created with ServerOptions so the messages are decoded as JSON.
func RegisterFetcherServer(s grpc.ServiceRegistrar, srv FetcherServer) {
	s.RegisterService(&FetcherServiceDesc, srv)
}

// ServerOptions returns the options the fetcher server must be created with.
func ServerOptions() []grpc.ServerOption {
	return []grpc.ServerOption{grpc.ForceServerCodec(JSONCodec{})}
}

// unaryHandler adapts a typed method into a gRPC method handler.
func unaryHandler[Req any, Resp any](
	fullMethod string,
	call func(FetcherServer, context.Context, *Req) (*Resp, error),
) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}

		if interceptor == nil {
			return call(srv.(FetcherServer), ctx, in)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(FetcherServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// FetcherClient is the client side of the fetcher service.
type FetcherClient interface {
	GetRankings(ctx context.Context, req *RankingsRequest) (*RankingsResponse, error)
	GetFixtures(ctx context.Context, req *FixturesRequest) (*FixturesResponse, error)
	SaveSnapshot(ctx context.Context, req *SnapshotRequest) (*SnapshotResponse, error)
}

type fetcherClient struct {
	cc grpc.ClientConnInterface
}

// NewFetcherClient creates a client over the connection.
func NewFetcherClient(cc grpc.ClientConnInterface) FetcherClient {
	return &fetcherClient{cc: cc}
}

func (c *fetcherClient) GetRankings(ctx context.Context, req *RankingsRequest) (*RankingsResponse, error) {
	out := new(RankingsResponse)
	if err := c.cc.Invoke(ctx, getRankingsMethod, req, out, grpc.ForceCodec(JSONCodec{})); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fetcherClient) GetFixtures(ctx context.Context, req *FixturesRequest) (*FixturesResponse, error) {
	out := new(FixturesResponse)
	if err := c.cc.Invoke(ctx, getFixturesMethod, req, out, grpc.ForceCodec(JSONCodec{})); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fetcherClient) SaveSnapshot(ctx context.Context, req *SnapshotRequest) (*SnapshotResponse, error) {
	out := new(SnapshotResponse)
	if err := c.cc.Invoke(ctx, saveSnapshotMethod, req, out, grpc.ForceCodec(JSONCodec{})); err != nil {
		return nil, err
	}
	return out, nil
}
