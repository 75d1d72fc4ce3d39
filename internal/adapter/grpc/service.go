package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified name of the market query service
const ServiceName = "fintech.v1.MarketQuery"

// MarketQueryServer is the server API for the MarketQuery service.
// Requests and responses are google.protobuf.Struct messages.
type MarketQueryServer interface {
	CryptoOverview(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CryptoTop(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CryptoWorst(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CryptoVolume(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CryptoRange(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CryptoSearch(context.Context, *structpb.Struct) (*structpb.Struct, error)

	StockOverview(context.Context, *structpb.Struct) (*structpb.Struct, error)
	StockGainers(context.Context, *structpb.Struct) (*structpb.Struct, error)
	StockLosers(context.Context, *structpb.Struct) (*structpb.Struct, error)
	StockVolume(context.Context, *structpb.Struct) (*structpb.Struct, error)
	StockVolatile(context.Context, *structpb.Struct) (*structpb.Struct, error)
	StockRange(context.Context, *structpb.Struct) (*structpb.Struct, error)
	StockSearch(context.Context, *structpb.Struct) (*structpb.Struct, error)

	AddHolding(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PortfolioSummary(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PortfolioAllocation(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PortfolioHoldings(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PortfolioTop(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PortfolioWorst(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// MarketQueryServiceDesc describes the MarketQuery service for grpc.Server.RegisterService
var MarketQueryServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MarketQueryServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("CryptoOverview", MarketQueryServer.CryptoOverview),
		unary("CryptoTop", MarketQueryServer.CryptoTop),
		unary("CryptoWorst", MarketQueryServer.CryptoWorst),
		unary("CryptoVolume", MarketQueryServer.CryptoVolume),
		unary("CryptoRange", MarketQueryServer.CryptoRange),
		unary("CryptoSearch", MarketQueryServer.CryptoSearch),
		unary("StockOverview", MarketQueryServer.StockOverview),
		unary("StockGainers", MarketQueryServer.StockGainers),
		unary("StockLosers", MarketQueryServer.StockLosers),
		unary("StockVolume", MarketQueryServer.StockVolume),
		unary("StockVolatile", MarketQueryServer.StockVolatile),
		unary("StockRange", MarketQueryServer.StockRange),
		unary("StockSearch", MarketQueryServer.StockSearch),
		unary("AddHolding", MarketQueryServer.AddHolding),
		unary("PortfolioSummary", MarketQueryServer.PortfolioSummary),
		unary("PortfolioAllocation", MarketQueryServer.PortfolioAllocation),
		unary("PortfolioHoldings", MarketQueryServer.PortfolioHoldings),
		unary("PortfolioTop", MarketQueryServer.PortfolioTop),
		unary("PortfolioWorst", MarketQueryServer.PortfolioWorst),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "fintech/v1/market_query.proto",
}

// RegisterMarketQueryServer registers the service implementation on s
func RegisterMarketQueryServer(s grpc.ServiceRegistrar, srv MarketQueryServer) {
	s.RegisterService(&MarketQueryServiceDesc, srv)
}

type method func(MarketQueryServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// unary builds the method descriptor for a Struct-in, Struct-out call
func unary(name string, call method) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(MarketQueryServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(MarketQueryServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// Client calls MarketQuery methods over a client connection
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a new MarketQuery client
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes the named method with the given request fields
func (c *Client) Call(ctx context.Context, name string, fields map[string]interface{}, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+name, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
