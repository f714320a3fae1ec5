package report

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/golang/glog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/peer"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	MaxRcvMsgSize = 1024 * 1024

	collectorService = "sortbench.report.Collector"
	publishMethod    = "/" + collectorService + "/Publish"
)

// ErrCollectorStopped is returned to publishers once the collector is stopped
var ErrCollectorStopped = errors.New("collector is stopped")

// Feed is a single chart delivered by a Collector, or the error that
// prevented its delivery.
type Feed struct {
	ProducerAddr net.Addr
	Chart        *Chart
	Err          error
}

// Collector receives charts published by benchmark runs.
type Collector interface {
	GetFeed() chan *Feed
	Addr() net.Addr
	Stop()
}

// collectorServer is the server side contract of the Collector service.
type collectorServer interface {
	Publish(context.Context, *structpb.Struct) (*emptypb.Empty, error)
}

var collectorServiceDesc = grpc.ServiceDesc{
	ServiceName: collectorService,
	HandlerType: (*collectorServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Publish",
			Handler:    publishHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "report.proto",
}

func publishHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(collectorServer).Publish(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: publishMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(collectorServer).Publish(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

type grpcSrv struct {
	conn     net.Listener
	gSrv     *grpc.Server
	stopCh   chan struct{}
	stopOnce sync.Once
	feed     chan *Feed
}

var _ Collector = &grpcSrv{}
var _ collectorServer = &grpcSrv{}

func (srv *grpcSrv) GetFeed() chan *Feed {
	return srv.feed
}

func (srv *grpcSrv) Addr() net.Addr {
	return srv.conn.Addr()
}

// Stop shuts the collector down, calling it more than once is a no-op.
func (srv *grpcSrv) Stop() {
	srv.stopOnce.Do(func() {
		close(srv.stopCh)
		srv.gSrv.Stop()
		srv.conn.Close()
	})
}

// NewCollector starts a Collector listening on addr.
func NewCollector(addr string) (Collector, error) {
	conn, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s with error: %w", addr, err)
	}
	return Serve(conn), nil
}

// Serve starts a Collector on an existing listener.
func Serve(conn net.Listener) Collector {
	srv := &grpcSrv{
		conn:   conn,
		stopCh: make(chan struct{}),
		feed:   make(chan *Feed),
		gSrv: grpc.NewServer(
			grpc.MaxRecvMsgSize(MaxRcvMsgSize),
			grpc.KeepaliveParams(keepalive.ServerParameters{Time: time.Second * 30, Timeout: time.Second * 10}),
			grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{MinTime: time.Second * 10, PermitWithoutStream: true}),
		),
	}
	srv.gSrv.RegisterService(&collectorServiceDesc, srv)

	go srv.gSrv.Serve(conn)

	return srv
}

func (srv *grpcSrv) Publish(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	f := &Feed{}
	if p, ok := peer.FromContext(ctx); ok {
		f.ProducerAddr = p.Addr
		glog.V(5).Infof("Incoming chart from: %s", p.Addr)
	}
	chart, err := FromStruct(in)
	if err != nil {
		f.Err = err
	} else {
		f.Chart = chart
	}
	// Handing the chart over, unless the collector or the caller went away
	select {
	case srv.feed <- f:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-srv.stopCh:
		return nil, ErrCollectorStopped
	}
	if err != nil {
		return nil, err
	}

	return &emptypb.Empty{}, nil
}
