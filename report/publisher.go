package report

import (
	"context"
	"fmt"

	"github.com/golang/glog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
)

// Publisher sends charts to a remote Collector.
type Publisher struct {
	conn *grpc.ClientConn
}

var _ Reporter = &Publisher{}

// NewPublisher dials the collector at addr. Extra options are appended to
// the default insecure transport.
func NewPublisher(addr string, opts ...grpc.DialOption) (*Publisher, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.Dial(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to dial collector %s with error: %w", addr, err)
	}
	return &Publisher{conn: conn}, nil
}

func (p *Publisher) Report(ctx context.Context, c *Chart) error {
	s, err := ToStruct(c)
	if err != nil {
		return fmt.Errorf("failed to encode chart %s with error: %w", c.Name, err)
	}
	if err := p.conn.Invoke(ctx, publishMethod, s, &emptypb.Empty{}); err != nil {
		return fmt.Errorf("failed to publish chart %s with error: %w", c.Name, err)
	}
	glog.V(5).Infof("published chart %s to %s", c.Name, p.conn.Target())

	return nil
}

func (p *Publisher) Close() error {
	return p.conn.Close()
}
