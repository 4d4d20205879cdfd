package transport

import (
	"context"
	"errors"
	"fmt"
	"time"

	"saloon/internal/raft"
	"saloon/internal/raftpb"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
)

// PeerClient sends raft RPCs to one remote member over gRPC.
type PeerClient struct {
	id     uuid.UUID
	addr   string
	conn   *grpc.ClientConn
	client raftpb.RaftClient
}

var _ raft.Peer = (*PeerClient)(nil)

// NewPeerClient wraps an existing connection. The connection is owned by the client.
func NewPeerClient(id uuid.UUID, addr string, conn *grpc.ClientConn) *PeerClient {
	return &PeerClient{
		id:     id,
		addr:   addr,
		conn:   conn,
		client: raftpb.NewRaftClient(conn),
	}
}

func (p *PeerClient) ID() uuid.UUID { return p.id }

func (p *PeerClient) Addr() string { return p.addr }

func (p *PeerClient) RequestVote(ctx context.Context, req *raftpb.RequestVoteRequest) (*raftpb.RequestVoteResponse, error) {
	return p.client.RequestVote(ctx, req)
}

func (p *PeerClient) AppendEntries(ctx context.Context, req *raftpb.AppendEntriesRequest) (*raftpb.AppendEntriesResponse, error) {
	return p.client.AppendEntries(ctx, req)
}

func (p *PeerClient) Close() error {
	return p.conn.Close()
}

// DialPeers creates one client per peer. The connections are lazy, so unreachable
// peers do not fail the dial; on error every client created so far is closed.
func DialPeers(peers map[uuid.UUID]string, opts ...grpc.DialOption) ([]*PeerClient, error) {
	clients := make([]*PeerClient, 0, len(peers))
	for id, addr := range peers {
		conn, err := dialPeer(addr, opts...)
		if err != nil {
			_ = ClosePeers(clients)
			return nil, fmt.Errorf("dial peer %s at %s: %w", id, addr, err)
		}
		clients = append(clients, NewPeerClient(id, addr, conn))
	}
	return clients, nil
}

func ClosePeers(clients []*PeerClient) error {
	var errs []error
	for _, c := range clients {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close peer %s: %w", c.id, err))
		}
	}
	return errors.Join(errs...)
}

// AsPeers converts the clients into the slice NewNode expects.
func AsPeers(clients []*PeerClient) []raft.Peer {
	peers := make([]raft.Peer, len(clients))
	for i, c := range clients {
		peers[i] = c
	}
	return peers
}

func dialPeer(addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	base := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                30 * time.Second,
			Timeout:             5 * time.Second,
			PermitWithoutStream: true,
		}),
	}
	return grpc.NewClient(addr, append(base, opts...)...)
}
