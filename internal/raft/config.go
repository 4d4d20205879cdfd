package raft

import (
	"fmt"
	"time"

	"saloon/internal/configuration/properties"

	"github.com/google/uuid"
)

const (
	defaultElectionTimeout     = 500 * time.Millisecond
	defaultHeartbeatInterval   = 100 * time.Millisecond
	defaultTickInterval        = 10 * time.Millisecond
	defaultRPCTimeout          = 200 * time.Millisecond
	defaultMaxEntriesPerAppend = 64
)

type Config struct {
	ID   uuid.UUID
	Addr string

	// ElectionTimeout is the lower bound T of the randomized timeout drawn from [T, 2T).
	ElectionTimeout   time.Duration
	HeartbeatInterval time.Duration
	TickInterval      time.Duration
	RPCTimeout        time.Duration

	MaxEntriesPerAppend int
}

// NewConfig builds a Config from the raft properties, filling zero values with defaults.
func NewConfig(rc *properties.RaftConfigProperties, addr string) (Config, error) {
	id, err := uuid.Parse(rc.NodeId)
	if err != nil {
		return Config{}, fmt.Errorf("%w: node-id %q: %v", ErrInvalidConfig, rc.NodeId, err)
	}

	cfg := Config{
		ID:                  id,
		Addr:                addr,
		ElectionTimeout:     rc.ElectionTimeout,
		HeartbeatInterval:   rc.HeartbeatInterval,
		TickInterval:        rc.TickInterval,
		RPCTimeout:          rc.RPCTimeout,
		MaxEntriesPerAppend: rc.MaxEntriesPerAppend,
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ElectionTimeout == 0 {
		c.ElectionTimeout = defaultElectionTimeout
	}
	if c.HeartbeatInterval == 0 {
		c.HeartbeatInterval = defaultHeartbeatInterval
	}
	if c.TickInterval == 0 {
		c.TickInterval = defaultTickInterval
	}
	if c.RPCTimeout == 0 {
		c.RPCTimeout = min(defaultRPCTimeout, c.ElectionTimeout/2)
	}
	if c.MaxEntriesPerAppend == 0 {
		c.MaxEntriesPerAppend = defaultMaxEntriesPerAppend
	}
}

func (c Config) Validate() error {
	switch {
	case c.ID == uuid.Nil:
		return fmt.Errorf("%w: node id must be set", ErrInvalidConfig)
	case c.ElectionTimeout <= 0:
		return fmt.Errorf("%w: election timeout must be positive", ErrInvalidConfig)
	case c.HeartbeatInterval <= 0 || c.HeartbeatInterval >= c.ElectionTimeout:
		return fmt.Errorf("%w: heartbeat interval %s must be positive and below election timeout %s",
			ErrInvalidConfig, c.HeartbeatInterval, c.ElectionTimeout)
	case c.TickInterval <= 0 || c.TickInterval > c.HeartbeatInterval:
		return fmt.Errorf("%w: tick interval %s must be positive and at most the heartbeat interval %s",
			ErrInvalidConfig, c.TickInterval, c.HeartbeatInterval)
	case c.RPCTimeout <= 0 || c.RPCTimeout >= c.ElectionTimeout:
		// one append is in flight per peer, so a longer rpc would hold back heartbeats
		return fmt.Errorf("%w: rpc timeout %s must be positive and below election timeout %s",
			ErrInvalidConfig, c.RPCTimeout, c.ElectionTimeout)
	case c.MaxEntriesPerAppend < 0:
		return fmt.Errorf("%w: max entries per append must not be negative", ErrInvalidConfig)
	}
	return nil
}

// ParsePeers converts the configured id → address map. The local id is dropped so
// every node can share one peers section.
func ParsePeers(self uuid.UUID, peers map[string]string) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(peers))
	for rawID, addr := range peers {
		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("%w: peer id %q: %v", ErrInvalidConfig, rawID, err)
		}
		if id == self {
			continue
		}
		if addr == "" {
			return nil, fmt.Errorf("%w: peer %s has no address", ErrInvalidConfig, id)
		}
		out[id] = addr
	}
	return out, nil
}
