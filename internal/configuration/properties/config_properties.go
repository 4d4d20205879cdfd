package properties

import (
	"net"
	"time"
)

type ApplicationConfigProperties struct {
	Profile  string `yaml:"profile"`
	LogLevel string `yaml:"log-level"`
}

type TransportConfigProperties struct {
	Network              string        `yaml:"network"`
	Address              string        `yaml:"address"`
	RaftPort             string        `yaml:"raft-port"`
	Timeout              time.Duration `yaml:"timeout"`
	MaxConcurrentStreams uint32        `yaml:"max-concurrent-streams"`
}

func (c *TransportConfigProperties) RaftAddr() string {
	return net.JoinHostPort(c.Address, c.RaftPort)
}

type WriteAheadLogProperties struct {
	NoSync bool `yaml:"no-sync"`
}

type RaftConfigProperties struct {
	NodeId string `yaml:"node-id"`
	// Peers maps the node id of every other member to its raft address.
	Peers               map[string]string       `yaml:"peers"`
	StorageDir          string                  `yaml:"storage-dir"`
	ElectionTimeout     time.Duration           `yaml:"election-timeout"`
	HeartbeatInterval   time.Duration           `yaml:"heartbeat-interval"`
	TickInterval        time.Duration           `yaml:"tick-interval"`
	RPCTimeout          time.Duration           `yaml:"rpc-timeout"`
	MaxEntriesPerAppend int                     `yaml:"max-entries-per-append"`
	BatchSize           int                     `yaml:"batch-size"`
	BatchMaxWait        time.Duration           `yaml:"batch-max-wait"`
	Wal                 WriteAheadLogProperties `yaml:"wal"`
}

type MemTableConfigProperties struct {
	Type                string `yaml:"type"`
	InitialVecSize      int    `yaml:"initial-vec-size"`
	WriteBufferSizeInMB uint64 `yaml:"write-buffer-size-in-mb"`
	JournalDir          string `yaml:"journal-dir"`
}

type MetricsConfigProperties struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
}

type Config struct {
	Application ApplicationConfigProperties `yaml:"app"`
	Transport   TransportConfigProperties   `yaml:"transport"`
	Raft        RaftConfigProperties        `yaml:"raft"`
	MemTable    MemTableConfigProperties    `yaml:"memtable"`
	Metrics     MetricsConfigProperties     `yaml:"metrics"`
}
