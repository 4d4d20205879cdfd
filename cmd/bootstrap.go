package main

import (
	"errors"
	"fmt"
	"log/slog"

	"saloon/internal/configuration"
	"saloon/internal/memtable"
	"saloon/internal/raft"
	"saloon/internal/transport"
)

type Services struct {
	MemTable *memtable.MemTable
	Storage  *raft.WALStorage
	Node     *raft.Node
	// Batcher is where a client-facing front end submits writes. This binary only
	// serves the inter-node RPCs, so nothing submits to it yet.
	Batcher *raft.Batcher

	peers []*transport.PeerClient
}

func NewServices(cfg configuration.ConfigProvider) (_ *Services, err error) {
	s := &Services{}
	defer func() {
		if err != nil {
			s.Close()
		}
	}()

	mc := cfg.GetMemTable()
	rc := cfg.GetRaft()
	settings := memtable.Settings{
		Type:              mc.Type,
		InitialVecSize:    mc.InitialVecSize,
		WriteBufferSizeMB: mc.WriteBufferSizeInMB,
	}
	if mc.JournalDir != "" {
		s.MemTable, err = memtable.Open(settings, mc.JournalDir, rc.Wal.NoSync)
	} else {
		slog.Warn("memtable journal disabled, every restart replays the raft log")
		s.MemTable, err = memtable.New(settings)
	}
	if err != nil {
		return nil, fmt.Errorf("memtable: %w", err)
	}

	s.Storage, err = raft.OpenStorage(rc.StorageDir, rc.Wal.NoSync)
	if err != nil {
		return nil, fmt.Errorf("raft storage: %w", err)
	}

	nodeCfg, err := raft.NewConfig(rc, cfg.GetTransport().RaftAddr())
	if err != nil {
		return nil, err
	}

	peerAddrs, err := raft.ParsePeers(nodeCfg.ID, rc.Peers)
	if err != nil {
		return nil, err
	}
	s.peers, err = transport.DialPeers(peerAddrs)
	if err != nil {
		return nil, err
	}

	s.Node, err = raft.NewNode(nodeCfg, s.Storage, s.MemTable, transport.AsPeers(s.peers))
	if err != nil {
		return nil, fmt.Errorf("raft node: %w", err)
	}

	s.Batcher = raft.NewBatcher(s.Node, rc.BatchSize, rc.BatchMaxWait)
	return s, nil
}

// Close stops everything in reverse start order. Safe on partially built services.
func (s *Services) Close() error {
	var errs []error
	if s.Batcher != nil {
		s.Batcher.Close()
	}
	if s.Node != nil {
		s.Node.Stop()
	}
	if err := transport.ClosePeers(s.peers); err != nil {
		errs = append(errs, err)
	}
	if s.Storage != nil {
		if err := s.Storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close raft storage: %w", err))
		}
	}
	if s.MemTable != nil {
		if err := s.MemTable.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close memtable: %w", err))
		}
	}
	return errors.Join(errs...)
}
