package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "saloon"

var (
	RaftIsLeader = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "raft",
		Name:      "is_leader",
		Help:      "Whether this node is the Raft leader (1=leader, 0=otherwise)",
	})

	RaftTerm = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "raft",
		Name:      "term",
		Help:      "Current Raft term",
	})

	RaftCommitIndex = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "raft",
		Name:      "commit_index",
		Help:      "Current Raft commit index",
	})

	RaftAppliedIndex = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "raft",
		Name:      "applied_index",
		Help:      "Last Raft index applied to the memtable",
	})

	RaftLastLogIndex = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "raft",
		Name:      "last_log_index",
		Help:      "Index of the last entry in the local log",
	})

	RaftPeersTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "raft",
		Name:      "peers_total",
		Help:      "Number of Raft peers, excluding this node",
	})

	RaftElectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "raft",
		Name:      "elections_total",
		Help:      "Total elections started by this node",
	})

	RaftLeaderChangesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "raft",
		Name:      "leader_changes_total",
		Help:      "Total times this node became leader",
	})

	RaftVotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "raft",
		Name:      "votes_total",
		Help:      "RequestVote requests handled, by outcome",
	}, []string{"result"})

	RaftAppendEntriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "raft",
		Name:      "append_entries_total",
		Help:      "AppendEntries requests handled, by outcome",
	}, []string{"result"})

	RaftMessageErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "raft",
		Name:      "message_errors_total",
		Help:      "Total failed outbound Raft RPCs",
	}, []string{"peer_id", "type"})

	RaftProposalsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "raft",
		Name:      "proposals_total",
		Help:      "Total proposals submitted",
	})

	RaftProposalsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "raft",
		Name:      "proposals_failed_total",
		Help:      "Total failed proposals",
	})

	RaftStepDownFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "raft",
		Name:      "step_down_failures_total",
		Help:      "Replies with a newer term that could not be persisted",
	})

	BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "batch",
		Name:      "size",
		Help:      "Number of records per proposed entry",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	})

	BatchFlushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "batch",
		Name:      "flush_total",
		Help:      "Total batch flushes",
	}, []string{"reason"})

	MemTableSizeBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "memtable",
		Name:      "size_bytes",
		Help:      "Approximate memtable size in bytes",
	})

	MemTableEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "memtable",
		Name:      "entries",
		Help:      "Entries in the memtable, tombstones included",
	})

	MemTableFlushThresholdTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "memtable",
		Name:      "flush_threshold_total",
		Help:      "Times the memtable reached its write buffer size",
	})

	MemTableJournalWritesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "memtable",
		Name:      "journal_writes_total",
		Help:      "Total memtable journal records written",
	})

	GRPCRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "grpc",
		Name:      "requests_total",
		Help:      "Total gRPC requests",
	}, []string{"service", "method", "code"})

	GRPCRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "grpc",
		Name:      "request_duration_seconds",
		Help:      "gRPC request duration",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 20),
	}, []string{"service", "method"})

	WALWritesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "wal",
		Name:      "writes_total",
		Help:      "Total WAL records written",
	})

	WALWriteDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "wal",
		Name:      "write_duration_seconds",
		Help:      "WAL batch write duration",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 20),
	})
)
