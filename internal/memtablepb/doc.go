// Package memtablepb holds the records a memtable writes: the mutations carried in
// raft log entries and the journal record that groups them by log index.
package memtablepb

//go:generate protoc -I ../.. --go_out=../.. --go_opt=module=saloon protocol/memtable.proto
