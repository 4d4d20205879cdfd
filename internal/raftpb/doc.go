// Package raftpb holds the messages exchanged between raft nodes, the records raft
// writes to its WAL and the gRPC service that carries the messages. Everything
// here is generated from protocol/raft.proto.
package raftpb

//go:generate protoc -I ../.. --go_out=../.. --go_opt=module=saloon --go-grpc_out=../.. --go-grpc_opt=module=saloon protocol/raft.proto
