package memtable

import (
	"fmt"
	"math"

	"saloon/internal/memtablepb"

	"google.golang.org/protobuf/proto"
)

type MutationKind uint8

const (
	MutationPut    MutationKind = 1
	MutationDelete MutationKind = 2
)

func (k MutationKind) String() string {
	switch k {
	case MutationPut:
		return "put"
	case MutationDelete:
		return "delete"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Mutation is one write carried by a replicated log entry. Its record form is
// memtablepb.Mutation.
type Mutation struct {
	Kind  MutationKind
	Key   []byte
	Value []byte
}

func PutMutation(key, value []byte) Mutation {
	return Mutation{Kind: MutationPut, Key: key, Value: value}
}

func DeleteMutation(key []byte) Mutation {
	return Mutation{Kind: MutationDelete, Key: key}
}

func (m *Mutation) validate() error {
	if m.Kind != MutationPut && m.Kind != MutationDelete {
		return fmt.Errorf("%w: kind %s", ErrInvalidMutation, m.Kind)
	}
	if len(m.Key) == 0 {
		return ErrEmptyKey
	}
	return nil
}

func (m *Mutation) toRecord() (*memtablepb.Mutation, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &memtablepb.Mutation{Kind: uint32(m.Kind), Key: m.Key, Value: m.Value}, nil
}

func mutationFromRecord(rec *memtablepb.Mutation) (Mutation, error) {
	kind := rec.GetKind()
	if kind > math.MaxUint8 {
		return Mutation{}, fmt.Errorf("%w: kind %d", ErrInvalidMutation, kind)
	}
	m := Mutation{Kind: MutationKind(kind), Key: rec.GetKey(), Value: rec.GetValue()}
	if err := m.validate(); err != nil {
		return Mutation{}, err
	}
	return m, nil
}

func (m *Mutation) Marshal() ([]byte, error) {
	rec, err := m.toRecord()
	if err != nil {
		return nil, err
	}
	return proto.Marshal(rec)
}

func (m *Mutation) Unmarshal(data []byte) error {
	var rec memtablepb.Mutation
	if err := proto.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMutation, err)
	}
	decoded, err := mutationFromRecord(&rec)
	if err != nil {
		return err
	}
	*m = decoded
	return nil
}

// EncodeMutations marshals each mutation into one log record.
func EncodeMutations(muts ...Mutation) ([][]byte, error) {
	records := make([][]byte, 0, len(muts))
	for i := range muts {
		rec, err := muts[i].Marshal()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
