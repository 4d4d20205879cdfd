package memtable

import "errors"

var (
	ErrUnknownStoreType = errors.New("memtable: unknown store type")

	ErrEmptyKey = errors.New("memtable: empty key")

	ErrInvalidMutation = errors.New("memtable: invalid mutation")
)
