package sorter

import (
	"errors"
	"fmt"

	"github.com/amp-labs/typekey/value"
)

// ErrPartitionCount is returned when a Partitioner is created with a
// non-positive partition count.
var ErrPartitionCount = errors.New("partition count must be positive")

// Partitioner assigns decoded keys to shuffle partitions by structural
// hash. Keys that compare as structurally equal always land in the same
// partition; the assignment is not guaranteed stable across versions of
// this module.
type Partitioner struct {
	count int
}

// NewPartitioner returns a Partitioner over the given number of
// partitions.
func NewPartitioner(count int) (*Partitioner, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrPartitionCount, count)
	}

	return &Partitioner{count: count}, nil
}

// Count returns the number of partitions.
func (p *Partitioner) Count() int {
	return p.count
}

// Partition returns the partition index for the given key, in
// [0, Count()).
func (p *Partitioner) Partition(key *value.Value) (int, error) {
	h, err := key.Hash()
	if err != nil {
		return 0, err
	}

	return int(h % uint64(p.count)), nil
}
