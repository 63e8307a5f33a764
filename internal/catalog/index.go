package catalog

import (
	"encoding/binary"
	"slices"
	"sort"

	"github.com/bits-and-blooms/bloom/v3"

	"github.com/tuannm99/relstore/internal/record"
)

// filterCapacity/filterFP size the per-index bloom filter.
const (
	filterCapacity = 100_000
	filterFP       = 0.01
)

// Index is an equality index for one column: value -> sorted row-id list.
//
// A bloom filter in front of the bucket map answers definite misses before
// the map lookup. Deletions are never removed from the filter; a stale
// positive just falls through to a missing bucket.
type Index struct {
	Column  string
	buckets map[record.Value][]int
	filter  *bloom.BloomFilter
}

func NewIndex(column string) *Index {
	return &Index{
		Column:  column,
		buckets: make(map[record.Value][]int),
		filter:  bloom.NewWithEstimates(filterCapacity, filterFP),
	}
}

// Insert adds rowID to the bucket for v, keeping the bucket sorted.
func (ix *Index) Insert(v record.Value, rowID int) {
	ix.filter.Add(valueKey(v))
	b := ix.buckets[v]
	at := sort.SearchInts(b, rowID)
	ix.buckets[v] = slices.Insert(b, at, rowID)
}

// Remove drops rowID from the bucket for v. Empty buckets are pruned;
// lookups treat a missing bucket as zero matches either way.
func (ix *Index) Remove(v record.Value, rowID int) {
	b := ix.buckets[v]
	at := sort.SearchInts(b, rowID)
	if at >= len(b) || b[at] != rowID {
		return
	}
	b = slices.Delete(b, at, at+1)
	if len(b) == 0 {
		delete(ix.buckets, v)
		return
	}
	ix.buckets[v] = b
}

// Lookup returns the row ids holding v, sorted ascending.
func (ix *Index) Lookup(v record.Value) []int {
	if !ix.filter.Test(valueKey(v)) {
		return nil
	}
	return ix.buckets[v]
}

// Contains reports whether any row holds v.
func (ix *Index) Contains(v record.Value) bool {
	return len(ix.Lookup(v)) > 0
}

// ShiftAfter decrements every row id greater than deleted across all
// buckets, tracking the physical compaction after a row removal. The
// deleted row's own entries must already be gone.
func (ix *Index) ShiftAfter(deleted int) {
	for v, b := range ix.buckets {
		for i, id := range b {
			if id > deleted {
				b[i] = id - 1
			}
		}
		ix.buckets[v] = b
	}
}

// Keys returns the distinct indexed values in sorted order. All values in
// one index share the column's type, so the ordering is total.
func (ix *Index) Keys() []record.Value {
	keys := make([]record.Value, 0, len(ix.buckets))
	for v := range ix.buckets {
		keys = append(keys, v)
	}
	sort.Slice(keys, func(i, j int) bool {
		c, err := keys[i].Compare(keys[j])
		return err == nil && c < 0
	})
	return keys
}

func (ix *Index) Len() int { return len(ix.buckets) }

// valueKey is the bloom filter key for a value.
func valueKey(v record.Value) []byte {
	switch v.Type {
	case record.ColInt:
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], uint64(v.Int))
		return b[:]
	case record.ColBool:
		if v.Bool {
			return []byte{1}
		}
		return []byte{0}
	default:
		return []byte(v.Str)
	}
}
