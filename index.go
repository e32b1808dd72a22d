package flightdb

import (
	"iter"

	"github.com/google/btree"
)

const indexDegree = 32

// Index owns every flight record, keyed by flight number. The hashmap
// serves point lookups and the b-tree keeps the flight numbers ordered for
// traversal.
//
// Index is not safe for concurrent use.
type Index struct {
	hashmap map[int]*Flight
	keys    *btree.BTreeG[int]
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		hashmap: make(map[int]*Flight, 64),
		keys:    btree.NewOrderedG[int](indexDegree),
	}
}

// Len returns the number of flights, soft deleted ones included.
func (idx *Index) Len() int {
	return idx.keys.Len()
}

// Get returns the stored flight, or nil if absent. Soft deleted flights are
// returned too, callers check Deleted themselves.
func (idx *Index) Get(number int) *Flight {
	f, ok := idx.hashmap[number]
	if ok {
		return f
	}

	return nil
}

// Put inserts the flight, or overwrites the fields of the flight stored under
// the same number.
func (idx *Index) Put(f Flight) {
	if stored, ok := idx.hashmap[f.Number]; ok {
		*stored = f
		return
	}

	idx.keys.ReplaceOrInsert(f.Number)
	idx.hashmap[f.Number] = &f
}

// SoftDelete marks the flight as deleted and clears its destination and
// seats. It returns false if the flight is absent.
func (idx *Index) SoftDelete(number int) bool {
	f := idx.Get(number)
	if f == nil {
		return false
	}

	f.markDeleted()
	return true
}

// All yields every flight in ascending flight number order. Each call starts
// a fresh traversal.
func (idx *Index) All() iter.Seq[*Flight] {
	return func(yield func(*Flight) bool) {
		idx.keys.Ascend(func(number int) bool {
			return yield(idx.hashmap[number])
		})
	}
}

// Range calls fn for every flight in ascending flight number order until fn
// returns false.
func (idx *Index) Range(fn func(f *Flight) bool) {
	idx.All()(fn)
}

// Reset drops every flight.
func (idx *Index) Reset() {
	clear(idx.hashmap)
	idx.keys.Clear(false)
}
