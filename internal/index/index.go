// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index maps call numbers to the repository records that claim them.
package index

import (
	"github.com/pdiddy/handle-lookup/internal/mods"
	"github.com/pdiddy/handle-lookup/pkg/types"
)

// Index maps a call number to the records whose MODS metadata declares it.
// Records within a bucket keep the order in which they were fetched.
type Index struct {
	buckets map[string][]types.Record
	records int
	skipped int
}

// Build indexes records by the first identifier in their MODS metadata.
// Records without a usable identifier are counted as skipped and left out.
func Build(records []types.Record) *Index {
	idx := &Index{buckets: make(map[string][]types.Record)}
	for _, rec := range records {
		id, ok := mods.ExtractIdentifier(rec.MODS())
		if !ok {
			idx.skipped++
			continue
		}
		idx.buckets[id] = append(idx.buckets[id], rec)
		idx.records++
	}
	return idx
}

// Lookup returns the records claiming callNumber. The match is exact and
// case-sensitive; a miss returns nil.
func (idx *Index) Lookup(callNumber string) []types.Record {
	return idx.buckets[callNumber]
}

// Len returns the number of distinct call numbers.
func (idx *Index) Len() int { return len(idx.buckets) }

// Records returns the number of records placed in a bucket.
func (idx *Index) Records() int { return idx.records }

// Skipped returns the number of records that yielded no call number.
func (idx *Index) Skipped() int { return idx.skipped }
