package index

// InvertedIndex maps a normalized token to the postings list of record
// positions containing it. An index is built once per record-collection
// snapshot and never mutated afterwards; when the collection changes a
// fresh index value is built and swapped in (copy-on-write), so arbitrarily
// many readers can share one index without locking.
type InvertedIndex struct {
	Index map[string]PostingList
}

// New returns an empty index.
func New() *InvertedIndex {
	return &InvertedIndex{Index: make(map[string]PostingList)}
}

// Postings returns the postings list for token, or nil if the token was
// never indexed.
func (ii *InvertedIndex) Postings(token string) PostingList {
	return ii.Index[token]
}

// Terms returns the number of distinct tokens in the index.
func (ii *InvertedIndex) Terms() int {
	return len(ii.Index)
}
