package index

// PostingList is the ordered list of record positions (0-based indices
// into the collection snapshot the index was built from) where a token
// occurs. A position appears once per occurrence of the token in that
// record, so repeated mentions inflate term-frequency scoring.
type PostingList []int
