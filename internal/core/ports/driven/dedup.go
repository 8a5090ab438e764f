package driven

// DedupIndex is the set of content hashes seen so far. Add is the
// single check-and-insert operation; callers never race between a
// membership test and an insertion because there is no separate test.
type DedupIndex interface {
	// Add records hash and reports whether it was seen for the first
	// time. First-seen-wins: exactly one caller per hash gets true.
	Add(hash string) (first bool, err error)

	// Len returns the number of distinct hashes recorded.
	Len() int

	// Close releases any backing resources.
	Close() error
}
