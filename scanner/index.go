package scanner

// Entry is one distinct content seen at a given size.
type Entry struct {
	Size  int64
	Count int64
}

// bucket groups files of one exact size. It is either deferred (a single
// path, never hashed) or materialized (every digest hashed at this size).
// A bucket goes from deferred to materialized once and never back.
type bucket struct {
	deferred string
	digests  map[Digest]*Entry
}

func (b *bucket) materialized() bool {
	return b.digests != nil
}

// HashFailure names a path whose contents could not be hashed.
type HashFailure struct {
	Path string
	Err  error
}

// AddResult describes what one call to Index.Add changed.
type AddResult struct {
	// Inserted is the number of digests that were new to the index. Each
	// one is a unique file of the added size.
	Inserted int

	// Duplicate is set when the added file matched a known digest.
	Duplicate bool

	// Deferred is set when the file opened a new bucket and was not hashed.
	Deferred bool

	// Promoted is set when a deferred bucket was materialized, which takes
	// its file out of the deferred state whether or not it could be hashed.
	Promoted bool

	// Failures lists every path that could not be hashed during the call.
	Failures []HashFailure
}

// Index tracks file identity by size first and content second, so that a
// file whose size has not been seen before is never hashed. It is not safe
// for concurrent use.
type Index struct {
	hasher  Hasher
	buckets map[int64]*bucket
}

func NewIndex(h Hasher) *Index {
	return &Index{
		hasher:  h,
		buckets: make(map[int64]*bucket),
	}
}

// Add records a regular file of the given size.
func (ix *Index) Add(path string, size int64) AddResult {
	var res AddResult

	b, ok := ix.buckets[size]
	if !ok {
		ix.buckets[size] = &bucket{deferred: path}
		res.Deferred = true
		return res
	}

	sum, err := ix.hasher.Sum(path)
	if err != nil {
		// The bucket is left as it was.
		res.Failures = append(res.Failures, HashFailure{Path: path, Err: err})
		return res
	}

	if !b.materialized() {
		b.digests = make(map[Digest]*Entry, 2)
		old := b.deferred
		b.deferred = ""
		res.Promoted = true

		// An unreadable deferred file is dropped for good; the bucket still
		// materializes so that later arrivals of this size skip this step.
		if oldSum, err := ix.hasher.Sum(old); err != nil {
			res.Failures = append(res.Failures, HashFailure{Path: old, Err: err})
		} else if ix.insert(b, oldSum, size) {
			res.Inserted++
		}
	}

	if ix.insert(b, sum, size) {
		res.Inserted++
	} else {
		res.Duplicate = true
	}
	return res
}

func (ix *Index) insert(b *bucket, sum Digest, size int64) bool {
	if e, ok := b.digests[sum]; ok {
		e.Count++
		return false
	}
	b.digests[sum] = &Entry{Size: size, Count: 1}
	return true
}

// Buckets returns the number of distinct sizes seen.
func (ix *Index) Buckets() int {
	return len(ix.buckets)
}

// Materialized returns the number of sizes that needed hashing.
func (ix *Index) Materialized() int {
	n := 0
	for _, b := range ix.buckets {
		if b.materialized() {
			n++
		}
	}
	return n
}

// Lookup returns the entry for a digest at a size, if that size has been
// materialized and the digest inserted.
func (ix *Index) Lookup(size int64, sum Digest) (Entry, bool) {
	b, ok := ix.buckets[size]
	if !ok || !b.materialized() {
		return Entry{}, false
	}
	e, ok := b.digests[sum]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Deferred reports the path held by a deferred bucket.
func (ix *Index) Deferred(size int64) (string, bool) {
	b, ok := ix.buckets[size]
	if !ok || b.materialized() {
		return "", false
	}
	return b.deferred, true
}
