package scanner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUnreadable = errors.New("unreadable")

// fakeHasher maps paths to digests without touching the filesystem.
type fakeHasher struct {
	digests map[string]Digest
	fail    map[string]bool
	calls   map[string]int
}

func newFakeHasher(digests map[string]Digest) *fakeHasher {
	return &fakeHasher{digests: digests, fail: map[string]bool{}, calls: map[string]int{}}
}

func (h *fakeHasher) Sum(path string) (Digest, error) {
	h.calls[path]++
	if h.fail[path] {
		return "", errUnreadable
	}
	return h.digests[path], nil
}

func (h *fakeHasher) totalCalls() int {
	n := 0
	for _, c := range h.calls {
		n += c
	}
	return n
}

func TestIndexUniqueSizesAreNeverHashed(t *testing.T) {
	h := newFakeHasher(nil)
	ix := NewIndex(h)

	for i, p := range []string{"/a", "/b", "/c"} {
		res := ix.Add(p, int64(100+i))
		assert.True(t, res.Deferred)
		assert.Zero(t, res.Inserted)
		assert.Empty(t, res.Failures)
	}

	assert.Zero(t, h.totalCalls())
	assert.Equal(t, 3, ix.Buckets())
	assert.Zero(t, ix.Materialized())

	p, ok := ix.Deferred(101)
	require.True(t, ok)
	assert.Equal(t, "/b", p)
}

func TestIndexTransitionSameContent(t *testing.T) {
	h := newFakeHasher(map[string]Digest{"/a": "x", "/b": "x"})
	ix := NewIndex(h)

	ix.Add("/a", 100)
	res := ix.Add("/b", 100)

	assert.True(t, res.Promoted)
	assert.True(t, res.Duplicate)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 1, h.calls["/a"])
	assert.Equal(t, 1, h.calls["/b"])

	e, ok := ix.Lookup(100, "x")
	require.True(t, ok)
	assert.Equal(t, Entry{Size: 100, Count: 2}, e)

	_, deferred := ix.Deferred(100)
	assert.False(t, deferred)
	assert.Equal(t, 1, ix.Materialized())
}

func TestIndexTransitionDifferentContent(t *testing.T) {
	h := newFakeHasher(map[string]Digest{"/a": "x", "/b": "y"})
	ix := NewIndex(h)

	ix.Add("/a", 100)
	res := ix.Add("/b", 100)

	assert.True(t, res.Promoted)
	assert.False(t, res.Duplicate)
	assert.Equal(t, 2, res.Inserted)
}

func TestIndexMaterializedBucket(t *testing.T) {
	h := newFakeHasher(map[string]Digest{"/a": "x", "/b": "y", "/c": "x", "/d": "z"})
	ix := NewIndex(h)

	ix.Add("/a", 100)
	ix.Add("/b", 100)

	res := ix.Add("/c", 100)
	assert.False(t, res.Promoted)
	assert.True(t, res.Duplicate)
	assert.Zero(t, res.Inserted)

	res = ix.Add("/d", 100)
	assert.False(t, res.Duplicate)
	assert.Equal(t, 1, res.Inserted)

	// The deferred file is hashed exactly once, at the transition.
	assert.Equal(t, 1, h.calls["/a"])

	e, ok := ix.Lookup(100, "x")
	require.True(t, ok)
	assert.Equal(t, int64(2), e.Count)
}

func TestIndexNewArrivalHashFailureKeepsBucketDeferred(t *testing.T) {
	h := newFakeHasher(map[string]Digest{"/a": "x", "/c": "x"})
	h.fail["/b"] = true
	ix := NewIndex(h)

	ix.Add("/a", 100)
	res := ix.Add("/b", 100)

	require.Len(t, res.Failures, 1)
	assert.Equal(t, "/b", res.Failures[0].Path)
	assert.ErrorIs(t, res.Failures[0].Err, errUnreadable)
	assert.False(t, res.Promoted)
	assert.Zero(t, res.Inserted)
	assert.Zero(t, h.calls["/a"])

	p, ok := ix.Deferred(100)
	require.True(t, ok)
	assert.Equal(t, "/a", p)

	// The bucket still works for the next arrival.
	res = ix.Add("/c", 100)
	assert.True(t, res.Promoted)
	assert.True(t, res.Duplicate)
	assert.Equal(t, 1, res.Inserted)
}

// A deferred file that cannot be hashed at transition time is dropped with
// no retry, and the bucket materializes with the new arrival alone.
func TestIndexDeferredHashFailureAbandonsOldPath(t *testing.T) {
	h := newFakeHasher(map[string]Digest{"/b": "y", "/c": "x", "/d": "y"})
	h.fail["/a"] = true
	ix := NewIndex(h)

	ix.Add("/a", 100)
	res := ix.Add("/b", 100)

	require.Len(t, res.Failures, 1)
	assert.Equal(t, "/a", res.Failures[0].Path)
	assert.True(t, res.Promoted)
	assert.False(t, res.Duplicate)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 1, ix.Materialized())

	// "/c" would have matched "/a" had it been readable; it counts as new.
	res = ix.Add("/c", 100)
	assert.Equal(t, 1, res.Inserted)
	assert.Empty(t, res.Failures)

	res = ix.Add("/d", 100)
	assert.True(t, res.Duplicate)

	// No further attempts were made on the abandoned path.
	assert.Equal(t, 1, h.calls["/a"])
}

func TestIndexZeroSizeFiles(t *testing.T) {
	h := newFakeHasher(map[string]Digest{"/a": "e", "/b": "e", "/c": "e"})
	ix := NewIndex(h)

	ix.Add("/a", 0)
	ix.Add("/b", 0)
	res := ix.Add("/c", 0)

	assert.True(t, res.Duplicate)
	e, ok := ix.Lookup(0, "e")
	require.True(t, ok)
	assert.Equal(t, int64(3), e.Count)
}
