package scanner

import "sync"

// DefaultSampleEvery is how many files pass between updates of the current
// path marker.
const DefaultSampleEvery = 50

// Stats is a snapshot of scan progress.
type Stats struct {
	Files       int64
	Bytes       int64
	UniqueFiles int64
	UniqueBytes int64

	// DuplicateFiles and DuplicateBytes count files matching a known digest.
	DuplicateFiles int64
	DuplicateBytes int64

	// PendingFiles and PendingBytes count files whose size has not collided
	// with any other file yet. They were never hashed and are not part of the
	// unique counters. Unlike every other counter these can go down.
	PendingFiles int64
	PendingBytes int64

	Errors int64

	// CurrentPath is a sampled marker, not a cursor.
	CurrentPath string
}

// DistinctFiles counts unique contents plus files whose size is still unique.
func (s Stats) DistinctFiles() int64 {
	return s.UniqueFiles + s.PendingFiles
}

func (s Stats) DistinctBytes() int64 {
	return s.UniqueBytes + s.PendingBytes
}

// Ratio is distinct bytes over bytes seen, 0 before any bytes are seen.
func (s Stats) Ratio() float64 {
	if s.Bytes == 0 {
		return 0
	}
	return float64(s.DistinctBytes()) / float64(s.Bytes)
}

// Progress is the only state shared between the scanning worker and the
// reporter. The lock only ever covers counter arithmetic.
type Progress struct {
	mu          sync.Mutex
	stats       Stats
	sampleEvery int64
}

func NewProgress(sampleEvery int) *Progress {
	if sampleEvery <= 0 {
		sampleEvery = DefaultSampleEvery
	}
	return &Progress{sampleEvery: int64(sampleEvery)}
}

func (p *Progress) Snapshot() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// recordFile applies the outcome of one regular file.
func (p *Progress) recordFile(path string, size int64, res AddResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stats.Files++
	p.stats.Bytes += size
	p.stats.UniqueFiles += int64(res.Inserted)
	p.stats.UniqueBytes += int64(res.Inserted) * size
	p.stats.Errors += int64(len(res.Failures))

	if res.Duplicate {
		p.stats.DuplicateFiles++
		p.stats.DuplicateBytes += size
	}
	if res.Deferred {
		p.stats.PendingFiles++
		p.stats.PendingBytes += size
	}
	if res.Promoted {
		p.stats.PendingFiles--
		p.stats.PendingBytes -= size
	}

	if p.stats.Files%p.sampleEvery == 0 {
		p.stats.CurrentPath = path
	}
}

func (p *Progress) recordError() {
	p.mu.Lock()
	p.stats.Errors++
	p.mu.Unlock()
}
