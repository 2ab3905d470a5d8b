package scanner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

type Config struct {
	Root string

	// Exclude is matched against absolute paths below the root with the
	// root's own symlinks resolved, not against the root as given.
	Exclude *Filter

	// Hasher defaults to sha256.
	Hasher Hasher

	// SampleEvery defaults to DefaultSampleEvery.
	SampleEvery int

	Logger logrus.FieldLogger
}

const (
	statusIdle int32 = iota
	statusRunning
	statusFinished
)

var ErrAlreadyStarted = errors.New("scan already started")

type Scanner struct {
	rootPath string // as given
	root     string // resolved

	exclude  *Filter
	index    *Index
	progress *Progress
	log      logrus.FieldLogger

	// Closed when the worker returns, normally or not.
	doneChan chan struct{}

	status int32 // idle | running | finished

	// Terminal error of the worker, readable once doneChan is closed.
	err error

	// Scanner start time in unix nanoseconds, 0 until the worker starts
	startTime atomic.Int64

	// ElapsedTime from scanner start in millisecond
	elapsedTime atomic.Int64
}

// NewScanner validates the root and prepares a scan. Nothing is read beyond
// the root's own metadata until Start or Run.
func NewScanner(cfg Config) (*Scanner, error) {
	if cfg.Root == "" {
		return nil, errors.New("root path is required")
	}

	abs, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", cfg.Root, err)
	}
	root, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", cfg.Root, err)
	}
	fi, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", cfg.Root)
	}

	h := cfg.Hasher
	if h == nil {
		if h, err = NewHasher(HashSHA256); err != nil {
			return nil, err
		}
	}

	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	return &Scanner{
		rootPath: cfg.Root,
		root:     root,
		exclude:  cfg.Exclude,
		index:    NewIndex(h),
		progress: NewProgress(cfg.SampleEvery),
		log:      log,
		doneChan: make(chan struct{}),
		status:   statusIdle,
	}, nil
}

// Start runs the scan on a background worker. It is a no-op if the scan has
// already been started.
func (s *Scanner) Start() {
	if !atomic.CompareAndSwapInt32(&s.status, statusIdle, statusRunning) {
		return
	}
	go s.run()
}

// Run scans in the calling goroutine and returns the terminal error, if any.
func (s *Scanner) Run() error {
	if !atomic.CompareAndSwapInt32(&s.status, statusIdle, statusRunning) {
		return ErrAlreadyStarted
	}
	s.run()
	return s.err
}

func (s *Scanner) run() {
	defer close(s.doneChan)
	defer atomic.StoreInt32(&s.status, statusFinished)

	start := time.Now()
	s.startTime.Store(start.UnixNano())
	s.log.WithFields(logrus.Fields{"root": s.root, "excludes": s.exclude.Len()}).Info("Scan started")

	s.err = s.walk()

	s.elapsedTime.Store(time.Since(start).Milliseconds())

	st := s.progress.Snapshot()
	entry := s.log.WithFields(logrus.Fields{
		"files":        st.Files,
		"bytes":        st.Bytes,
		"unique_files": st.UniqueFiles,
		"unique_bytes": st.UniqueBytes,
		"errors":       st.Errors,
		"sizes":        s.index.Buckets(),
		"hashed_sizes": s.index.Materialized(),
	})
	if s.err != nil {
		entry.WithError(s.err).Error("Scan failed")
		return
	}
	entry.Info("Scan finished")
}

func (s *Scanner) IsRunning() bool {
	return atomic.LoadInt32(&s.status) == statusRunning
}

// Done is closed once the worker has returned.
func (s *Scanner) Done() <-chan struct{} {
	return s.doneChan
}

// Err returns the terminal error of a finished scan.
func (s *Scanner) Err() error {
	select {
	case <-s.doneChan:
		return s.err
	default:
		return nil
	}
}

func (s *Scanner) Snapshot() Stats {
	return s.progress.Snapshot()
}

func (s *Scanner) RootPath() string {
	return s.rootPath
}

func (s *Scanner) ElapsedTime() time.Duration {
	select {
	case <-s.doneChan:
		return time.Duration(s.elapsedTime.Load()) * time.Millisecond
	default:
	}
	start := s.startTime.Load()
	if start == 0 {
		return 0
	}
	return time.Since(time.Unix(0, start))
}
