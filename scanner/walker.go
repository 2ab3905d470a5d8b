package scanner

import (
	"fmt"
	"io/fs"

	"github.com/charlievieth/fastwalk"
	"github.com/sirupsen/logrus"
)

// walk visits every entry under the root. fastwalk runs with a single worker
// so the index is only ever touched by one goroutine at a time.
func (s *Scanner) walk() error {
	conf := fastwalk.Config{Follow: false, NumWorkers: 1}

	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == s.root {
				return fmt.Errorf("read root %s: %w", path, err)
			}
			s.log.WithFields(logrus.Fields{"path": path, "error": err}).Warn("Skipping unreadable entry")
			s.progress.recordError()
			return nil
		}

		typ := d.Type()
		switch {
		case typ&fs.ModeSymlink != 0:
			s.log.WithField("path", path).Debug("Skipping symlink")
			return nil
		case d.IsDir():
			if path != s.root && s.exclude.Match(path) {
				s.log.WithField("path", path).Info("Excluded directory")
				return fastwalk.SkipDir
			}
			return nil
		case s.exclude.Match(path):
			s.log.WithField("path", path).Debug("Excluded file")
			return nil
		case !typ.IsRegular():
			s.log.WithFields(logrus.Fields{"path": path, "mode": typ.String()}).Debug("Skipping special file")
			return nil
		}

		info, err := d.Info()
		if err != nil {
			s.log.WithFields(logrus.Fields{"path": path, "error": err}).Warn("Cannot stat file")
			s.progress.recordError()
			return nil
		}
		if !info.Mode().IsRegular() {
			// Replaced by something else since it was listed.
			return nil
		}

		s.visitFile(path, info.Size())
		return nil
	}

	return fastwalk.Walk(&conf, s.root, walkFn)
}

func (s *Scanner) visitFile(path string, size int64) {
	res := s.index.Add(path, size)
	for _, f := range res.Failures {
		s.log.WithFields(logrus.Fields{"path": f.Path, "error": f.Err}).Warn("Cannot hash file")
	}
	s.progress.recordFile(path, size, res)
}
