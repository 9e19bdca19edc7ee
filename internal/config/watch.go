package config

import (
	"context"
	"hash/fnv"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	logx "leadgate/pkg/logx"
)

// Watch reports on-disk changes to the config file. The running config
// is immutable, so a change only produces a warning that a restart is
// required. Content hashing keeps editor write storms down to one
// warning.
func Watch(ctx context.Context, path string, log logx.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory: editors replace files via rename, which
	// drops a watch on the file itself.
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return err
	}

	last := contentHash(path)
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Name != path || !ev.Op.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
					continue
				}
				h := contentHash(path)
				if h == last {
					continue
				}
				last = h
				log.Warn("config file changed on disk; restart to apply", logx.String("path", path))
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Debug("config watch error", logx.Err(err))
			}
		}
	}()
	return nil
}

func contentHash(path string) uint64 {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	h := fnv.New64a()
	_, _ = h.Write(b)
	return h.Sum64()
}
