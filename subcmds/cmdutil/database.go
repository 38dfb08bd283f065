// Copyright (c) 2026 BVK Chaitanya

package cmdutil

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/bvkgo/kv"
	"github.com/bvkgo/kvbadger"
	"github.com/dgraph-io/badger/v4"
	"github.com/nightlyone/lockfile"
)

func isGoodKey(k string) bool {
	return path.IsAbs(k) && k == path.Clean(k)
}

// OpenDatabase opens the badger database in the data directory, creating
// the directory if necessary. Data directory is locked against other
// processes till the returned closer is called.
func OpenDatabase(dataDir string) (db kv.Database, closer func(), status error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, nil, fmt.Errorf("could not create data directory %q: %w", dataDir, err)
	}
	dataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("could not determine data-dir %q absolute path: %w", dataDir, err)
	}

	lockPath := filepath.Join(dataDir, "arbit.lock")
	flock, err := lockfile.New(lockPath)
	if err != nil {
		return nil, nil, fmt.Errorf("could not create lock file %q: %w", lockPath, err)
	}
	if err := flock.TryLock(); err != nil {
		return nil, nil, fmt.Errorf("could not get lock on file %q (is another instance running?): %w", lockPath, err)
	}
	defer func() {
		if status != nil {
			flock.Unlock()
		}
	}()

	bopts := badger.DefaultOptions(filepath.Join(dataDir, "db")).WithLoggingLevel(badger.WARNING)
	bdb, err := badger.Open(bopts)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open the database: %w", err)
	}
	slog.Debug("opened the database", "dir", dataDir)

	closer = func() {
		if err := bdb.Close(); err != nil {
			slog.Error("could not close the database (ignored)", "err", err)
		}
		if err := flock.Unlock(); err != nil {
			slog.Error("could not unlock the data directory (ignored)", "err", err)
		}
	}
	return kvbadger.New(bdb, isGoodKey), closer, nil
}
