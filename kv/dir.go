package kv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Dir is a Store that keeps each key in a <key>.json file of a directory.
type Dir struct {
	path string
	log  zerolog.Logger
}

// NewDir returns a store rooted at path. The directory is created on the
// first write.
func NewDir(path string, log zerolog.Logger) *Dir {
	return &Dir{path: path, log: log.With().Str("component", "kv.dir").Str("path", path).Logger()}
}

func (d *Dir) file(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(d.path, key+".json"), nil
}

// Get reads the file of key.
func (d *Dir) Get(_ context.Context, key string) ([]byte, bool, error) {
	name, err := d.file(key)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, true, nil
}

// Set writes the file of key. The previous content is replaced atomically.
func (d *Dir) Set(_ context.Context, key string, value []byte) error {
	name, err := d.file(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d.path, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", d.path, err)
	}
	if err := atomicWrite(name, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	d.log.Debug().Str("key", key).Int("bytes", len(value)).Msg("stored")
	return nil
}

func (d *Dir) Close() error { return nil }

// atomicWrite writes data to a temporary file next to path, then renames it.
func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "tmp-*.json")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}
