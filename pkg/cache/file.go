package cache

import (
	"context"
	"encoding/binary"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// headerLen is the size of the expiry stamp that precedes every payload.
const headerLen = 8

// FileCache keeps each entry in its own file below dir. A file holds the
// entry's expiry as big-endian Unix nanoseconds (zero for none) followed by
// the raw payload. Writes go through a temporary file and a rename, so a
// concurrent reader sees either the old entry or the new one.
type FileCache struct {
	dir string
}

// NewFileCache creates dir if needed and returns a cache rooted there.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// DefaultDir is packview's directory inside the user cache directory.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "packview"), nil
}

// Dir returns the directory holding the cache entries.
func (c *FileCache) Dir() string { return c.dir }

// Get reads key's file. Truncated and expired entries are removed and
// reported as misses.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	name := c.entryPath(key)
	raw, err := os.ReadFile(name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	case len(raw) < headerLen:
		_ = os.Remove(name)
		return nil, false, nil
	}

	if exp := int64(binary.BigEndian.Uint64(raw)); exp != 0 && time.Now().UnixNano() > exp {
		_ = os.Remove(name)
		return nil, false, nil
	}
	return raw[headerLen:], true, nil
}

// Set writes data under key, replacing any previous entry.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	name := c.entryPath(key)
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return err
	}

	var exp uint64
	if ttl > 0 {
		exp = uint64(time.Now().Add(ttl).UnixNano())
	}
	buf := make([]byte, headerLen, headerLen+len(data))
	binary.BigEndian.PutUint64(buf, exp)
	buf = append(buf, data...)

	tmp, err := os.CreateTemp(filepath.Dir(name), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), name)
}

// Delete removes key's entry. Deleting a missing key is not an error.
func (c *FileCache) Delete(_ context.Context, key string) error {
	if err := os.Remove(c.entryPath(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Clear empties dir, leaving the directory itself in place.
func (c *FileCache) Clear(context.Context) error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(c.dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (c *FileCache) Close() error { return nil }

// entryPath fans entries out over subdirectories named by the first byte
// of the key digest.
func (c *FileCache) entryPath(key string) string {
	d := Digest([]byte(key))
	return filepath.Join(c.dir, d[:2], d[2:])
}

var (
	_ Cache   = (*FileCache)(nil)
	_ Clearer = (*FileCache)(nil)
)
