package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache.Get should always return a nil miss")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Fatalf("empty cache Get = hit %v err %v", hit, err)
	}
	if err := c.Set(ctx, "k", []byte("<svg/>"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Fatalf("Get = %q hit %v err %v", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry still present after Delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry returned")
	}
}

func TestFileCacheTruncatedEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	name := c.entryPath("k")
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(name, []byte{0, 1, 2}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("truncated entry: hit %v err %v", hit, err)
	}
	if _, err := os.Stat(name); !os.IsNotExist(err) {
		t.Error("truncated entry not removed")
	}
}

func TestFileCacheOverwrite(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("first"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", nil, 0); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || len(data) != 0 {
		t.Errorf("Get after overwrite = %q hit %v err %v", data, hit, err)
	}

	leftovers, _ := filepath.Glob(filepath.Join(filepath.Dir(c.entryPath("k")), ".tmp-*"))
	if len(leftovers) != 0 {
		t.Errorf("temporary files left behind: %v", leftovers)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	entries, err := os.ReadDir(c.Dir())
	if err != nil {
		t.Fatalf("cache dir missing after Clear: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("%d entries left after Clear", len(entries))
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	c, err := Open(ctx, "", dir)
	if err != nil {
		t.Fatalf("Open(\"\") error: %v", err)
	}
	if _, ok := c.(*FileCache); !ok {
		t.Errorf("Open(\"\") = %T, want *FileCache", c)
	}

	c, err = Open(ctx, "none", dir)
	if err != nil {
		t.Fatalf("Open(none) error: %v", err)
	}
	if _, ok := c.(*NullCache); !ok {
		t.Errorf("Open(none) = %T, want *NullCache", c)
	}

	if _, err := Open(ctx, "memcached://localhost", dir); !errors.Is(err, ErrUnsupportedURL) {
		t.Errorf("Open(memcached) error = %v, want ErrUnsupportedURL", err)
	}
	if _, err := Open(ctx, "redis://localhost:notaport", dir); err == nil {
		t.Error("Open with malformed redis url succeeded")
	}
}

func TestDigest(t *testing.T) {
	const want = "7797993a4b232d6428295022cdbe417564b55e0652f0cf72a2cf0413ece464fa"
	got := Digest([]byte("flare"))
	if got != want {
		t.Errorf("Digest(flare) = %s, want %s", got, want)
	}
	if got == Digest([]byte("flare ")) {
		t.Error("different inputs share a digest")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	base := ArtifactKeyOpts{Format: "svg", Width: 960, Height: 960, Padding: 3}
	ak := k.ArtifactKey("hash123", base)
	if !strings.HasPrefix(ak, "artifact:") {
		t.Errorf("ArtifactKey = %s, want artifact: prefix", ak)
	}
	if ak != k.ArtifactKey("hash123", base) {
		t.Error("ArtifactKey not deterministic")
	}

	variants := []ArtifactKeyOpts{
		{Format: "png", Width: 960, Height: 960, Padding: 3},
		{Format: "svg", Width: 800, Height: 960, Padding: 3},
		{Format: "svg", Width: 960, Height: 960, Padding: 0},
		{Format: "svg", Width: 960, Height: 960, Padding: 3, Focus: "analytics"},
	}
	for _, v := range variants {
		if k.ArtifactKey("hash123", v) == ak {
			t.Errorf("options %+v produced the same key", v)
		}
	}
	if k.ArtifactKey("hash456", base) == ak {
		t.Error("different data produced the same key")
	}
}

func TestScopedKeyer(t *testing.T) {
	opts := ArtifactKeyOpts{Format: "svg"}
	scoped := NewScopedKeyer(NewDefaultKeyer(), "v1:")
	if got, want := scoped.ArtifactKey("h", opts), "v1:"+NewDefaultKeyer().ArtifactKey("h", opts); got != want {
		t.Errorf("ArtifactKey = %s, want %s", got, want)
	}

	if got := NewScopedKeyer(nil, "p:").ArtifactKey("h", opts); !strings.HasPrefix(got, "p:artifact:") {
		t.Errorf("nil inner keyer: %s", got)
	}
}

func TestTransient(t *testing.T) {
	if Transient(nil) != nil {
		t.Error("Transient(nil) != nil")
	}

	err := Transient(ErrNetwork)
	if !IsTransient(err) {
		t.Error("IsTransient(Transient(err)) = false")
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("message changed: %q", err.Error())
	}
	if !errors.Is(err, ErrNetwork) {
		t.Error("Transient hides the wrapped error from errors.Is")
	}
	if !IsTransient(fmt.Errorf("ping: %w", err)) {
		t.Error("IsTransient misses a wrapped transient error")
	}
	if IsTransient(ErrUnsupportedURL) {
		t.Error("IsTransient(ErrUnsupportedURL) = true")
	}
}

func TestBackoff(t *testing.T) {
	ctx := context.Background()
	b := backoff{attempts: 3, first: time.Millisecond}

	tests := []struct {
		name      string
		fail      int
		transient bool
		wantCalls int
		wantErr   bool
	}{
		{"success", 0, true, 1, false},
		{"permanent", 10, false, 1, true},
		{"recovers", 2, true, 3, false},
		{"exhausted", 10, true, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := b.do(ctx, func() error {
				calls++
				if calls > tt.fail {
					return nil
				}
				if tt.transient {
					return Transient(ErrNetwork)
				}
				return ErrUnsupportedURL
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBackoffCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := backoff{attempts: 5, first: time.Hour}.do(ctx, func() error {
		calls++
		return Transient(ErrNetwork)
	})
	if !errors.Is(err, context.Canceled) || calls != 1 {
		t.Errorf("err = %v after %d calls, want context.Canceled after 1", err, calls)
	}
}
