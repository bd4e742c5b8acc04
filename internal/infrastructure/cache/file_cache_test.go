package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/doeshing/arcgen/internal/domain"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c := newFileCacheAt(t.TempDir(), time.Hour, 10)
	entry := domain.CacheEntry{
		Key:       "abc123",
		Code:      "print('hi')",
		Model:     "flash",
		Category:  domain.CategoryGeneral,
		CreatedAt: time.Now(),
	}
	if err := c.Set(entry); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok, err := c.Get("abc123")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.Code != entry.Code || got.Model != entry.Model {
		t.Fatalf("got = %+v", got)
	}
}

func TestFileCacheMiss(t *testing.T) {
	c := newFileCacheAt(t.TempDir(), time.Hour, 10)
	if _, ok, err := c.Get("nope"); ok || err != nil {
		t.Fatalf("Get miss: ok=%v err=%v", ok, err)
	}
}

func TestFileCacheExpiresOnRead(t *testing.T) {
	dir := t.TempDir()
	c := newFileCacheAt(dir, time.Minute, 10)
	entry := domain.CacheEntry{
		Key:       "stale",
		Code:      "print('old')",
		CreatedAt: time.Now().Add(-time.Hour),
	}
	if err := c.Set(entry); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if _, ok, err := c.Get("stale"); ok || err != nil {
		t.Fatalf("expired entry returned: ok=%v err=%v", ok, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "stale.json")); !os.IsNotExist(err) {
		t.Fatal("expired entry must be removed on read")
	}
}

func TestFileCacheEvictsOldestPastCap(t *testing.T) {
	dir := t.TempDir()
	c := newFileCacheAt(dir, time.Hour, 2)
	for i := 0; i < 3; i++ {
		key := fmt.Sprintf("key-%d", i)
		if err := c.Set(domain.CacheEntry{Key: key, Code: "x", CreatedAt: time.Now()}); err != nil {
			t.Fatalf("Set %s: %v", key, err)
		}
		// Spread mtimes so eviction order is deterministic.
		mod := time.Now().Add(time.Duration(i-3) * time.Minute)
		if err := os.Chtimes(filepath.Join(dir, key+".json"), mod, mod); err != nil {
			t.Fatalf("chtimes: %v", err)
		}
	}
	if err := c.Set(domain.CacheEntry{Key: "key-3", Code: "x", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("Set key-3: %v", err)
	}

	if _, ok, _ := c.Get("key-0"); ok {
		t.Fatal("oldest entry must be evicted")
	}
	if _, ok, _ := c.Get("key-3"); !ok {
		t.Fatal("newest entry must survive")
	}
}

func TestFileCacheClear(t *testing.T) {
	c := newFileCacheAt(t.TempDir(), time.Hour, 10)
	if err := c.Set(domain.CacheEntry{Key: "k", Code: "x", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	entries, err := c.Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("entries = %v, want empty", entries)
	}
}
