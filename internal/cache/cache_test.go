package cache

import (
	"strings"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	k1 := Key("hours", "09:00-18:00")
	k2 := Key("hours", "09:00-18:00")
	if k1 != k2 {
		t.Error("Key must be deterministic")
	}
	if !strings.HasPrefix(k1, "factgate:v1:") {
		t.Errorf("Expected versioned key prefix, got %q", k1)
	}

	if Key("hours", "09:00-18:00") == Key("price", "09:00-18:00") {
		t.Error("Key must incorporate the claim type")
	}
	// Concatenation must not be ambiguous across the type/value boundary
	if Key("ab", "c") == Key("a", "bc") {
		t.Error("Key must separate type and value")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("Expected miss for absent key")
	}

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if v, ok := c.Get("k"); !ok || string(v) != "v" {
		t.Errorf("Expected hit with value v, got %q %v", v, ok)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get("k"); ok {
		t.Error("Expected miss after delete")
	}
}

func TestDiskCache_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	key := Key("hours", "09:00-18:00")
	if err := c.Set(key, []byte(`{"status":"verified"}`), 0); err != nil {
		t.Fatal(err)
	}

	// A fresh instance sees the entry: persistence across runs
	c2 := NewDiskCache(dir, time.Hour)
	v, ok := c2.Get(key)
	if !ok {
		t.Fatal("Expected persisted entry")
	}
	if string(v) != `{"status":"verified"}` {
		t.Errorf("Unexpected value %q", v)
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	key := Key("hours", "x")
	if err := c.Set(key, []byte("v"), -time.Second); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get(key); ok {
		t.Error("Expected expired entry to miss")
	}
	// The expired file is removed on read
	if _, ok := c.Get(key); ok {
		t.Error("Expected entry gone after eviction")
	}
}

func TestDiskCache_Clear(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	c.Set("a", []byte("1"), time.Hour)
	c.Set("b", []byte("2"), time.Hour)

	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get("a"); ok {
		t.Error("Expected cache empty after clear")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	// Seed disk only
	disk := NewDiskCache(dir, time.Hour)
	if err := disk.Set("k", []byte("v"), time.Hour); err != nil {
		t.Fatal(err)
	}

	layered := NewLayeredCache(time.Minute, dir, time.Hour)
	v, ok := layered.Get("k")
	if !ok || string(v) != "v" {
		t.Fatalf("Expected disk hit through the layered cache, got %q %v", v, ok)
	}

	// Promotion: remove the disk entry, the memory layer still serves it
	if err := disk.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if v, ok := layered.Get("k"); !ok || string(v) != "v" {
		t.Errorf("Expected promoted memory hit, got %q %v", v, ok)
	}
}

func TestLayeredCache_SetWritesBothLayers(t *testing.T) {
	dir := t.TempDir()
	layered := NewLayeredCache(time.Minute, dir, time.Hour)

	if err := layered.Set("k", []byte("v"), time.Hour); err != nil {
		t.Fatal(err)
	}

	disk := NewDiskCache(dir, time.Hour)
	if v, ok := disk.Get("k"); !ok || string(v) != "v" {
		t.Errorf("Expected entry on disk, got %q %v", v, ok)
	}
}
