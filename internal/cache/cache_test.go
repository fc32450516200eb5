package cache

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := New(true)
	data := []byte(`{"ok":true}`)

	etag := c.Set("k", data, time.Minute)
	if etag == "" {
		t.Fatal("Set returned empty etag")
	}

	got, gotETag, ok := c.Get("k")
	if !ok || string(got) != string(data) || gotETag != etag {
		t.Fatalf("Get = %q, %q, %v", got, gotETag, ok)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := New(true)
	c.Set("k", []byte("x"), -time.Second)
	if _, _, ok := c.Get("k"); ok {
		t.Fatal("expired entry served")
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := New(true)
	c.Set("dataset:nfl", []byte("x"), time.Minute)
	c.Invalidate("dataset:nfl")
	if _, _, ok := c.Get("dataset:nfl"); ok {
		t.Fatal("invalidated entry served")
	}
}

func TestCacheDisabled(t *testing.T) {
	c := New(false)
	etag := c.Set("k", []byte("x"), time.Minute)
	if etag == "" {
		t.Fatal("disabled cache must still compute etags")
	}
	if _, _, ok := c.Get("k"); ok {
		t.Fatal("disabled cache served an entry")
	}
}

func TestETagMatch(t *testing.T) {
	etag := ComputeETag([]byte("body"))
	if !CheckETagMatch(etag, etag) {
		t.Fatal("identical etags did not match")
	}
	if !CheckETagMatch("*", etag) {
		t.Fatal("wildcard did not match")
	}
	if CheckETagMatch("", etag) {
		t.Fatal("empty If-None-Match matched")
	}
	if CheckETagMatch(ComputeETag([]byte("other")), etag) {
		t.Fatal("different etags matched")
	}
}
