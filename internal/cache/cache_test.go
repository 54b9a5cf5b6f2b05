package cache

import (
	"testing"
	"time"
)

func TestListsGetSet(t *testing.T) {
	lists := NewLists(time.Minute)

	if _, ok := lists.Get("missing"); ok {
		t.Fatal("expected miss on empty cache")
	}

	lists.Set("key", []string{"a", "b"})
	value, ok := lists.Get("key")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if got := value.([]string); len(got) != 2 {
		t.Fatalf("expected cached slice back, got %v", got)
	}
}

func TestListsInvalidate(t *testing.T) {
	lists := NewLists(time.Minute)

	lists.Set("a", 1)
	lists.Set("b", 2)
	lists.Invalidate("a", "b")

	if _, ok := lists.Get("a"); ok {
		t.Fatal("expected 'a' to be invalidated")
	}
	if _, ok := lists.Get("b"); ok {
		t.Fatal("expected 'b' to be invalidated")
	}
}

func TestListsExpiry(t *testing.T) {
	lists := NewLists(20 * time.Millisecond)

	lists.Set("key", "value")
	time.Sleep(50 * time.Millisecond)

	if _, ok := lists.Get("key"); ok {
		t.Fatal("expected entry to expire")
	}
}
