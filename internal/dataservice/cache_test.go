package dataservice

import (
	"errors"
	"testing"
)

func TestLazyCacheMemoizesSuccessfulLoad(t *testing.T) {
	c := newLazyCache[int]()
	calls := 0
	load := func() (*int, error) {
		calls++
		v := 42
		return &v, nil
	}

	v1, err := c.get("k", load)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	v2, err := c.get("k", load)
	if err != nil {
		t.Fatalf("get (cached): %v", err)
	}
	if v1 != v2 {
		t.Fatalf("expected cached pointer to be reused")
	}
	if calls != 1 {
		t.Fatalf("load called %d times, want 1", calls)
	}
}

func TestLazyCacheDoesNotMemoizeFailure(t *testing.T) {
	c := newLazyCache[int]()
	calls := 0
	load := func() (*int, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("transient")
		}
		v := 7
		return &v, nil
	}

	if _, err := c.get("k", load); err == nil {
		t.Fatalf("expected first load to fail")
	}
	if _, err := c.get("k", load); err == nil {
		t.Fatalf("expected second load to fail")
	}
	v, err := c.get("k", load)
	if err != nil {
		t.Fatalf("expected third load to succeed, got %v", err)
	}
	if *v != 7 {
		t.Fatalf("got %v, want 7", *v)
	}
	if calls != 3 {
		t.Fatalf("load called %d times, want 3 (no memoized failure)", calls)
	}
}
