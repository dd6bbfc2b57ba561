package cache_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/sandrolain/gorational/pkg/cache"
	"github.com/sandrolain/gorational/pkg/parser"
	"github.com/sandrolain/gorational/pkg/types"
)

func TestNewDefaultCapacity(t *testing.T) {
	c := cache.New[int](0)
	if got := c.Capacity(); got != cache.DefaultCapacity {
		t.Fatalf("expected default capacity %d, got %d", cache.DefaultCapacity, got)
	}
	if got := c.Len(); got != 0 {
		t.Fatalf("expected empty cache, got %d", got)
	}
}

func TestSetGetExpression(t *testing.T) {
	c := cache.New[*types.Expression](4)
	expr, err := parser.Parse("1 + 2")
	if err != nil {
		t.Fatal(err)
	}
	c.Set("1 + 2", expr)
	got, ok := c.Get("1 + 2")
	if !ok || got != expr {
		t.Fatal("expected the same expression back")
	}
	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected a miss")
	}
	if s := c.Stats(); s.Hits != 1 || s.Misses != 1 {
		t.Errorf("stats = %+v", s)
	}
}

func TestLRUEviction(t *testing.T) {
	c := cache.New[int](3)
	for i, k := range []string{"a", "b", "c"} {
		c.Set(k, i)
	}
	c.Get("a") // a is now the most recently used
	c.Set("d", 3)

	if got := c.Len(); got != 3 {
		t.Fatalf("expected 3 entries, got %d", got)
	}
	if _, ok := c.Get("b"); ok {
		t.Error(`expected "b" to be evicted`)
	}
	for _, k := range []string{"a", "c", "d"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("expected %q to survive", k)
		}
	}
	if s := c.Stats(); s.Evictions != 1 {
		t.Errorf("evictions = %d", s.Evictions)
	}
}

func TestGetOrLoad(t *testing.T) {
	c := cache.New[*types.Expression](4)
	calls := 0
	load := func() (*types.Expression, error) {
		calls++
		return parser.Parse("(4 - 8) / (1 + 2)")
	}
	for i := 0; i < 3; i++ {
		if _, err := c.GetOrLoad("k", load); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 1 {
		t.Errorf("load called %d times", calls)
	}

	_, err := c.GetOrLoad("bad", func() (*types.Expression, error) {
		return parser.Parse("(1 + 2")
	})
	if !errors.Is(err, types.ErrLexicalStructure) {
		t.Errorf("got %v", err)
	}
	if _, ok := c.Get("bad"); ok {
		t.Error("errors must not be cached")
	}
}

func TestInvalidateAndClear(t *testing.T) {
	c := cache.New[string](4)
	c.Set("k", "v")
	c.Set("j", "w")
	c.Invalidate("k")
	if _, ok := c.Get("k"); ok {
		t.Error("expected miss after Invalidate")
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d", c.Len())
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := cache.New[int](16)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				k := fmt.Sprintf("%d-%d", g, i%20)
				c.Set(k, i)
				c.Get(k)
			}
		}(g)
	}
	wg.Wait()
	if c.Len() > 16 {
		t.Errorf("cache grew past capacity: %d", c.Len())
	}
}
