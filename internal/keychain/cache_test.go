package keychain

import (
	"fmt"
	"sync"
	"testing"
)

func TestCacheEmpty(t *testing.T) {
	cache := NewCache()

	if _, ok := cache.Get(); ok {
		t.Error("New cache should be empty")
	}
}

func TestCacheSetIfAbsent(t *testing.T) {
	cache := NewCache()

	if !cache.SetIfAbsent("first") {
		t.Error("First SetIfAbsent should report initialization")
	}
	if cache.SetIfAbsent("second") {
		t.Error("Second SetIfAbsent must not overwrite")
	}

	value, ok := cache.Get()
	if !ok {
		t.Fatal("Cache should be filled")
	}
	if value != "first" {
		t.Errorf("Cache holds %q, want %q", value, "first")
	}
}

func TestCacheWriteOnceUnderContention(t *testing.T) {
	cache := NewCache()

	const callers = 16
	winners := make(chan string, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			value := fmt.Sprintf("secret-%d", i)
			if cache.SetIfAbsent(value) {
				winners <- value
			}
		}(i)
	}
	wg.Wait()
	close(winners)

	var won []string
	for w := range winners {
		won = append(won, w)
	}
	if len(won) != 1 {
		t.Fatalf("Expected exactly one winner, got %d", len(won))
	}

	// Every subsequent reader observes the winning value.
	value, ok := cache.Get()
	if !ok || value != won[0] {
		t.Errorf("Cache holds %q, winner was %q", value, won[0])
	}
}
