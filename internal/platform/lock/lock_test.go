package lock

import (
	"sync"
	"testing"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	km := New()
	var counter int

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("a")
			counter++
			km.Unlock("a")
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Fatalf("counter = %d, want 50", counter)
	}
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	km := New()
	km.Lock("a")
	defer km.Unlock("a")

	done := make(chan struct{})
	go func() {
		km.Lock("b")
		km.Unlock("b")
		close(done)
	}()
	<-done
}

func TestTryLock(t *testing.T) {
	km := New()
	if !km.TryLock("a") {
		t.Fatal("first TryLock should succeed")
	}
	if km.TryLock("a") {
		t.Fatal("second TryLock on held key should fail")
	}
	km.Unlock("a")
	if !km.TryLock("a") {
		t.Fatal("TryLock after Unlock should succeed")
	}
	km.Unlock("a")
}

func TestEntriesAreReleased(t *testing.T) {
	km := New()
	km.Lock("a")
	km.Unlock("a")

	km.mu.Lock()
	n := len(km.locks)
	km.mu.Unlock()
	if n != 0 {
		t.Fatalf("lock map has %d entries after release, want 0", n)
	}
}
