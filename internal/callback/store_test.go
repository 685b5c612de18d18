package callback

import (
	"sync"
	"testing"
)

func TestKeyedMutexEvictsIdleKeys(t *testing.T) {
	km := newKeyedMutex()
	unlock := km.Lock("4200001234")
	unlock()

	km.mu.Lock()
	n := len(km.locks)
	km.mu.Unlock()
	if n != 0 {
		t.Errorf("lock table size = %d after release, want 0", n)
	}
}

func TestKeyedMutexMutualExclusion(t *testing.T) {
	km := newKeyedMutex()
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock("same-key")
			counter++
			unlock()
		}()
	}
	wg.Wait()
	if counter != 32 {
		t.Errorf("counter = %d, want 32", counter)
	}

	km.mu.Lock()
	n := len(km.locks)
	km.mu.Unlock()
	if n != 0 {
		t.Errorf("lock table size = %d after all released, want 0", n)
	}
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	km := newKeyedMutex()
	unlockA := km.Lock("a")
	// 不同单号互不阻塞
	unlockB := km.Lock("b")
	unlockB()
	unlockA()
}
