package trust

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestFileLock_LockUnlock(t *testing.T) {
	t.Parallel()

	lockPath := filepath.Join(t.TempDir(), "trusted.json.lock")
	lock := newFileLock(lockPath)

	if err := lock.Lock(); err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	if _, err := os.Stat(lockPath); os.IsNotExist(err) {
		t.Error("lock file should exist after locking")
	}
	if err := lock.Unlock(); err != nil {
		t.Fatalf("Unlock() error = %v", err)
	}
	if lock.file != nil {
		t.Error("expected file handle to be nil after unlocking")
	}

	// Second unlock is a no-op
	if err := lock.Unlock(); err != nil {
		t.Errorf("second Unlock() should not error, got %v", err)
	}
}

func TestFileLock_Serialises(t *testing.T) {
	t.Parallel()

	lockPath := filepath.Join(t.TempDir(), "trusted.json.lock")

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup

	first := newFileLock(lockPath)
	if err := first.Lock(); err != nil {
		t.Fatalf("first Lock() error = %v", err)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		second := newFileLock(lockPath)
		if err := second.Lock(); err != nil {
			t.Errorf("second Lock() error = %v", err)
			return
		}
		mu.Lock()
		order = append(order, 2)
		mu.Unlock()
		second.Unlock()
	}()

	time.Sleep(30 * time.Millisecond)
	mu.Lock()
	order = append(order, 1)
	mu.Unlock()
	if err := first.Unlock(); err != nil {
		t.Fatalf("first Unlock() error = %v", err)
	}

	wg.Wait()

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("expected order [1, 2], got %v", order)
	}
}

func TestFileLock_InvalidPath(t *testing.T) {
	t.Parallel()

	lock := newFileLock("/non-existent-dir/trusted.json.lock")
	if err := lock.Lock(); err == nil {
		lock.Unlock()
		t.Error("expected error for lock in non-existent directory")
	}
}
