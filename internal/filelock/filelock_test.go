package filelock

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"
)

func TestNewFileLock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "monsters.xml.lock")

	lock := NewFileLock(lockPath)
	if lock == nil {
		t.Fatal("NewFileLock should not return nil")
	}
	if lock.path != lockPath {
		t.Errorf("Expected lock path %s, got %s", lockPath, lock.path)
	}
}

func TestLockUnlock(t *testing.T) {
	lock := NewFileLock(filepath.Join(t.TempDir(), "test.lock"))

	if err := lock.Lock(); err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}
	if err := lock.Unlock(); err != nil {
		t.Fatalf("Failed to release lock: %v", err)
	}
}

func TestLockIsExclusive(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")

	lock := NewFileLock(lockPath)
	if err := lock.Lock(); err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}
	defer lock.Unlock()

	other := flock.New(lockPath)
	acquired, err := other.TryLock()
	if err != nil {
		t.Fatalf("TryLock failed: %v", err)
	}
	if acquired {
		other.Unlock()
		t.Fatal("Expected a second lock to fail while the first is held")
	}
}

func TestDirectWrite(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "monsters.xml")

	if err := os.WriteFile(target, []byte("old content that is longer than the new one"), 0644); err != nil {
		t.Fatalf("Failed to seed file: %v", err)
	}

	if err := DirectWrite(target, []byte("<monsters/>")); err != nil {
		t.Fatalf("DirectWrite failed: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "<monsters/>" {
		t.Errorf("Expected overwritten content, got %q", string(data))
	}
}

func TestDirectWriteMissingDirectory(t *testing.T) {
	target := filepath.Join(t.TempDir(), "missing", "monsters.xml")

	err := DirectWrite(target, []byte("data"))
	if err == nil {
		t.Fatal("Expected error writing into a missing directory")
	}
	if !strings.Contains(err.Error(), "failed to write") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestAtomicWrite(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "out", "monsters.xml")

	if err := AtomicWrite(target, []byte("first")); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}
	if err := AtomicWrite(target, []byte("second")); err != nil {
		t.Fatalf("AtomicWrite overwrite failed: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("Expected %q, got %q", "second", string(data))
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("Failed to stat file: %v", err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("Expected permissions 0644, got %o", info.Mode().Perm())
	}

	entries, err := os.ReadDir(filepath.Dir(target))
	if err != nil {
		t.Fatalf("Failed to read directory: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("Temp file left behind: %s", e.Name())
		}
	}
}

func TestWrite(t *testing.T) {
	tests := []struct {
		name string
		opts WriteOptions
	}{
		{"direct", WriteOptions{}},
		{"direct with lock", WriteOptions{Lock: true}},
		{"atomic", WriteOptions{Atomic: true}},
		{"atomic with lock", WriteOptions{Lock: true, Atomic: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := filepath.Join(t.TempDir(), "monsters.xml")

			if err := Write(target, []byte("payload"), tt.opts); err != nil {
				t.Fatalf("Write failed: %v", err)
			}

			data, err := os.ReadFile(target)
			if err != nil {
				t.Fatalf("Failed to read file: %v", err)
			}
			if string(data) != "payload" {
				t.Errorf("Expected %q, got %q", "payload", string(data))
			}

			_, err = os.Stat(target + LockSuffix)
			if tt.opts.Lock && err != nil {
				t.Errorf("Expected lock file to exist: %v", err)
			}
			if !tt.opts.Lock && err == nil {
				t.Error("Did not expect a lock file")
			}
		})
	}
}

func TestWriteReleasesLock(t *testing.T) {
	target := filepath.Join(t.TempDir(), "monsters.xml")

	if err := Write(target, []byte("payload"), WriteOptions{Lock: true}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	lock := flock.New(target + LockSuffix)
	acquired, err := lock.TryLock()
	if err != nil {
		t.Fatalf("TryLock failed: %v", err)
	}
	if !acquired {
		t.Fatal("Expected lock to be released after Write")
	}
	lock.Unlock()
}
