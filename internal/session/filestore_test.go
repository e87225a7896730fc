package session

import (
	"path/filepath"
	"testing"
)

func TestFileLockStoreRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	lock, err := NewFileLockStore()
	if err != nil {
		t.Fatalf("NewFileLockStore: %v", err)
	}

	if _, ok, err := lock.Read(); err != nil || ok {
		t.Fatalf("Read() on fresh $HOME: ok=%v err=%v, want ok=false", ok, err)
	}

	if err := lock.Write("/tmp/a.db"); err != nil {
		t.Fatalf("Write: %v", err)
	}

	path, ok, err := lock.Read()
	if err != nil || !ok || path != "/tmp/a.db" {
		t.Fatalf("Read() after Write = %q, %v, %v", path, ok, err)
	}

	if err := lock.Remove(); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok, _ := lock.Read(); ok {
		t.Error("Read() after Remove should report no lock")
	}
}

func TestFileRegistryAddRemoveList(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	reg, err := NewFileRegistry()
	if err != nil {
		t.Fatalf("NewFileRegistry: %v", err)
	}

	if list, err := reg.List(); err != nil || len(list) != 0 {
		t.Fatalf("List() on fresh $HOME = %v, %v; want empty", list, err)
	}

	if err := reg.Add("/tmp/a.db"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := reg.Add("/tmp/b.db"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := reg.Add("/tmp/a.db"); err != nil {
		t.Fatalf("Add (duplicate): %v", err)
	}

	list, err := reg.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List() = %v; want 2 unique entries", list)
	}

	if err := reg.Remove("/tmp/a.db"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	list, _ = reg.List()
	if len(list) != 1 || list[0] != "/tmp/b.db" {
		t.Errorf("List() after Remove = %v; want [/tmp/b.db]", list)
	}
}

func TestFileRegistryPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	reg, err := NewFileRegistry()
	if err != nil {
		t.Fatalf("NewFileRegistry: %v", err)
	}
	if err := reg.Add("/tmp/a.db"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	want := filepath.Join(home, ".steel_dbs")
	if fr, ok := reg.(*fileRegistry); !ok || fr.path != want {
		t.Errorf("registry path mismatch, want %q", want)
	}
}
