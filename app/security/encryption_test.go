package security

import (
	"os"
	"testing"
)

func TestSealOpen(t *testing.T) {
	k := NewKeyring(t.TempDir())

	sealed, err := k.Seal("postgres://sales:secret@db/activity")
	if err != nil {
		t.Fatal(err)
	}
	if !Sealed(sealed) || sealed == "postgres://sales:secret@db/activity" {
		t.Fatalf("not sealed: %q", sealed)
	}

	again, err := k.Seal(sealed)
	if err != nil || again != sealed {
		t.Errorf("sealing twice changed the value: %q, %v", again, err)
	}

	plain, err := k.Open(sealed)
	if err != nil || plain != "postgres://sales:secret@db/activity" {
		t.Errorf("open = %q, %v", plain, err)
	}

	info, err := os.Stat(k.KeyPath())
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != keySize {
		t.Errorf("key size = %d", info.Size())
	}
}

func TestOpenPlaintext(t *testing.T) {
	k := NewKeyring(t.TempDir())
	if got, err := k.Open("file::memory:"); err != nil || got != "file::memory:" {
		t.Errorf("open = %q, %v", got, err)
	}
	if got, err := k.Seal(""); err != nil || got != "" {
		t.Errorf("seal empty = %q, %v", got, err)
	}
}

func TestOpenWithOtherKeyFails(t *testing.T) {
	sealed, err := NewKeyring(t.TempDir()).Seal("secret")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewKeyring(t.TempDir()).Open(sealed); err == nil {
		t.Error("expected decrypt error with a different key")
	}
}
