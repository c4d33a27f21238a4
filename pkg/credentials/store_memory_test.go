package credentials

import (
	"errors"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		store := NewMemoryStore()
		if _, err := store.Load(); !errors.Is(err, ErrNoCredentials) {
			t.Errorf("Load on empty store = %v, want ErrNoCredentials", err)
		}
	})

	t.Run("SeededLoad", func(t *testing.T) {
		store := NewMemoryStore(Credential{SSID: "a", Priority: 1})
		creds, err := store.Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if len(creds) != 1 || creds[0].SSID != "a" {
			t.Errorf("unexpected creds: %+v", creds)
		}
	})

	t.Run("LoadReturnsCopy", func(t *testing.T) {
		store := NewMemoryStore(Credential{SSID: "a"})
		creds, _ := store.Load()
		creds[0].SSID = "mutated"

		again, _ := store.Load()
		if again[0].SSID != "a" {
			t.Error("Load should return a copy, not the backing slice")
		}
	})

	t.Run("SaveReplaces", func(t *testing.T) {
		store := NewMemoryStore(Credential{SSID: "old"})
		if err := store.Save([]Credential{{SSID: "new"}}); err != nil {
			t.Fatalf("Save: %v", err)
		}
		creds, err := store.Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if len(creds) != 1 || creds[0].SSID != "new" {
			t.Errorf("unexpected creds after save: %+v", creds)
		}
	})
}
