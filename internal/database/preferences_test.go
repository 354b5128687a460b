package database

import (
	"strings"
	"testing"
	"time"
)

type fakeRedis struct {
	entries map[string][]byte
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{entries: make(map[string][]byte)}
}

func (f *fakeRedis) Get(namespace, key string) ([]byte, bool) {
	value, ok := f.entries[namespace+"/"+key]
	return value, ok
}

func (f *fakeRedis) Put(namespace, key string, value []byte, _ time.Duration) error {
	f.entries[namespace+"/"+key] = value
	return nil
}

func (f *fakeRedis) AddToChannel(namespace, key string, value []byte, _ time.Duration) {
	f.entries[namespace+"/"+key] = value
}

func (f *fakeRedis) Set(string) error { return nil }

func TestGetShortcutsFallsBackToDefaults(t *testing.T) {
	store := NewPreferenceStore(newFakeRedis())
	keys, err := store.GetShortcuts("u-100")
	if err != nil {
		t.Fatalf("GetShortcuts: %v", err)
	}
	if len(keys) != len(DefaultShortcuts) {
		t.Fatalf("expected defaults %v, got %v", DefaultShortcuts, keys)
	}
}

func TestSaveShortcutsRoundTrips(t *testing.T) {
	store := NewPreferenceStore(newFakeRedis())
	want := []string{"rate-query", "space-booking", "ai-marketing"}
	if err := store.SaveShortcuts("u-100", want); err != nil {
		t.Fatalf("SaveShortcuts: %v", err)
	}
	got, err := store.GetShortcuts("u-100")
	if err != nil {
		t.Fatalf("GetShortcuts: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSaveShortcutsRejectsBadInput(t *testing.T) {
	store := NewPreferenceStore(newFakeRedis())

	if err := store.SaveShortcuts("u-100", []string{"not-a-function"}); err == nil {
		t.Fatal("expected unknown key to be rejected")
	} else if !strings.Contains(err.Error(), "unknown shortcut key") {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.SaveShortcuts("u-100", []string{"rate-query", "rate-query"}); err == nil {
		t.Fatal("expected duplicate key to be rejected")
	}

	tooMany := make([]string, 0, MaxShortcuts+1)
	for key := range shortcutCatalog {
		tooMany = append(tooMany, key)
		if len(tooMany) > MaxShortcuts {
			break
		}
	}
	if err := store.SaveShortcuts("u-100", tooMany); err == nil {
		t.Fatal("expected oversize list to be rejected")
	}
}

func TestWelcomeFlagPerUser(t *testing.T) {
	store := NewPreferenceStore(newFakeRedis())
	if store.WelcomeSeen("u-100") {
		t.Fatal("new user should not have seen the welcome guide")
	}
	if err := store.MarkWelcomeSeen("u-100"); err != nil {
		t.Fatalf("MarkWelcomeSeen: %v", err)
	}
	if !store.WelcomeSeen("u-100") {
		t.Fatal("flag should stick after marking")
	}
	if store.WelcomeSeen("u-200") {
		t.Fatal("flag must not leak across users")
	}
}
