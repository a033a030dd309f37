package game

import (
	"math/rand"
	"strings"
	"testing"
)

func TestNewCode_Shape(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 100; i++ {
		code := newCode(rng, 6)
		if len(code) != 6 {
			t.Fatalf("expected 6-character code, got %q", code)
		}
		for _, ch := range code {
			if !strings.ContainsRune(codeCharset, ch) {
				t.Fatalf("code %q contains %q outside the charset", code, ch)
			}
		}
	}
}

func TestAllocateCode_UniqueAmongLiveRooms(t *testing.T) {
	store := NewMemoryStore()
	rng := rand.New(rand.NewSource(2))

	seen := make(map[string]bool)
	for i := 0; i < 10000; i++ {
		code := allocateCode(store, rng, 6)
		if seen[code] {
			t.Fatalf("allocateCode returned live code %q twice", code)
		}
		seen[code] = true
		store.Put(&Room{Code: code})
	}
}

func TestAllocateCode_WidensWhenExhausted(t *testing.T) {
	store := NewMemoryStore()
	rng := rand.New(rand.NewSource(4))

	for _, ch := range codeCharset {
		store.Put(&Room{Code: string(ch)})
	}

	code := allocateCode(store, rng, 1)
	if len(code) < 2 {
		t.Fatalf("expected a widened code, got %q", code)
	}
}
