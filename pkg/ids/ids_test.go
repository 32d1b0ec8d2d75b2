package ids

import (
	"strings"
	"testing"
)

func TestNewPrefixed(t *testing.T) {
	t.Parallel()

	id := New("ord")
	if !strings.HasPrefix(id, "ord_") {
		t.Fatalf("expected ord_ prefix, got %q", id)
	}
	if len(id) != len("ord_")+32 {
		t.Fatalf("unexpected length for %q", id)
	}
	if Prefix(id) != "ord" {
		t.Fatalf("unexpected prefix %q", Prefix(id))
	}
}

func TestNewUnique(t *testing.T) {
	t.Parallel()

	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		id := New("addr")
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestPrefixEmptyCases(t *testing.T) {
	t.Parallel()

	if Prefix("noprefix") != "" {
		t.Fatal("expected empty prefix")
	}
	if Prefix("_leading") != "" {
		t.Fatal("expected empty prefix for leading underscore")
	}
}
