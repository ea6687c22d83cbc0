package internal

import (
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestSecureIDFormat(t *testing.T) {
	before := time.Now().UnixMilli()
	id, err := SecureID()
	if err != nil {
		t.Fatalf("SecureID failed: %v", err)
	}
	after := time.Now().UnixMilli()

	if len(id) <= secureIDRandomLen {
		t.Fatalf("ID too short: %q", id)
	}

	prefix := id[:len(id)-secureIDRandomLen]
	ts, err := strconv.ParseInt(prefix, 36, 64)
	if err != nil {
		t.Fatalf("prefix %q is not base-36: %v", prefix, err)
	}
	if ts < before || ts > after {
		t.Fatalf("timestamp %d outside [%d, %d]", ts, before, after)
	}

	for _, c := range id[len(prefix):] {
		if !strings.ContainsRune(secureIDAlphabet, c) {
			t.Fatalf("character %q outside alphabet in %q", c, id)
		}
	}
}

func TestSecureIDUniqueness(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		id, err := SecureID()
		if err != nil {
			t.Fatalf("SecureID failed: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate ID: %s", id)
		}
		seen[id] = true
	}
}

func TestSecureIDTimeOrdering(t *testing.T) {
	first, err := SecureID()
	if err != nil {
		t.Fatalf("SecureID failed: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	second, err := SecureID()
	if err != nil {
		t.Fatalf("SecureID failed: %v", err)
	}

	// Same-length base-36 prefixes compare lexicographically as numbers, and
	// the millisecond clock will not change prefix length for millennia.
	if !(first < second) {
		t.Fatalf("expected time ordering: %q !< %q", first, second)
	}
}

func TestRandomIntBounds(t *testing.T) {
	for i := 0; i < 500; i++ {
		n, err := RandomInt(3, 7)
		if err != nil {
			t.Fatalf("RandomInt failed: %v", err)
		}
		if n < 3 || n > 7 {
			t.Fatalf("value %d outside [3, 7]", n)
		}
	}
}

func TestRandomIntDegenerateRange(t *testing.T) {
	n, err := RandomInt(5, 5)
	if err != nil {
		t.Fatalf("RandomInt failed: %v", err)
	}
	if n != 5 {
		t.Fatalf("expected 5, got %d", n)
	}
}
