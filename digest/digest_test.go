package digest

import "testing"

func TestSumIsDeterministic(t *testing.T) {
	h := MustHasher(SHA1)
	b := []byte("the quick brown fox")

	first := h.Sum(b)
	second := h.Sum(b)
	if first != second {
		t.Fatalf("expected deterministic sum, got %q then %q", first, second)
	}
}

func TestSumDiffersOnDifferentContent(t *testing.T) {
	h := MustHasher(SHA1)

	a := h.Sum([]byte("a"))
	b := h.Sum([]byte("b"))
	if a == b {
		t.Fatalf("expected distinct sums for distinct content, got %q for both", a)
	}
}

func TestNewHasherUnsupportedAlgorithm(t *testing.T) {
	_, err := NewHasher("md5")
	if err == nil {
		t.Fatal("expected error for unsupported algorithm")
	}
	if _, ok := err.(ErrUnsupportedAlgorithm); !ok {
		t.Fatalf("expected ErrUnsupportedAlgorithm, got %T", err)
	}
}

func TestFullDigestHasAlgorithmPrefix(t *testing.T) {
	h := MustHasher(SHA256)
	full := h.FullDigest([]byte("payload"))
	want := "sha256:"
	if len(full) <= len(want) || full[:len(want)] != want {
		t.Fatalf("expected prefix %q, got %q", want, full)
	}
}
