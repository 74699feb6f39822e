package pagination

import "testing"

func TestNormalizeLimit(t *testing.T) {
	if got := NormalizeLimit(0); got != DefaultLimit {
		t.Fatalf("zero limit should default, got %d", got)
	}
	if got := NormalizeLimit(-3); got != DefaultLimit {
		t.Fatalf("negative limit should default, got %d", got)
	}
	if got := NormalizeLimit(MaxLimit + 1); got != MaxLimit {
		t.Fatalf("oversized limit should cap at %d, got %d", MaxLimit, got)
	}
	if got := NormalizeLimit(10); got != 10 {
		t.Fatalf("in-range limit should pass through, got %d", got)
	}
}

func TestNormalize(t *testing.T) {
	p := Normalize(Params{Skip: -1, Limit: 0})
	if p.Skip != 0 || p.Limit != DefaultLimit {
		t.Fatalf("unexpected normalized params %+v", p)
	}
}
