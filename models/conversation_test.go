package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestNormalizePair(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	b := uuid.MustParse("00000000-0000-0000-0000-000000000002")

	one, two := NormalizePair(a, b)
	if one != a || two != b {
		t.Errorf("NormalizePair(a, b) = (%s, %s), want (a, b)", one, two)
	}

	one, two = NormalizePair(b, a)
	if one != a || two != b {
		t.Errorf("NormalizePair(b, a) = (%s, %s), want (a, b)", one, two)
	}
}
