package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeGrade(t *testing.T) {
	tests := []struct {
		name     string
		rating   string
		expected float64
	}{
		{"plain base", "5.10", 10.0},
		{"letter a", "5.10a", 10.0},
		{"letter b", "5.10b", 10.2},
		{"letter c", "5.10c", 10.4},
		{"letter d", "5.10d", 10.6},
		{"plus", "5.9+", 9.15},
		{"minus", "5.10-", 9.85},
		{"slash grade", "5.10a/b", 10.1},
		{"slash grade upper band", "5.11c/d", 11.5},
		{"letter with plus", "5.12c+", 12.45},
		{"letter with minus", "5.12c-", 12.35},
		{"trailing protection text", "5.9 PG13", 9.0},
		{"trailing risk text after letter", "5.10a R", 10.0},
		{"uppercase letter", "5.11A", 11.0},
		{"empty rating", "", 5.0},
		{"boulder grade", "V4", 5.0},
		{"no base pattern", "WI3", 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, NormalizeGrade(tt.rating), 1e-9)
		})
	}
}

// TestNormalizeGrade_Monotonic checks that the normalized values order the
// standard ladder correctly; the absolute values are not display-accurate
// and only the ordering matters.
func TestNormalizeGrade_Monotonic(t *testing.T) {
	ladder := []string{
		"5.9", "5.9+", "5.10-", "5.10a", "5.10a/b", "5.10b",
		"5.10c", "5.10d", "5.11a",
	}
	for i := 1; i < len(ladder); i++ {
		prev := NormalizeGrade(ladder[i-1])
		next := NormalizeGrade(ladder[i])
		assert.Less(t, prev, next, "%s should normalize below %s", ladder[i-1], ladder[i])
	}
}

func TestNormalizeGrade_UnparseableSentinel(t *testing.T) {
	// Unparseable ratings must never register as the hardest climb.
	assert.Equal(t, UnknownGrade, NormalizeGrade(""))
	assert.Equal(t, UnknownGrade, NormalizeGrade("V4"))
	assert.Less(t, NormalizeGrade("V4"), NormalizeGrade("5.6"))
}

func TestGradeToken(t *testing.T) {
	tests := []struct {
		name     string
		rating   string
		expected string
	}{
		{"plain grade", "5.10a", "5.10a"},
		{"grade with annotation", "5.9 PG13", "5.9"},
		{"leading space", "  5.11c R", "5.11c"},
		{"empty", "", "Unknown"},
		{"spaces only", "   ", "Unknown"},
		{"boulder grade kept as-is", "V4", "V4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GradeToken(tt.rating))
		})
	}
}
