package passgen

import (
	"errors"
	"strings"
	"testing"

	"github.com/byteptr/steel/internal/steelerr"
)

func TestGenerateLengthAndAlphabet(t *testing.T) {
	for _, n := range []int{6, 16, 64} {
		pw, err := Generate(n)
		if err != nil {
			t.Fatalf("Generate(%d): %v", n, err)
		}
		if len(pw) != n {
			t.Errorf("len(Generate(%d)) = %d", n, len(pw))
		}
		for _, c := range pw {
			if !strings.ContainsRune(Alphabet, c) {
				t.Errorf("Generate(%d) produced out-of-alphabet character %q", n, c)
			}
		}
	}
}

func TestGenerateRejectsShortLength(t *testing.T) {
	if _, err := Generate(5); !errors.Is(err, steelerr.ErrInvalidArgument) {
		t.Errorf("Generate(5): got %v, want ErrInvalidArgument", err)
	}
	if _, err := Generate(0); !errors.Is(err, steelerr.ErrInvalidArgument) {
		t.Errorf("Generate(0): got %v, want ErrInvalidArgument", err)
	}
}

func TestGenerateUniformityRoughCheck(t *testing.T) {
	counts := make(map[rune]int)
	const samples = 20000
	const length = 8
	for i := 0; i < samples/length; i++ {
		pw, err := Generate(length)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		for _, c := range pw {
			counts[c]++
		}
	}

	total := 0
	for _, c := range counts {
		total += c
	}
	expected := float64(total) / float64(len(Alphabet))
	for c, n := range counts {
		ratio := float64(n) / expected
		if ratio < 0.5 || ratio > 1.5 {
			t.Errorf("character %q occurred %d times, expected roughly %.0f (ratio %.2f) — possible bias", c, n, expected, ratio)
		}
	}
}
