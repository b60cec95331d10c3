package compiler

import (
	"math/rand"
	"testing"
	"unicode"
	"unicode/utf8"
)

func seqMatches(seq utf8Seq, enc []byte) bool {
	if len(seq) != len(enc) {
		return false
	}
	for i, br := range seq {
		if enc[i] < br.lo || enc[i] > br.hi {
			return false
		}
	}
	return true
}

// countMatching returns how many sequences accept the encoding of r.
// Sequences must be disjoint, so the answer is 0 or 1.
func countMatching(seqs []utf8Seq, r rune) int {
	var enc [utf8.UTFMax]byte
	n := utf8.EncodeRune(enc[:], r)
	count := 0
	for _, seq := range seqs {
		if seqMatches(seq, enc[:n]) {
			count++
		}
	}
	return count
}

func sampleRunes(rng *rand.Rand, lo, hi rune, n int) []rune {
	out := []rune{lo, hi}
	for i := 0; i < n; i++ {
		out = append(out, lo+rune(rng.Int63n(int64(hi-lo)+1)))
	}
	return out
}

func TestUTF8Sequences(t *testing.T) {
	ranges := [][2]rune{
		{0, 0x7F},
		{'a', 'z'},
		{0x80, 0x7FF},
		{'é', 'é'},
		{0x800, 0xFFFF},
		{0x4E00, 0x9FFF},
		{0x10000, 0x10FFFF},
		{0, unicode.MaxRune},
		{'z', 0x2603}, // crosses two length boundaries
	}
	rng := rand.New(rand.NewSource(7))
	for _, rr := range ranges {
		lo, hi := rr[0], rr[1]
		seqs := utf8Sequences(lo, hi)
		if len(seqs) == 0 {
			t.Fatalf("utf8Sequences(%#x, %#x) returned nothing", lo, hi)
		}
		for _, r := range sampleRunes(rng, lo, hi, 200) {
			if r >= 0xD800 && r <= 0xDFFF {
				continue
			}
			if got := countMatching(seqs, r); got != 1 {
				t.Errorf("range [%#x, %#x]: rune %#x matched by %d sequences, want 1", lo, hi, r, got)
			}
		}
		// Just outside the range must not match.
		if lo > 0 {
			if got := countMatching(seqs, lo-1); got != 0 {
				t.Errorf("range [%#x, %#x]: rune %#x below range matched", lo, hi, lo-1)
			}
		}
		if hi < unicode.MaxRune {
			if got := countMatching(seqs, hi+1); got != 0 {
				t.Errorf("range [%#x, %#x]: rune %#x above range matched", lo, hi, hi+1)
			}
		}
	}
}

func TestUTF8SequencesSkipSurrogates(t *testing.T) {
	seqs := utf8Sequences(0xD000, 0xE100)
	// 0xD800 encoded the way UTF-8 would if surrogates were legal.
	bogus := []byte{0xED, 0xA0, 0x80}
	for _, seq := range seqs {
		if seqMatches(seq, bogus) {
			t.Fatalf("sequence %v accepts a surrogate encoding", seq)
		}
	}
	if got := countMatching(seqs, 0xD7FF); got != 1 {
		t.Errorf("rune just below the surrogate gap matched by %d sequences, want 1", got)
	}
	if got := countMatching(seqs, 0xE000); got != 1 {
		t.Errorf("rune just above the surrogate gap matched by %d sequences, want 1", got)
	}
}

func TestUTF8SequencesEmptyRange(t *testing.T) {
	if seqs := utf8Sequences('b', 'a'); seqs != nil {
		t.Errorf("inverted range produced %v, want nothing", seqs)
	}
}
