package compiler

import (
	"unicode"
	"unicode/utf8"
)

// byteRange is an inclusive range of byte values.
type byteRange struct {
	lo, hi byte
}

// utf8Seq is a sequence of byte ranges describing the UTF-8 encodings of a
// contiguous rune range whose encodings all have the same length. Matching
// one byte from each range in order matches exactly one encoded rune.
type utf8Seq []byteRange

// utf8Sequences decomposes the inclusive rune range [lo, hi] into byte-range
// sequences suitable for a byte-level automaton. Surrogates are skipped since
// they have no UTF-8 encoding.
func utf8Sequences(lo, hi rune) []utf8Seq {
	var out []utf8Seq
	splitRuneRange(&out, lo, hi)
	return out
}

func splitRuneRange(out *[]utf8Seq, lo, hi rune) {
	if lo < 0 {
		lo = 0
	}
	if hi > unicode.MaxRune {
		hi = unicode.MaxRune
	}
	if lo > hi {
		return
	}
	// Surrogate halves never appear in encoded input.
	if lo < 0xE000 && hi > 0xD7FF {
		splitRuneRange(out, lo, 0xD7FF)
		splitRuneRange(out, 0xE000, hi)
		return
	}
	// Split at encoded-length boundaries so lo and hi encode to the same
	// number of bytes.
	for _, max := range [...]rune{0x7F, 0x7FF, 0xFFFF} {
		if lo <= max && max < hi {
			splitRuneRange(out, lo, max)
			splitRuneRange(out, max+1, hi)
			return
		}
	}
	var lob, hib [utf8.UTFMax]byte
	n := utf8.EncodeRune(lob[:], lo)
	utf8.EncodeRune(hib[:], hi)
	splitByteRange(out, lob[:n], hib[:n], nil)
}

// splitByteRange emits sequences covering all encodings between lo and hi,
// which must have equal length. prefix holds ranges already fixed for the
// leading bytes.
func splitByteRange(out *[]utf8Seq, lo, hi []byte, prefix utf8Seq) {
	n := len(lo)
	if n == 1 {
		*out = append(*out, appendSeq(prefix, byteRange{lo[0], hi[0]}))
		return
	}
	if lo[0] == hi[0] {
		splitByteRange(out, lo[1:], hi[1:], appendSeq(prefix, byteRange{lo[0], lo[0]}))
		return
	}
	// Leading bytes differ. Peel off partial blocks at either end until the
	// remainder is a full continuation block.
	if !allBytes(lo[1:], 0x80) {
		splitByteRange(out, lo[1:], contBytes(n-1, 0xBF), appendSeq(prefix, byteRange{lo[0], lo[0]}))
		next := append([]byte{lo[0] + 1}, contBytes(n-1, 0x80)...)
		splitByteRange(out, next, hi, prefix)
		return
	}
	if !allBytes(hi[1:], 0xBF) {
		prev := append([]byte{hi[0] - 1}, contBytes(n-1, 0xBF)...)
		splitByteRange(out, lo, prev, prefix)
		splitByteRange(out, contBytes(n-1, 0x80), hi[1:], appendSeq(prefix, byteRange{hi[0], hi[0]}))
		return
	}
	seq := appendSeq(prefix, byteRange{lo[0], hi[0]})
	for i := 1; i < n; i++ {
		seq = append(seq, byteRange{0x80, 0xBF})
	}
	*out = append(*out, seq)
}

// appendSeq copies prefix before appending so recursive callers never share
// backing arrays.
func appendSeq(prefix utf8Seq, r byteRange) utf8Seq {
	seq := make(utf8Seq, len(prefix), len(prefix)+utf8.UTFMax)
	copy(seq, prefix)
	return append(seq, r)
}

func allBytes(p []byte, b byte) bool {
	for _, v := range p {
		if v != b {
			return false
		}
	}
	return true
}

func contBytes(n int, b byte) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = b
	}
	return p
}
