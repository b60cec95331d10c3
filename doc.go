// Package hotsauce matches regular expressions against bytes that arrive
// through a forward, single-pass iterator instead of a contiguous buffer.
//
// The engine pulls one byte at a time from a caller-supplied ByteSource
// (chained readers, generators, decompression pipelines) and drives a
// precompiled deterministic automaton over it. Matches are reported as
// offset pairs into the consumed stream; no byte data is ever retained,
// because none is buffered.
//
// Example:
//
//	re, err := hotsauce.New(`\d{4}-\d{2}-\d{2}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	it := re.Matches(hotsauce.Reader(file))
//	for m, ok := it.Next(); ok; m, ok = it.Next() {
//	    fmt.Printf("match at %d-%d\n", m.Start, m.End)
//	}
//
// # Known limitation: assertions at the end of a match
//
// A match whose final position can only be confirmed by looking at what
// follows it is not detected. This covers end-of-text assertions (\z, a
// trailing $) and a trailing multiline $: the automaton has no end-of-input
// transition and the engine never looks ahead, so such patterns report no
// match. A multiline $ followed by a pattern-consumed newline works as
// expected. For the same reason, the empty match at the one-past-last
// position of a source is not reported.
//
// # Raw bytes that are not UTF-8
//
// Patterns describe runes: the compiler expands every rune range into its
// UTF-8 encodings. A byte that is part of no valid encoding (a stray 0xFF,
// say) therefore matches nothing, not even (?s). or a negated class. Such
// bytes are still consumed and counted, so offsets around them stay exact.
package hotsauce
