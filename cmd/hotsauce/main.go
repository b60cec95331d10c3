// Command hotsauce reports regex match offsets over files or stdin without
// holding the input in memory. Compressed inputs (gzip, zstd, xz) are
// decompressed on the fly, so archives are scanned as the lazily
// materialized byte streams the engine is built for.
//
//	hotsauce -e 'ERROR [0-9]+' server.log.gz
//	zstd -dc dump.zst | hotsauce -c -e '\d{4}-\d{2}-\d{2}'
//
// Matched byte content is never printed: the engine retains no bytes, only
// offsets.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pborman/getopt/v2"

	"github.com/buffet/hotsauce"
)

func main() {
	pattern := getopt.StringLong("expression", 'e', "", "pattern to search for")
	count := getopt.BoolLong("count", 'c', "print only the match count per input")
	ignoreCase := getopt.BoolLong("ignore-case", 'i', "case insensitive matching")
	multiLine := getopt.BoolLong("multiline", 'm', "^ and $ match line boundaries")
	codec := getopt.EnumLong("decompress", 'd', []string{"auto", "none", "gzip", "zstd", "xz"}, "auto",
		"input compression (auto detects by file extension)")
	verbose := getopt.BoolLong("verbose", 'v', "log compilation decisions")
	help := getopt.BoolLong("help", 'h', "show usage")
	getopt.Parse()

	if *help {
		getopt.Usage()
		return
	}
	if *pattern == "" {
		fmt.Fprintln(os.Stderr, "hotsauce: --expression is required")
		getopt.Usage()
		os.Exit(2)
	}

	re, err := hotsauce.Compile(*pattern, hotsauce.Options{
		CaseInsensitive: *ignoreCase,
		MultiLine:       *multiLine,
		Verbose:         *verbose,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "hotsauce: %v\n", err)
		os.Exit(2)
	}

	inputs := getopt.Args()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}

	matched := false
	failed := false
	for _, name := range inputs {
		n, err := scanInput(re, name, *codec, *count)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hotsauce: %s: %v\n", name, err)
			failed = true
			continue
		}
		if n > 0 {
			matched = true
		}
	}
	switch {
	case failed:
		os.Exit(2)
	case !matched:
		os.Exit(1)
	}
}

// scanInput streams one input through the engine and returns the number of
// matches found.
func scanInput(re *hotsauce.Regex, name, codec string, countOnly bool) (int64, error) {
	var in io.Reader = os.Stdin
	label := "(stdin)"
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return 0, err
		}
		defer f.Close()
		in = f
		label = name
	}

	in, closeCodec, err := decompress(in, codecFor(name, codec))
	if err != nil {
		return 0, err
	}
	defer closeCodec()

	src := hotsauce.Reader(in)
	it := re.Matches(src)
	var n int64
	for m, ok := it.Next(); ok; m, ok = it.Next() {
		n++
		if !countOnly {
			fmt.Printf("%s:%d-%d\n", label, m.Start, m.End)
		}
	}
	if err := src.Err(); err != nil {
		return n, err
	}
	if countOnly {
		fmt.Printf("%s:%d\n", label, n)
	}
	return n, nil
}
