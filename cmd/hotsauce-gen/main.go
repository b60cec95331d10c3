// Command hotsauce-gen compiles a pattern ahead of time and emits the dense
// automaton as a Go source file.
//
//	hotsauce-gen -e '\d{4}-\d{2}-\d{2}' -n DateAutomaton -p patterns -o date.go
package main

import (
	"fmt"
	"os"

	"github.com/pborman/getopt/v2"

	"github.com/buffet/hotsauce"
	"github.com/buffet/hotsauce/automaton"
	"github.com/buffet/hotsauce/internal/codegen"
)

func main() {
	pattern := getopt.StringLong("expression", 'e', "", "pattern to compile")
	name := getopt.StringLong("name", 'n', "", "name of the generated variable")
	pkg := getopt.StringLong("package", 'p', "main", "package name of the generated file")
	out := getopt.StringLong("output", 'o', "", "output file (default stdout)")
	ignoreCase := getopt.BoolLong("ignore-case", 'i', "case insensitive matching")
	multiLine := getopt.BoolLong("multiline", 'm', "^ and $ match line boundaries")
	verbose := getopt.BoolLong("verbose", 'v', "log compilation decisions")
	help := getopt.BoolLong("help", 'h', "show usage")
	getopt.Parse()

	if *help {
		getopt.Usage()
		return
	}
	if *pattern == "" || *name == "" {
		fmt.Fprintln(os.Stderr, "hotsauce-gen: --expression and --name are required")
		getopt.Usage()
		os.Exit(2)
	}

	re, err := hotsauce.Compile(*pattern, hotsauce.Options{
		CaseInsensitive: *ignoreCase,
		MultiLine:       *multiLine,
		Verbose:         *verbose,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "hotsauce-gen: %v\n", err)
		os.Exit(2)
	}
	dense, ok := re.Automaton().(*automaton.Dense)
	if !ok {
		fmt.Fprintln(os.Stderr, "hotsauce-gen: compiled automaton is not a dense table")
		os.Exit(2)
	}

	cfg := codegen.Config{
		Pattern: *pattern,
		Name:    *name,
		Package: *pkg,
		Tables:  dense.Tables(),
	}
	if *out == "" {
		err = codegen.Generate(cfg, os.Stdout)
	} else {
		err = codegen.GenerateFile(cfg, *out)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "hotsauce-gen: %v\n", err)
		os.Exit(2)
	}
}
