// Package codegen renders a compiled dense automaton as Go source, so
// patterns known ahead of time can skip runtime compilation entirely.
package codegen

import (
	"fmt"
	"go/token"
	"io"

	"github.com/dave/jennifer/jen"

	"github.com/buffet/hotsauce/automaton"
)

const automatonPkg = "github.com/buffet/hotsauce/automaton"

// Config describes one generated automaton.
type Config struct {
	// Pattern is the source pattern, embedded in the generated comment.
	Pattern string

	// Name is the name of the generated package-level variable.
	Name string

	// Package is the package name of the generated file.
	Package string

	// Tables is the automaton to embed.
	Tables automaton.Tables
}

// Validate checks if the config is valid.
func (c Config) Validate() error {
	if c.Name == "" || !token.IsIdentifier(c.Name) {
		return fmt.Errorf("name %q is not a valid identifier", c.Name)
	}
	if c.Package == "" || !token.IsIdentifier(c.Package) {
		return fmt.Errorf("package %q is not a valid identifier", c.Package)
	}
	if len(c.Tables.Flags) == 0 {
		return fmt.Errorf("empty automaton tables")
	}
	return nil
}

// Generate renders the generated file to w.
func Generate(cfg Config, w io.Writer) error {
	f, err := build(cfg)
	if err != nil {
		return err
	}
	if err := f.Render(w); err != nil {
		return fmt.Errorf("failed to render generated code: %w", err)
	}
	return nil
}

// GenerateFile renders the generated file to the given path.
func GenerateFile(cfg Config, path string) error {
	f, err := build(cfg)
	if err != nil {
		return err
	}
	if err := f.Save(path); err != nil {
		return fmt.Errorf("failed to write generated code: %w", err)
	}
	return nil
}

func build(cfg Config) (*jen.File, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	f := jen.NewFile(cfg.Package)
	f.HeaderComment("Code generated by hotsauce-gen. DO NOT EDIT.")
	f.Comment(fmt.Sprintf("%s is the compiled automaton for the pattern %q.", cfg.Name, cfg.Pattern))
	f.Var().Id(cfg.Name).Op("=").Qual(automatonPkg, "FromTables").Call(tablesValue(cfg.Tables))
	return f, nil
}

func tablesValue(t automaton.Tables) jen.Code {
	return jen.Qual(automatonPkg, "Tables").Values(jen.Dict{
		jen.Id("AlphabetLen"): jen.Lit(t.AlphabetLen),
		jen.Id("Classes"):     classesValue(t.Classes),
		jen.Id("Transitions"): transitionsValue(t.Transitions),
		jen.Id("Flags"):       flagsValue(t.Flags),
		jen.Id("Starts"):      startsValue(t.Starts),
	})
}

func classesValue(classes [256]uint8) jen.Code {
	vals := make([]jen.Code, len(classes))
	for i, c := range classes {
		vals[i] = jen.Lit(int(c))
	}
	return jen.Index(jen.Lit(256)).Uint8().Values(vals...)
}

func transitionsValue(trans []automaton.State) jen.Code {
	vals := make([]jen.Code, len(trans))
	for i, s := range trans {
		vals[i] = jen.Lit(int(s))
	}
	return jen.Index().Qual(automatonPkg, "State").Values(vals...)
}

func flagsValue(flags []uint8) jen.Code {
	vals := make([]jen.Code, len(flags))
	for i, fl := range flags {
		vals[i] = jen.Lit(int(fl))
	}
	return jen.Index().Uint8().Values(vals...)
}

func startsValue(starts [automaton.NumModes]automaton.State) jen.Code {
	vals := make([]jen.Code, len(starts))
	for i, s := range starts {
		vals[i] = jen.Lit(int(s))
	}
	return jen.Index(jen.Qual(automatonPkg, "NumModes")).Qual(automatonPkg, "State").Values(vals...)
}
