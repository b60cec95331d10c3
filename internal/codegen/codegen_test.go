package codegen

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/buffet/hotsauce/automaton"
	"github.com/buffet/hotsauce/internal/compiler"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	d, err := compiler.Compile(compiler.Config{Pattern: "ab", ByteClasses: true})
	if err != nil {
		t.Fatal(err)
	}
	return Config{
		Pattern: "ab",
		Name:    "TestAutomaton",
		Package: "patterns",
		Tables:  d.Tables(),
	}
}

func TestGenerate(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(testConfig(t), &buf); err != nil {
		t.Fatal(err)
	}
	src := buf.String()
	for _, want := range []string{
		"Code generated by hotsauce-gen. DO NOT EDIT.",
		"package patterns",
		"var TestAutomaton = automaton.FromTables",
		`pattern "ab"`,
		"AlphabetLen:",
		"Starts:",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("generated source missing %q:\n%s", want, src)
		}
	}
}

func TestGenerateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gen.go")
	if err := GenerateFile(testConfig(t), path); err != nil {
		t.Fatal(err)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(src), "package patterns") {
		t.Errorf("generated file missing package clause:\n%s", src)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Config)
	}{
		{"empty name", func(c *Config) { c.Name = "" }},
		{"name not an identifier", func(c *Config) { c.Name = "9lives" }},
		{"package not an identifier", func(c *Config) { c.Package = "my-pkg" }},
		{"empty tables", func(c *Config) { c.Tables = automaton.Tables{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mut(&cfg)
			var buf bytes.Buffer
			if err := Generate(cfg, &buf); err == nil {
				t.Error("Generate accepted an invalid config")
			}
		})
	}
}
