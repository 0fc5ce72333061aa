package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reoring/schemagen"
	"github.com/reoring/schemagen/typedef"

	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "schemagen",
	Short:   "Derive JSON Schema documents from type definitions",
	Long:    "schemagen derives JSON Schema (draft-07) documents from declarative type-definition files and writes them as .json artifacts.",
	Version: version,
}

// --- generate ---

var (
	genFile   string
	genTypes  []string
	genOut    string
	genIndent string
	genCheck  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Derive schemas for types declared in a definition file",
	RunE:  runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	doc, err := typedef.Load(genFile)
	if err != nil {
		return err
	}
	names := genTypes
	if len(names) == 0 {
		names = doc.Names()
	}

	for _, name := range names {
		td, err := doc.Resolve(name)
		if err != nil {
			return err
		}
		text, err := schemagen.DeriveText(td, schemagen.Opt{Indent: genIndent})
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if genCheck {
			if err := compileCheck(name, text); err != nil {
				return fmt.Errorf("%s: schema self-check failed: %w", name, err)
			}
		}
		if genOut == "" {
			fmt.Println(text)
			continue
		}
		out := filepath.Join(genOut, name+".json")
		if err := os.MkdirAll(genOut, 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(out, []byte(text+"\n"), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", out)
	}
	return nil
}

// compileCheck feeds the rendered document to a real draft-07 compiler, so a
// rendering bug fails the run instead of shipping a broken artifact.
func compileCheck(name, text string) error {
	schemaDoc, err := sjsonschema.UnmarshalJSON(strings.NewReader(text))
	if err != nil {
		return err
	}
	c := sjsonschema.NewCompiler()
	if err := c.AddResource(name+".json", schemaDoc); err != nil {
		return err
	}
	_, err = c.Compile(name + ".json")
	return err
}

// --- types ---

var typesFile string

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the types declared in a definition file",
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := typedef.Load(typesFile)
		if err != nil {
			return err
		}
		for i := range doc.Types {
			td := &doc.Types[i]
			fmt.Printf("%-24s %s\n", td.Name, td.Kind)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&genFile, "file", "f", "", "type-definition file (required)")
	generateCmd.Flags().StringArrayVarP(&genTypes, "type", "t", nil, "type to derive (repeatable; default: all)")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", "output directory (default: stdout)")
	generateCmd.Flags().StringVar(&genIndent, "indent", "  ", "indentation unit of the rendered text")
	generateCmd.Flags().BoolVar(&genCheck, "check", false, "compile each generated schema with a draft-07 validator")
	_ = generateCmd.MarkFlagRequired("file")

	typesCmd.Flags().StringVarP(&typesFile, "file", "f", "", "type-definition file (required)")
	_ = typesCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(typesCmd)
}
