package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/xeipuuv/gojsonschema"

	"github.com/kodegenix/pqlgo/pkg/fileinfo"
	"github.com/kodegenix/pqlgo/pkg/serde"
)

// exitCodeValidationFailure mirrors the convention that a failed
// validation, as opposed to a usage error, exits 2.
const exitCodeValidationFailure = 2

// ErrSchemaRequired is returned when `pql validate` is invoked without a
// JSON Schema to validate against; unlike the teacher's UAST tool, PQL
// documents have no single canonical schema to fall back to.
var ErrSchemaRequired = errors.New("--schema is required")

func validateCmd() *cobra.Command {
	var (
		schemaPath string
		format     string
		nocolor    bool
	)

	cmd := &cobra.Command{
		Use:   "validate <file|-> --schema <schema.json>",
		Short: "Validate a document's JSON projection against a JSON Schema",
		Long: `Validate a JSON/YAML/TOML document against a JSON Schema, after
decoding it to its JSON projection via pkg/serde.

Examples:
  pql validate doc.json --schema schema.json
  pql validate doc.yaml --schema schema.json
  pql validate - --schema schema.json < doc.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return runValidate(args[0], schemaPath, fileinfo.ParseFileFormat(format), nocolor, cobraCmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "path to a JSON Schema file")
	cmd.Flags().StringVarP(&format, "format", "f", "", "input format (json, yaml, toml); inferred from extension if omitted")
	cmd.Flags().BoolVar(&nocolor, "no-color", false, "disable colored output")

	return cmd
}

func runValidate(file, schemaPath string, format fileinfo.FileFormat, nocolor bool, out io.Writer) error {
	if nocolor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	if schemaPath == "" {
		return ErrSchemaRequired
	}

	root, err := loadDocument(file, format)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	docJSON, err := serde.ToJSON(root)
	if err != nil {
		return fmt.Errorf("failed to render document as json: %w", err)
	}

	schemaBytes, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewBytesLoader(docJSON),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if result.Valid() {
		color.New(color.FgGreen).Fprintf(out, "valid (%s)\n", file)

		return nil
	}

	color.New(color.FgRed).Fprintf(out, "invalid (%s)\n", file)

	for _, verr := range result.Errors() {
		color.New(color.FgYellow).Fprintf(out, "  - %s: %s\n", verr.Field(), verr.Description())
	}

	os.Exit(exitCodeValidationFailure)

	return nil
}
