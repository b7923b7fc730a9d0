package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/oasdocs/oasdocs/export"
)

// ExportFlags contains flags for the export command
type ExportFlags struct {
	Variant     string
	Output      string
	MaxRefDepth int
	Verbose     bool
}

// SetupExportFlags creates and configures a FlagSet for the export command.
// Returns the FlagSet and an ExportFlags struct with bound flag variables.
func SetupExportFlags() (*flag.FlagSet, *ExportFlags) {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	flags := &ExportFlags{}

	fs.StringVar(&flags.Variant, "variant", string(export.Bundled), "what to export: original or bundled")
	fs.StringVar(&flags.Output, "o", ".", "output directory, or '-' for stdout")
	fs.StringVar(&flags.Output, "output", ".", "output directory, or '-' for stdout")
	fs.IntVar(&flags.MaxRefDepth, "max-ref-depth", 0, "maximum nested $ref expansions (0 uses the default)")
	fs.BoolVar(&flags.Verbose, "v", false, "log loading details to stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log loading details to stderr")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasdocs export [flags] <file|url|->\n\n")
		Writef(output, "Export an OpenAPI document as document.json or document.yaml.\n\n")
		Writef(output, "The bundled variant inlines local $ref references. The file keeps the\n")
		Writef(output, "format of the source: JSON sources export as JSON, everything else as YAML.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  oasdocs export openapi.yaml\n")
		Writef(output, "  oasdocs export --variant original -o dist https://example.com/api/openapi.json\n")
		Writef(output, "  cat openapi.yaml | oasdocs export -o - - > bundled.yaml\n")
	}

	return fs, flags
}

// HandleExport executes the export command
func HandleExport(args []string) error {
	fs, flags := SetupExportFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("export command requires exactly one file path, URL, or '-' for stdin")
	}
	variant, err := export.ParseVariant(flags.Variant)
	if err != nil {
		return err
	}

	spec, err := loadSpec(context.Background(), fs.Arg(0), flags.MaxRefDepth, cliLogger(flags.Verbose))
	if err != nil {
		return err
	}

	file, err := export.Document(spec.doc.Raw, spec.bundled.Root, variant)
	if err != nil {
		return err
	}

	if flags.Output == StdinFilePath {
		Writef(stdout, "%s", file.Body)
		return nil
	}

	path, err := file.Save(flags.Output)
	if err != nil {
		return err
	}
	Writef(os.Stderr, "Wrote %s (%s, %d bytes)\n", path, variant, len(file.Body))
	if n := len(spec.bundled.Circular); n > 0 && variant == export.Bundled {
		Writef(os.Stderr, "Warning: %d circular reference(s) left in place\n", n)
	}
	return nil
}
