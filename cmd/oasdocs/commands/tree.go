package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/oasdocs/oasdocs/navtree"
	"github.com/oasdocs/oasdocs/toc"
)

// TreeFlags contains flags for the tree command
type TreeFlags struct {
	Format      string
	MaxRefDepth int
	Verbose     bool
}

// SetupTreeFlags creates and configures a FlagSet for the tree command.
// Returns the FlagSet and a TreeFlags struct with bound flag variables.
func SetupTreeFlags() (*flag.FlagSet, *TreeFlags) {
	fs := flag.NewFlagSet("tree", flag.ContinueOnError)
	flags := &TreeFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.IntVar(&flags.MaxRefDepth, "max-ref-depth", 0, "maximum nested $ref expansions (0 uses the default)")
	fs.BoolVar(&flags.Verbose, "v", false, "log loading details to stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log loading details to stderr")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasdocs tree [flags] <file|url|->\n\n")
		Writef(output, "Build and print the navigation tree of an OpenAPI document.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  oasdocs tree openapi.yaml\n")
		Writef(output, "  oasdocs tree --format json https://example.com/api/openapi.yaml\n")
		Writef(output, "  cat openapi.yaml | oasdocs tree --format yaml -\n")
	}

	return fs, flags
}

// HandleTree executes the tree command
func HandleTree(args []string) error {
	fs, flags := SetupTreeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("tree command requires exactly one file path, URL, or '-' for stdin")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	spec, err := loadSpec(context.Background(), fs.Arg(0), flags.MaxRefDepth, cliLogger(flags.Verbose))
	if err != nil {
		return err
	}

	if flags.Format != FormatText {
		return OutputStructured(stdout, spec.svc, flags.Format)
	}
	writeTreeText(stdout, spec.svc, spec.doc.Dialect.String())
	return nil
}

// writeTreeText prints the service header and one line per child.
func writeTreeText(w io.Writer, svc *navtree.ServiceNode, dialect string) {
	Writef(w, "%s (%s)\n", svc.Name, dialect)
	if len(svc.Tags) > 0 {
		Writef(w, "Tags: %s\n", strings.Join(svc.Tags, ", "))
	}
	Writef(w, "Nodes: %d\n\n", len(svc.Children))

	for _, c := range svc.Children {
		line := fmt.Sprintf("  %-14s %s", c.Type, c.URI)
		if m := c.Method(); m != "" {
			line += "  [" + strings.ToUpper(m) + "]"
		}
		if c.Name != "" {
			line += "  " + c.Name
		}
		if toc.IsInternal(c) {
			line += "  (internal)"
		}
		Writef(w, "%s\n", line)
	}
}
