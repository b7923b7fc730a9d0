package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/oasdocs/oasdocs/toc"
)

// TOCFlags contains flags for the toc command
type TOCFlags struct {
	Format       string
	HideSchemas  bool
	HideInternal bool
	MaxRefDepth  int
	Verbose      bool
}

// SetupTOCFlags creates and configures a FlagSet for the toc command.
// Returns the FlagSet and a TOCFlags struct with bound flag variables.
func SetupTOCFlags() (*flag.FlagSet, *TOCFlags) {
	fs := flag.NewFlagSet("toc", flag.ContinueOnError)
	flags := &TOCFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.HideSchemas, "hide-schemas", false, "leave out the Schemas section")
	fs.BoolVar(&flags.HideInternal, "hide-internal", false, "leave out x-internal operations, webhooks and schemas")
	fs.IntVar(&flags.MaxRefDepth, "max-ref-depth", 0, "maximum nested $ref expansions (0 uses the default)")
	fs.BoolVar(&flags.Verbose, "v", false, "log loading details to stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log loading details to stderr")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasdocs toc [flags] <file|url|->\n\n")
		Writef(output, "Print the table of contents of an OpenAPI document.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  oasdocs toc openapi.yaml\n")
		Writef(output, "  oasdocs toc --hide-internal --hide-schemas openapi.yaml\n")
		Writef(output, "  oasdocs toc --format json openapi.yaml\n")
	}

	return fs, flags
}

// HandleTOC executes the toc command
func HandleTOC(args []string) error {
	fs, flags := SetupTOCFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("toc command requires exactly one file path, URL, or '-' for stdin")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	spec, err := loadSpec(context.Background(), fs.Arg(0), flags.MaxRefDepth, cliLogger(flags.Verbose))
	if err != nil {
		return err
	}

	items := toc.ComputeAPITree(spec.svc, toc.Config{
		HideSchemas:  flags.HideSchemas,
		HideInternal: flags.HideInternal,
	})

	if flags.Format != FormatText {
		return OutputStructured(stdout, items, flags.Format)
	}
	writeTOCText(stdout, items)
	return nil
}

// writeTOCText prints items as an indented outline. Entries following a
// section divider are indented one level, group members one more.
func writeTOCText(w io.Writer, items []toc.Item) {
	indent := ""
	for _, it := range items {
		switch it.Kind {
		case toc.KindDivider:
			Writef(w, "%s\n", strings.ToUpper(it.Title))
			indent = "  "
		case toc.KindGroup:
			Writef(w, "%s%s/\n", indent, it.Title)
			for _, child := range it.Items {
				writeTOCLeaf(w, indent+"  ", child)
			}
		default:
			writeTOCLeaf(w, indent, it)
		}
	}
}

func writeTOCLeaf(w io.Writer, indent string, it toc.Item) {
	if it.Meta != "" {
		Writef(w, "%s%-6s %s  %s\n", indent, strings.ToUpper(it.Meta), it.Title, it.Slug)
		return
	}
	Writef(w, "%s%s  %s\n", indent, it.Title, it.Slug)
}
