package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/oasdocs/oasdocs/navtree"
	"github.com/oasdocs/oasdocs/toc"
)

// ResolveFlags contains flags for the resolve command
type ResolveFlags struct {
	Format       string
	BasePath     string
	OuterRouter  bool
	HideInternal bool
	Verbose      bool
}

// SetupResolveFlags creates and configures a FlagSet for the resolve command.
// Returns the FlagSet and a ResolveFlags struct with bound flag variables.
func SetupResolveFlags() (*flag.FlagSet, *ResolveFlags) {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	flags := &ResolveFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.BasePath, "base-path", "", "path prefix the documentation is mounted under")
	fs.BoolVar(&flags.OuterRouter, "outer-router", false, "strip --base-path from the path before matching")
	fs.BoolVar(&flags.HideInternal, "hide-internal", false, "redirect x-internal nodes to the overview")
	fs.BoolVar(&flags.Verbose, "v", false, "log loading details to stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log loading details to stderr")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasdocs resolve [flags] <file|url|-> <path>\n\n")
		Writef(output, "Resolve a browser path to the node the documentation shows for it.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  oasdocs resolve openapi.yaml /paths/pets/get\n")
		Writef(output, "  oasdocs resolve --base-path /docs --outer-router openapi.yaml /docs/schemas/Pet\n")
		Writef(output, "\nResult kinds:\n")
		Writef(output, "  service         the overview page\n")
		Writef(output, "  child           an operation, webhook or schema\n")
		Writef(output, "  redirect_first  unknown path, redirects to the first entry\n")
		Writef(output, "  redirect_root   internal node hidden by --hide-internal\n")
		Writef(output, "  none            nothing to show\n")
	}

	return fs, flags
}

// ResolveResult is the structured output of the resolve command.
type ResolveResult struct {
	RelativePath string             `json:"relativePath"`
	Kind         string             `json:"kind"`
	RedirectTo   string             `json:"redirectTo,omitempty"`
	Node         *navtree.ChildNode `json:"node,omitempty"`
	ShowExport   bool               `json:"showExport"`
}

// HandleResolve executes the resolve command
func HandleResolve(args []string) error {
	fs, flags := SetupResolveFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("resolve command requires a document and a path")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	spec, err := loadSpec(context.Background(), fs.Arg(0), 0, cliLogger(flags.Verbose))
	if err != nil {
		return err
	}

	result := resolvePath(spec.svc, fs.Arg(1), flags)

	if flags.Format != FormatText {
		return OutputStructured(stdout, result, flags.Format)
	}

	Writef(stdout, "Path: %s\n", result.RelativePath)
	Writef(stdout, "Kind: %s\n", result.Kind)
	if result.RedirectTo != "" {
		Writef(stdout, "Redirect: %s\n", result.RedirectTo)
	}
	if n := result.Node; n != nil {
		Writef(stdout, "Node: %s %s\n", n.Type, n.URI)
		Writef(stdout, "Name: %s\n", n.Name)
		if m := n.Method(); m != "" {
			Writef(stdout, "Method: %s\n", strings.ToUpper(m))
		}
		if len(n.Tags) > 0 {
			Writef(stdout, "Tags: %s\n", strings.Join(n.Tags, ", "))
		}
	}
	return nil
}

func resolvePath(svc *navtree.ServiceNode, path string, flags *ResolveFlags) ResolveResult {
	tree := toc.ComputeAPITree(svc, toc.Config{HideInternal: flags.HideInternal})
	rel := toc.ResolveRelativePath(path, flags.BasePath, flags.OuterRouter)
	res := toc.Locate(svc, tree, rel, flags.HideInternal)
	return ResolveResult{
		RelativePath: rel,
		Kind:         res.Kind.String(),
		RedirectTo:   res.RedirectTo,
		Node:         res.Node,
		ShowExport:   res.IsService(),
	}
}
