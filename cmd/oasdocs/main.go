package main

import (
	"fmt"
	"os"

	"github.com/oasdocs/oasdocs"
	"github.com/oasdocs/oasdocs/cmd/oasdocs/commands"
)

// validCommands lists the top-level commands, in the order they are suggested.
var validCommands = []string{"tree", "toc", "resolve", "export", "serve", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var handler func([]string) error
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasdocs v%s\n", oasdocs.Version())
		fmt.Printf("commit: %s\n", oasdocs.Commit())
		fmt.Printf("built: %s\n", oasdocs.BuildTime())
		fmt.Printf("go: %s\n", oasdocs.GoVersion())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "tree":
		handler = commands.HandleTree
	case "toc":
		handler = commands.HandleTOC
	case "resolve":
		handler = commands.HandleResolve
	case "export":
		handler = commands.HandleExport
	case "serve":
		handler = commands.HandleServe
	case "mcp":
		handler = commands.HandleMCP
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}

	if err := handler(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// suggestCommand returns the closest known command within an edit distance
// of 2, or "" when nothing is close enough.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, cmd := range validCommands {
		if d := editDistance(input, cmd); d < bestDist {
			best, bestDist = cmd, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Println(`oasdocs - OpenAPI documentation navigator

Usage:
  oasdocs <command> [options]

Commands:
  tree        Print the navigation tree of an OpenAPI document
  toc         Print the table of contents, grouped by tag
  resolve     Resolve a browser path to the node it shows
  export      Export the original or bundled document
  serve       Serve browsable documentation over HTTP
  mcp         Run the MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  oasdocs tree openapi.yaml
  oasdocs toc --hide-internal https://example.com/api/openapi.yaml
  oasdocs resolve openapi.yaml /paths/pets/get
  oasdocs export --variant bundled -o dist openapi.yaml
  oasdocs serve --layout stacked openapi.yaml

Run 'oasdocs <command> --help' for more information on a command.`)
}
