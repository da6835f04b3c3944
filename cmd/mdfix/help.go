package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdfix <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  fix        Normalize wiki texts and documents")
	fmt.Fprintln(w, "  preview    Fix a text and render it to HTML")
	fmt.Fprintln(w, "  list       List available processors")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdfix help <command>' for details on a specific command.")
}

func printChainUsage(w io.Writer) {
	fmt.Fprintln(w, "Processors:")
	fmt.Fprintln(w, "  -p, --processors <list>   Comma separated processors (default chain)")
	fmt.Fprintln(w, "  -t, --types <path>        Document type table for [[id|label]] links")
	fmt.Fprintln(w, "  -r, --replacements <path> Replacement dictionary")
	fmt.Fprintln(w, "      --no-bbcode           Drop BBCode conversion from the default chain")
	fmt.Fprintln(w)
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log each file")
	fmt.Fprintln(w, "      --log-format <s>      console, json, pretty")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDFIX_CONFIG, MDFIX_WORKERS, MDFIX_TYPES")
}

// printFixUsage prints usage for the fix command.
func printFixUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdfix fix <path> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Normalize .md, .markdown, .txt texts and .yaml documents.")
	fmt.Fprintln(w, "Without --write, prints a unified diff of every change.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  path    File or directory (walked recursively)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Fix:")
	fmt.Fprintln(w, "      --write               Rewrite changed files in place")
	fmt.Fprintln(w, "      --color               Colorize diffs")
	fmt.Fprintln(w, "  -l, --lang <code>         Language of text files")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	printChainUsage(w)
	printCommonUsage(w)
}

// printPreviewUsage prints usage for the preview command.
func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdfix preview <file> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Fix a text file and render it to a standalone HTML page.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Preview:")
	fmt.Fprintln(w, "  -o, --output <path>       HTML file (default: input with .html)")
	fmt.Fprintln(w, "      --base-url <url>      Site wiki links point to")
	fmt.Fprintln(w, "  -l, --lang <code>         Language of the text")
	fmt.Fprintln(w)
	printChainUsage(w)
	printCommonUsage(w)
}

// printListUsage prints usage for the list command.
func printListUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdfix list [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List processors with their description, languages, and status.")
	fmt.Fprintln(w, "Default chain members are marked with *.")
	fmt.Fprintln(w)
	printChainUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "fix":
		printFixUsage(env.Stdout)
	case "preview":
		printPreviewUsage(env.Stdout)
	case "list":
		printListUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdfix version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdfix help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
