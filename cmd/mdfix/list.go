package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/alnah/go-mdfix"
)

// runList prints every registered processor. Members of the default chain
// are marked with "*".
func runList(args []string, env *Environment) error {
	flags, positional, err := parseListFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: list takes no arguments", ErrUsage)
	}

	cfg, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	mergeChainFlags(&flags.chain, cfg)
	mergeCommonFlags(&flags.common, cfg)

	logger, err := buildLogger(cfg, env)
	if err != nil {
		return err
	}

	opts, err := processorOptions(cfg, flags.chain.noBBCode, logger)
	if err != nil {
		return err
	}

	infos, err := mdfix.Describe(opts...)
	if err != nil {
		return err
	}

	return printProcessors(env.Stdout, infos, mdfix.DefaultNames(opts...))
}

func printProcessors(w io.Writer, infos []mdfix.Info, defaults []string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\tNAME\tREADY\tLANGS\tDESCRIPTION")
	for _, info := range infos {
		mark := ""
		if slices.Contains(defaults, info.Name) {
			mark = "*"
		}
		ready := "no"
		if info.ProductionReady {
			ready = "yes"
		}
		langs := "all"
		if len(info.Langs) > 0 {
			langs = strings.Join(info.Langs, ",")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", mark, info.Name, ready, langs, info.Comment)
	}
	return tw.Flush()
}
