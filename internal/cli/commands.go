package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/prepkit/internal/challenge"
	"github.com/idilsaglam/prepkit/internal/tui"
	"github.com/idilsaglam/prepkit/internal/ui"
)

// usageArgs turns an argument validation failure into a usage error.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return &UsageError{Err: err}
		}
		return nil
	}
}

// Command builds the command tree. Calling it again replaces the tree.
func (a *App) Command() *cobra.Command {
	root := &cobra.Command{
		Use:   "prepkit",
		Short: "Interview practice challenges in the terminal",
		Long: `prepkit runs small practice challenges (to-do lists, stopwatches,
searchable tables, API lookups) at low, mid and hard difficulty.

Examples:
  prepkit list
  prepkit run todo hard
  prepkit open /country/mid
  prepkit todo add "Buy milk"
  prepkit source stopwatch`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return usagef("missing subcommand")
		},
	}
	root.SetOut(a.Out)
	root.SetErr(a.Err)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default .prepkit.yml in . or $HOME)")
	pf.String("theme", "", "color theme: classic, neon or mono")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.String("state", "", "JSON file that keeps to-dos and saved countries between runs")

	a.root = root
	root.AddCommand(
		a.listCommand(),
		a.runCommand(),
		a.openCommand(),
		a.sourceCommand(),
		a.todoCommand(),
		a.countriesCommand(),
		a.configCommand(),
	)
	return root
}

func (a *App) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.cfg.Dump()
			if err != nil {
				return fmt.Errorf("dump config: %w", err)
			}
			_, err = a.Out.Write(b)
			return err
		},
	}
}

func (a *App) runCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "run <challenge> [level]",
		Short:   "Start a challenge; the level defaults per challenge",
		Aliases: []string{"r"},
		Args:    usageArgs(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := ""
			if len(args) == 2 {
				level = args[1]
			}
			e, l, err := challenge.Resolve(args[0], level)
			if err != nil {
				return err
			}
			return a.start(cmd, e, l)
		},
	}
}

func (a *App) openCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "open <route>",
		Short: "Start a challenge by route, e.g. /users/hard",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, l, err := challenge.ParseRoute(args[0])
			if err != nil {
				return err
			}
			return a.start(cmd, e, l)
		},
	}
}

func (a *App) sourceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "source <challenge>",
		Short: "Print the Go source of a challenge",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := challenge.Lookup(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(a.Out, tui.Source(e.ID))
			return nil
		},
	}
}

func (a *App) listCommand() *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List challenges, their levels and routes",
		Aliases: []string{"ls"},
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := ui.Current()
			lines := []string{t.Title.Render("Challenges"), ""}
			if group {
				for _, g := range groups() {
					lines = append(lines, t.Accent.Render(g))
					for _, e := range challenge.All() {
						if e.Group == g {
							lines = append(lines, entryLine(e))
						}
					}
					lines = append(lines, "")
				}
			} else {
				for _, e := range challenge.All() {
					lines = append(lines, entryLine(e))
				}
				lines = append(lines, "")
			}
			lines = append(lines, t.Muted.Render("Tip: start one with `prepkit run todo hard`; * marks the default level"))
			ui.Panel(a.Out, lines)
			return nil
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "group challenges by section")
	return cmd
}

func groups() []string {
	var out []string
	seen := map[string]bool{}
	for _, e := range challenge.All() {
		if !seen[e.Group] {
			seen[e.Group] = true
			out = append(out, e.Group)
		}
	}
	return out
}

func entryLine(e challenge.Entry) string {
	t := ui.Current()
	levels := make([]string, len(e.Levels))
	for i, l := range e.Levels {
		levels[i] = string(l)
		if l == e.Default {
			levels[i] += "*"
		}
	}
	return t.Accent.Render(fmt.Sprintf("%-10s", e.ID)) + " " +
		fmt.Sprintf("%-24s", strings.Join(levels, " ")) + " " +
		t.Muted.Render(e.Summary)
}
