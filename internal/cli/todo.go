package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/prepkit/internal/model"
	"github.com/idilsaglam/prepkit/internal/state"
	"github.com/idilsaglam/prepkit/internal/ui"
)

const maxTitleWidth = 80

func (a *App) todoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage the shared to-do list used by the redux level",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return usagef("missing todo subcommand")
		},
	}

	var group bool
	ls := &cobra.Command{
		Use:     "ls",
		Short:   "List items",
		Aliases: []string{"list"},
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printTodos(group)
			return nil
		},
	}
	ls.Flags().BoolVar(&group, "group", false, "group output by pending/done")

	add := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a new item (title can be multiple words)",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.store.AddTodo(strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("add: %w", err)
			}
			ui.OK(a.Out, "added "+strconv.Quote(t.Title))
			a.persistenceHint()
			return nil
		},
	}

	done := &cobra.Command{
		Use:   "done <index>",
		Short: "Toggle done for the item at a 1-based index",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.todoAt(args[0])
			if err != nil {
				return err
			}
			if err := a.store.ToggleTodo(t.ID); err != nil {
				return fmt.Errorf("done: %w", err)
			}
			ui.OK(a.Out, "toggled")
			a.persistenceHint()
			return nil
		},
	}

	rm := &cobra.Command{
		Use:   "rm <index>",
		Short: "Remove the item at a 1-based index",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.todoAt(args[0])
			if err != nil {
				return err
			}
			if err := a.store.RemoveTodo(t.ID); err != nil {
				return fmt.Errorf("rm: %w", err)
			}
			ui.OK(a.Out, "removed")
			a.persistenceHint()
			return nil
		},
	}

	edit := &cobra.Command{
		Use:   "edit <index> <title...>",
		Short: "Rename the item at a 1-based index",
		Args:  usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.todoAt(args[0])
			if err != nil {
				return err
			}
			if err := a.store.EditTodo(t.ID, strings.Join(args[1:], " ")); err != nil {
				return fmt.Errorf("edit: %w", err)
			}
			ui.OK(a.Out, "edited")
			a.persistenceHint()
			return nil
		},
	}

	cmd.AddCommand(ls, add, done, rm, edit)
	return cmd
}

// todoAt resolves a 1-based index as shown by `todo ls`.
func (a *App) todoAt(arg string) (model.Todo, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return model.Todo{}, usagef("not a number: %s", arg)
	}
	todos := a.store.Todos()
	if n < 1 || n > len(todos) {
		return model.Todo{}, fmt.Errorf("index out of range: have %d, got %d (run `prepkit todo ls`): %w",
			len(todos), n, state.ErrNotFound)
	}
	return todos[n-1], nil
}

func (a *App) printTodos(group bool) {
	t := ui.Current()
	todos := a.store.Todos()
	d, p := state.TodoStats(todos)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render(t.SymPending), p,
		t.Accent.Render("Total"), len(todos),
	)

	lines := []string{header, t.Muted.Render(ui.ProgressBar(d, d+p, 28)), ""}
	if group {
		lines = append(lines, groupLines(todos)...)
	} else {
		lines = append(lines, flatLines(todos, 1)...)
	}
	lines = append(lines, "", t.Muted.Render("Tip: add with `prepkit todo add \"Buy milk\"`"))
	ui.Panel(a.Out, lines)
}

// flatLines numbers items from first so grouped output keeps the indexes
// that done and rm expect.
func flatLines(todos []model.Todo, first int) []string {
	t := ui.Current()
	if len(todos) == 0 {
		return []string{t.Muted.Render("no items")}
	}
	out := make([]string, 0, len(todos))
	for i, it := range todos {
		idx := t.Muted.Render(fmt.Sprintf("%2d.", first+i))
		box := t.Muted.Render(ui.Checkbox(false))
		if it.Completed {
			box = t.Success.Render(ui.Checkbox(true))
		}
		out = append(out, fmt.Sprintf("%s %s %s", idx, box, truncateTitle(it.Title)))
	}
	return out
}

// truncateTitle caps a title at maxTitleWidth terminal cells, cutting on
// grapheme boundaries.
func truncateTitle(title string) string {
	return ansi.Truncate(title, maxTitleWidth, "...")
}

func groupLines(todos []model.Todo) []string {
	t := ui.Current()
	section := func(name string, completed bool) []string {
		lines := []string{t.Accent.Render(name)}
		n := 0
		for i, it := range todos {
			if it.Completed == completed {
				lines = append(lines, flatLines([]model.Todo{it}, i+1)...)
				n++
			}
		}
		if n == 0 {
			lines = append(lines, t.Muted.Render("(none)"))
		}
		return lines
	}
	lines := section("Pending", false)
	lines = append(lines, "")
	return append(lines, section("Done", true)...)
}

func (a *App) countriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "countries",
		Short: "Manage the countries saved from the country challenge",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return usagef("missing countries subcommand")
		},
	}
	ls := &cobra.Command{
		Use:     "ls",
		Short:   "List saved countries",
		Aliases: []string{"list"},
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := ui.Current()
			saved := a.store.SavedCountries()
			lines := []string{t.Title.Render(fmt.Sprintf("Saved countries (%d)", len(saved))), ""}
			if len(saved) == 0 {
				lines = append(lines, t.Muted.Render("no countries saved"))
			}
			for _, c := range saved {
				lines = append(lines, fmt.Sprintf("%s %s, capital %s",
					t.Accent.Render(t.SymPending), c.Name.Common, c.Capitals()))
			}
			ui.Panel(a.Out, lines)
			return nil
		},
	}
	rm := &cobra.Command{
		Use:   "rm <name...>",
		Short: "Remove a saved country by name, ignoring case",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			if !a.store.RemoveCountry(name) {
				return fmt.Errorf("%q is not saved: %w", name, state.ErrNotFound)
			}
			ui.OK(a.Out, "removed "+name)
			a.persistenceHint()
			return nil
		},
	}
	cmd.AddCommand(ls, rm)
	return cmd
}
