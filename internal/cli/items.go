package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/shoplist/internal/filter"
	"github.com/idilsaglam/shoplist/internal/model"
	"github.com/idilsaglam/shoplist/internal/resolver"
	"github.com/idilsaglam/shoplist/internal/ui"
)

func newAddCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "add <text...>",
		Short:   "Add an item to the top of the active list",
		Example: `  shoplist add Milch
  shoplist add "2 kg Kartoffeln"`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, ok, err := s.svc.AddItem(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if !ok {
				return usagef("add: empty text")
			}
			ui.OK(s.streams.Out, fmt.Sprintf("added %q (%s)", it.Text, resolver.Short(it.ID)))
			return nil
		},
	}
}

func newLsCmd(s *session) *cobra.Command {
	var where string
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "Show the active list",
		Example: `  shoplist ls --group
  shoplist ls --where '!checked && text contains "milch"'`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := filter.Compile(where)
			if err != nil {
				return usagef("%v", err)
			}
			l := s.svc.ActiveList()
			shown, err := p.Apply(l.Items)
			if err != nil {
				return err
			}
			ui.Panel(s.streams.Out, ui.ListLines(l, shown, ui.ViewOptions{Group: s.opt.Group}))
			return nil
		},
	}
	cmd.Flags().StringVar(&where, "where", "", "only show items matching this expression (text, checked, createdAt, now)")
	return cmd
}

// itemCmd builds the "<verb> <item-id>" commands that resolve an id on the active list first.
func itemCmd(s *session, use, short, done string, run func(cmd *cobra.Command, id string, args []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolver.ResolveItem(s.svc.ActiveList(), args[0])
			if err != nil {
				return err
			}
			if err := run(cmd, id, args[1:]); err != nil {
				return err
			}
			if done != "" {
				ui.OK(s.streams.Out, done)
			}
			return nil
		},
	}
}

func newCheckCmd(s *session) *cobra.Command {
	cmd := itemCmd(s, "check <item-id>", "Tick an item off, or back on", "toggled",
		func(cmd *cobra.Command, id string, _ []string) error {
			return s.svc.ToggleItem(cmd.Context(), id)
		})
	cmd.Args = usageArgs(cobra.ExactArgs(1))
	return cmd
}

func newRmCmd(s *session) *cobra.Command {
	cmd := itemCmd(s, "rm <item-id>", "Remove an item", "removed",
		func(cmd *cobra.Command, id string, _ []string) error {
			return s.svc.DeleteItem(cmd.Context(), id)
		})
	cmd.Args = usageArgs(cobra.ExactArgs(1))
	return cmd
}

func newEditCmd(s *session) *cobra.Command {
	cmd := itemCmd(s, "edit <item-id> [text...]", "Change an item's text (prompts when no text is given)", "",
		func(cmd *cobra.Command, id string, rest []string) error {
			before := itemText(s.svc.ActiveList(), id)
			if len(rest) > 0 {
				text := strings.Join(rest, " ")
				if err := s.svc.EditItem(cmd.Context(), id, &text); err != nil {
					return err
				}
			} else if err := s.svc.EditItemWithPrompt(cmd.Context(), id, s.term); err != nil {
				return err
			}
			after := itemText(s.svc.ActiveList(), id)
			if after == before {
				ui.Warn(s.streams.Out, "unchanged")
				return nil
			}
			ui.OK(s.streams.Out, fmt.Sprintf("%q -> %q", before, after))
			return nil
		})
	cmd.Long = `Change an item's text. Without text you are asked for it; press enter to keep
the current text, or end input (Ctrl-D) to cancel.`
	return cmd
}

func itemText(l *model.List, id string) string {
	if i := l.ItemIndex(id); i >= 0 {
		return l.Items[i].Text
	}
	return ""
}

func newClearDoneCmd(s *session) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear-done",
		Short: "Remove all checked items from the active list",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if s.svc.CompletedCount() == 0 {
				ui.Warn(s.streams.Out, "nothing checked")
				return nil
			}
			n, err := s.svc.ClearCompleted(cmd.Context(), s.confirmer(yes))
			if err != nil {
				return err
			}
			if n == 0 {
				ui.Warn(s.streams.Out, "cancelled")
				return nil
			}
			ui.OK(s.streams.Out, fmt.Sprintf("removed %d checked item(s)", n))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newClearCmd(s *session) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every item from the active list",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			before := len(s.svc.ActiveList().Items)
			if before == 0 {
				ui.Warn(s.streams.Out, "nothing to clear")
				return nil
			}
			n, err := s.svc.ClearAll(cmd.Context(), s.confirmer(yes))
			if err != nil {
				return err
			}
			if n == 0 {
				ui.Warn(s.streams.Out, "cancelled")
				return nil
			}
			ui.OK(s.streams.Out, fmt.Sprintf("removed %d item(s)", n))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
