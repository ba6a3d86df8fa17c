package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/shoplist/internal/app"
	"github.com/idilsaglam/shoplist/internal/resolver"
	"github.com/idilsaglam/shoplist/internal/ui"
)

func newListsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "lists",
		Short: "Show all lists with their item counts",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ui.Panel(s.streams.Out, ui.ListsLines(s.svc.State()))
			return nil
		},
	}
}

func newNewCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "new [name...]",
		Short: "Create a list and make it active",
		Long:  fmt.Sprintf("Create a list and make it active. Without a name it is called %q.", app.NewListName),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := s.svc.CreateList(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			ui.OK(s.streams.Out, fmt.Sprintf("created %q (%s)", l.Name, resolver.Short(l.ID)))
			return nil
		},
	}
}

func newUseCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "use <list-id>",
		Short: "Switch the active list",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolver.ResolveList(s.svc.State(), args[0])
			if err != nil {
				return err
			}
			if err := s.svc.SelectList(cmd.Context(), id); err != nil {
				return err
			}
			ui.OK(s.streams.Out, "now using "+s.svc.ActiveList().Name)
			return nil
		},
	}
}

func newRenameCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <name...>",
		Short: "Rename the active list",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			if name == "" {
				return usagef("rename: empty name")
			}
			if err := s.svc.RenameList(cmd.Context(), name); err != nil {
				return err
			}
			ui.OK(s.streams.Out, "renamed to "+name)
			return nil
		},
	}
}

func newDropCmd(s *session) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "drop [list-id]",
		Short: "Delete a list (default: the active one)",
		Long: `Delete a list and all its items. Without an id the active list is removed.
Deleting the last list leaves a fresh, empty default list behind.`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := s.svc.State()
			id := st.ActiveListID
			if len(args) == 1 {
				var err error
				if id, err = resolver.ResolveList(st, args[0]); err != nil {
					return err
				}
			}
			name := st.Lists[st.ListIndex(id)].Name
			if !s.confirmer(yes).Confirm(fmt.Sprintf("%s (%s)", app.MsgDeleteList, name)) {
				ui.Warn(s.streams.Out, "cancelled")
				return nil
			}
			if err := s.svc.DeleteList(cmd.Context(), id); err != nil {
				return err
			}
			ui.OK(s.streams.Out, fmt.Sprintf("deleted %q", name))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (s *session) confirmer(yes bool) app.Confirmer {
	if yes {
		return app.Always
	}
	return s.term
}
