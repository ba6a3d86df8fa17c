package cli

import (
	"github.com/spf13/cobra"

	"github.com/idilsaglam/shoplist/internal/tui"
)

func newTUICmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive mode (full screen)",
		Long: `Interactive mode. Keys: space check, a add, e edit, d delete,
n new list, r rename list, [ and ] switch lists, X delete list,
c clear checked, C clear all, / filter, ? help, q quit.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return tui.Run(cmd.Context(), s.svc)
		},
	}
}
