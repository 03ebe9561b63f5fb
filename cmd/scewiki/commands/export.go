package commands

import (
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the archive as a JSON document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return appCtx.Export(cmd.Context(), cmd.OutOrStdout())
		},
	}
}
