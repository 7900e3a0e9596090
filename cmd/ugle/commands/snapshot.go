package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newSnapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot <manifest>",
		Short: "Capture the environment described by a manifest into an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.app.Snapshot(cmd.Context(), args[0])
			return err
		},
	}
}
