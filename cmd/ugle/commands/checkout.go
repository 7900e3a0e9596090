package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/ugle/internal/app"
)

func (c *CLI) newCheckoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout <archive-or-lockfile>",
		Short: "Restore a snapshot into a working directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest, _ := cmd.Flags().GetString("destination")
			force, _ := cmd.Flags().GetBool("force")
			_, err := c.app.Checkout(cmd.Context(), args[0], app.CheckoutOptions{
				Destination: dest,
				Force:       force,
			})
			return err
		},
	}
	cmd.Flags().StringP("destination", "d", "", "Checkout directory (defaults to ~/.ugle/<name>)")
	cmd.Flags().BoolP("force", "f", false, "Overwrite the destination if it already exists")
	return cmd
}
