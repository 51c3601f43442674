package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-dmcrypt/pkg/app/inspect"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <container>",
	Short: "Show the header of a single container",
	Long: `Parse the header of a .dm container without decrypting it.

Prints the flock identifier, the IV, the undecoded reserved bytes and the
size and block alignment of the encrypted body.

Examples:
  go-dmcrypt inspect song.mp3.dm
  go-dmcrypt inspect song.mp3.dm --format yaml`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		response, err := inspect.Handle(appCtx, appFs, &inspect.Request{Path: args[0]})
		if err != nil {
			return err
		}
		return inspect.FormatOutput(cmd.OutOrStdout(), response, appCtx.OutputFormat)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
