package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/deploymenttheory/go-dmcrypt/pkg/app/decrypt"
)

var (
	// Destination (decrypt-specific)
	decryptOutput string

	// Decryption options (decrypt-specific)
	decryptEmail        string
	decryptRecursive    bool
	decryptWorkers      int
	decryptExtension    string
	decryptOverwrite    bool
	decryptStripPadding bool
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt <input>... --email <address> --output <dir>",
	Short: "Decrypt containers into a mirrored output tree",
	Long: `Decrypt .dm containers found in the given files and directories.

Each decrypted file is written under the output directory at the input path
with the container extension removed. A file that fails to decrypt is
reported and the remaining files are still processed.

The email may also come from DMCRYPT_EMAIL or the config file; when it is
missing and stdin is a terminal it is prompted for.

Examples:
  # Decrypt a single container
  go-dmcrypt decrypt song.mp3.dm --email me@example.com --output ./plain

  # Decrypt a whole copied phone storage tree with 8 workers
  go-dmcrypt decrypt ./sdcard -r --workers 8 -e me@example.com -o ./plain

  # Machine-readable report
  go-dmcrypt decrypt ./sdcard -r -e me@example.com -o ./plain --format json`,

	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDecrypt(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(decryptCmd)

	// Destination
	decryptCmd.Flags().StringVarP(&decryptOutput, "output", "o", "", "output directory (required)")
	decryptCmd.MarkFlagRequired("output")

	// Decryption behavior
	decryptCmd.Flags().StringVarP(&decryptEmail, "email", "e", "", "account email the containers were encrypted for")
	decryptCmd.Flags().BoolVarP(&decryptRecursive, "recursive", "r", false, "search directories recursively")
	decryptCmd.Flags().IntVar(&decryptWorkers, "workers", 0, "number of files decrypted in parallel (default: number of CPUs)")
	decryptCmd.Flags().StringVar(&decryptExtension, "ext", "", "container file extension (default: .dm)")
	decryptCmd.Flags().BoolVar(&decryptOverwrite, "overwrite", true, "overwrite existing output files")
	decryptCmd.Flags().BoolVar(&decryptStripPadding, "strip-padding", false, "remove well-formed PKCS#7 padding from output")

	for key, flag := range map[string]string{
		"email":         "email",
		"recursive":     "recursive",
		"workers":       "workers",
		"extension":     "ext",
		"overwrite":     "overwrite",
		"strip_padding": "strip-padding",
	} {
		cobra.CheckErr(settings.BindPFlag(key, decryptCmd.Flags().Lookup(flag)))
	}
}

func runDecrypt(cmd *cobra.Command, inputs []string) error {
	email := cfg.Email
	if email == "" {
		prompted, err := promptEmail(os.Stdin, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		email = prompted
	}

	req := &decrypt.Request{
		Inputs:       inputs,
		Email:        email,
		OutputDir:    decryptOutput,
		Recursive:    cfg.Recursive,
		Extension:    cfg.Extension,
		Workers:      cfg.Workers,
		Overwrite:    cfg.Overwrite,
		StripPadding: cfg.StripPadding,
	}

	response, err := decrypt.Handle(appCtx, appFs, req)
	if response == nil {
		return err
	}

	if !appCtx.Quiet || response.Failed > 0 {
		if fmtErr := decrypt.FormatOutput(cmd.OutOrStdout(), response, appCtx.OutputFormat); fmtErr != nil {
			return fmtErr
		}
	}

	if err != nil {
		return fmt.Errorf("%d of %d files failed (%d errors)", response.Failed+response.Cancelled, response.Total, len(multierr.Errors(err)))
	}
	return nil
}
