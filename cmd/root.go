package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-dmcrypt/internal/config"
	"github.com/deploymenttheory/go-dmcrypt/pkg/app"
)

var (
	// Global output flags only
	verbose      bool
	quiet        bool
	outputFormat string
	configFile   string

	// appFs is the file system containers are read from and written to
	appFs afero.Fs = afero.NewOsFs()

	// settings layers flags over environment, config file and defaults
	settings = config.NewViper()

	// Set up by the root command before any subcommand runs
	appCtx *app.Context
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "go-dmcrypt",
	Short: "Decrypt vendor-encrypted .dm media containers",
	Long: `go-dmcrypt is a read-only command-line tool that decrypts .dm media
containers written by a phone vendor's gallery and music apps.

The content key of every container is derived from the account email the
device was signed in with and the flock identifier stored in the container
header. Nothing is written back to the source files.

Commands:
  decrypt     Decrypt containers into a mirrored output tree
  inspect     Show the header of a single container`,
	Version:       "0.1.0-dev",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(settings, appFs, configFile)
		if err != nil {
			return err
		}
		cfg = loaded

		appCtx = app.NewContext(cmd.ErrOrStderr())
		appCtx.Context = cmd.Context()
		appCtx.OutputFormat = cfg.OutputFormat
		appCtx.SetVerbosity(verbose, quiet)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Only global output control flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "table", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ./dmcrypt-config.yaml)")

	cobra.CheckErr(settings.BindPFlag("output_format", rootCmd.PersistentFlags().Lookup("format")))
}
