// Package cli implements the sciboot command line.
//
// Settings are resolved through internal/config: flags override SCIBOOT_*
// environment variables, which override .sciboot.yaml (or the file named by
// --config / SCIBOOT_CONFIG_FILE), which overrides the defaults.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/YuminosukeSato/sciboot/internal/config"
	"github.com/YuminosukeSato/sciboot/pkg/log"
	"github.com/YuminosukeSato/sciboot/validation"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	cfgFile string
	getenv  func(string) string
	cfg     *config.Config
}

// NewRootCommand builds the sciboot command tree.
func NewRootCommand() *cobra.Command {
	a := &app{getenv: os.Getenv}

	root := &cobra.Command{
		Use:   "sciboot",
		Short: "Bootstrap resampling and model validation",
		Long: `sciboot draws bootstrap replications and k-fold partitions of a data set
and validates models on them.

Examples:
  sciboot sample --n 10 --rounds 3 --seed 1
  sciboot stratified --labels 0,0,1,1,1 --rounds 5
  sciboot kfold --n 20 --folds 4
  sciboot validate --data houses.csv --target price --rounds 200 --plot rmse.png`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./.sciboot.yaml, can also use "+config.EnvConfigFile+")")
	flags.StringP("log-level", "l", "warn", "log level (debug, info, warn, error)")
	flags.StringP("format", "f", "json", "output format (json, yaml)")
	flags.Int64("seed", -1, "random seed; negative uses a non-reproducible source")
	flags.IntP("workers", "w", 1, "number of goroutines used for replications")

	root.AddCommand(
		newSampleCommand(a),
		newStratifiedCommand(a),
		newKFoldCommand(a),
		newValidateCommand(a),
	)
	return root
}

// Execute runs the command tree with the given arguments.
func Execute(ctx context.Context, args []string) error {
	root := NewRootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// setup loads the configuration, binding the persistent flags and the
// invoked command's own flags, and installs the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	v, err := config.New(a.cfgFile, a.getenv)
	if err != nil {
		return err
	}
	bindings := map[string]string{
		config.KeyLogLevel: "log-level",
		config.KeyFormat:   "format",
		config.KeySeed:     "seed",
		config.KeyWorkers:  "workers",
		config.KeyRounds:   "rounds",
		config.KeyBins:     "bins",
	}
	for key, name := range bindings {
		if f := lookupFlag(cmd, name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return log.SetupLogger(cfg.LogLevel, cmd.ErrOrStderr())
}

func lookupFlag(cmd *cobra.Command, name string) *pflag.Flag {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f
	}
	return cmd.InheritedFlags().Lookup(name)
}

// options translates the resolved settings into resampling options.
func (a *app) options() []validation.Option {
	opts := []validation.Option{
		validation.WithWorkers(a.cfg.Workers),
		validation.WithLogger(log.GetLoggerWithName("cli")),
	}
	if a.cfg.Seeded() {
		opts = append(opts, validation.WithSeed(uint64(a.cfg.Seed)))
	}
	return opts
}
