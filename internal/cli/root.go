package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/schererja/pncctl/internal/command"
	"github.com/schererja/pncctl/internal/config"
	"github.com/schererja/pncctl/pkg/logger"
)

// app carries the state shared by the commands of one process run
type app struct {
	v      *viper.Viper
	stdout io.Writer
	stderr io.Writer

	newService func(cfg *config.Config, log *logger.Logger) (BuildService, error)

	cfg        *config.Config
	log        *logger.Logger
	dispatcher *command.Dispatcher[BuildService]

	// dispatched is set once the dispatcher has logged a failure
	dispatched bool
}

// Execute runs the command line in os.Args and returns the error already
// reported on stderr, if any.
func Execute(ctx context.Context) error {
	return run(ctx, os.Args[1:], os.Stdout, os.Stderr, newClientService)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer,
	newService func(*config.Config, *logger.Logger) (BuildService, error)) error {
	a := &app{
		v:          viper.New(),
		stdout:     stdout,
		stderr:     stderr,
		newService: newService,
	}
	root := a.newRootCmd()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil, a.dispatched:
	case a.log != nil:
		a.log.Error("Command failed", err)
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	if a.log != nil {
		a.log.Close()
	}
	return err
}

func (a *app) newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pncctl",
		Short: "Operate builds on a remote build orchestration service",
		Long: `pncctl is a command-line front end for a remote build orchestration service.

It starts and cancels builds, lists builds together with the artifacts they
produced or depended on, shows a single build and downloads the SCM sources a
build was made from.`,
		Version:           "0.1.0-dev",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initConfig,
	}
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.config/pncctl/config.yaml)")
	flags.BoolP("verbose", "v", false, "enable verbose output")
	flags.String("url", "", "base url of the service REST API")
	flags.Int("page-size", config.DefaultPageSize, "number of items fetched per page when listing")
	flags.StringP("output", "o", config.OutputYAML, "output format: yaml or json")
	flags.String("log-file", "", "also write logs to this file (rotated)")

	a.v.BindPFlags(flags)
	a.v.SetEnvPrefix("PNCCTL")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	rootCmd.AddCommand(a.newBuildCmd())
	return rootCmd
}

// initConfig resolves configuration and sets up logging, output and the
// dispatcher before any sub-command runs.
func (a *app) initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Resolve(a.v)
	if err != nil {
		return &command.Failure{Command: cmd.Name(), Kind: command.KindConfig, Message: err.Error(), Err: err}
	}
	a.cfg = cfg

	log, err := logger.New(logger.Options{
		Verbose:    a.v.GetBool("verbose"),
		Writer:     a.stderr,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if err != nil {
		return &command.Failure{Command: cmd.Name(), Kind: command.KindConfig, Message: err.Error(), Err: err}
	}
	a.log = log
	if used := a.v.GetString("config"); used != "" {
		log.Debug("Using config file: " + used)
	}

	out, err := command.NewPrinter(cfg.Output, a.stdout)
	if err != nil {
		return &command.Failure{Command: cmd.Name(), Kind: command.KindConfig, Message: err.Error(), Err: err}
	}

	a.dispatcher = command.NewDispatcher(func() (BuildService, error) {
		return a.newService(a.cfg, a.log)
	}, out, log)
	registerBuildCommands(a.dispatcher, log)
	return nil
}

// dispatch hands a parsed cobra invocation to the dispatcher
func (a *app) dispatch(cmd *cobra.Command, args []string) error {
	in := command.Input{Args: args, Flags: map[string]string{}}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		in.Flags[f.Name] = f.Value.String()
	})
	err := a.dispatcher.Dispatch(cmd.Context(), cmd.Name(), in)
	a.dispatched = err != nil
	return err
}
