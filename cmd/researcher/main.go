package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"research-agent/internal/di"
	"research-agent/internal/infrastructure/env"
)

func main() {
	if err := newRootCmd(env.NewEnvService()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type flags struct {
	provider string
	maxSteps int
	verbose  bool
	saveFile string
}

func newRootCmd(envService *env.EnvService) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:           "researcher",
		Short:         "Research a topic with a tool-using agent and print a structured summary.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := envService.Parse()
			if err != nil {
				return err
			}
			applyFlags(cmd, &cfg, f)
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx, cancel := context.WithTimeout(ctx, cfg.RunTimeout)
			defer cancel()

			container, err := di.NewContainer(ctx, cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer container.Close()

			return container.Research.Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&f.provider, "provider", "", "model provider (openrouter or anthropic)")
	cmd.Flags().IntVar(&f.maxSteps, "max-steps", 0, "maximum agent steps before stopping")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "show agent steps and debug logs")
	cmd.Flags().StringVar(&f.saveFile, "save-file", "", "file the save tool appends to")

	return cmd
}

// applyFlags lets explicitly set flags override the environment.
func applyFlags(cmd *cobra.Command, cfg *env.Config, f flags) {
	fs := cmd.Flags()
	if fs.Changed("provider") {
		cfg.Provider = strings.ToLower(strings.TrimSpace(f.provider))
	}
	if fs.Changed("max-steps") {
		cfg.MaxSteps = f.maxSteps
	}
	if fs.Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if fs.Changed("save-file") {
		cfg.SaveFile = f.saveFile
	}
}
