// Package cli wires the cobra command tree for arcgen.
package cli

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/arcgen/internal/app"
	"github.com/doeshing/arcgen/internal/domain"
)

// ErrSilent marks a failure RenderResponse has already shown to the user.
// main exits non-zero on it without printing the error a second time.
var ErrSilent = errors.New("error already reported")

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// generateOptions carries the generate flags; the root command runs a
// generation with the zero value.
type generateOptions struct {
	model   string
	noRun   bool
	debug   bool
	timeout time.Duration
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	root := &cobra.Command{
		Use:   "arcgen [prompt]",
		Short: "ArcGen - prompt-to-CAD script generator",
		Long:  "ArcGen asks a generative model for a Python drawing script, repairs known ezdxf mistakes, runs it in a sandbox, and collects the artifacts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runGeneration(cmd, container, generateOptions{}, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newGenerateCommand(container))
	root.AddCommand(newOutputsCommand(container))
	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newCacheCommand(container))
	root.AddCommand(newConfigCommand(container))
	root.AddCommand(newModelsCommand(container))
	root.AddCommand(newDoctorCommand(container))
	root.AddCommand(newPreviewCommand(container))
	root.AddCommand(newVersionCommand())
	return root, nil
}

func newGenerateCommand(container *app.Container) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate [natural language]",
		Short: "Generate, repair, and run a script from natural language",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGeneration(cmd, container, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "Override model name (default from config)")
	cmd.Flags().BoolVar(&opts.noRun, "no-run", false, "Write the sanitized script but do not execute it")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable verbose logging")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 5*time.Minute, "Override overall request timeout")

	return cmd
}

func runGeneration(cmd *cobra.Command, container *app.Container, opts generateOptions, args []string) error {
	ctx := cmd.Context()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	req := domain.GenerationRequest{
		Context:       ctx,
		Prompt:        strings.Join(args, " "),
		ModelOverride: opts.model,
		SkipExecution: opts.noRun,
		Debug:         opts.debug,
	}
	resp, err := container.Pipeline.Run(container.Session, req)
	RenderResponse(cmd.OutOrStdout(), resp, err)
	if err != nil {
		return ErrSilent
	}
	return nil
}
