package cli

import (
	"context"
	"fmt"
	"runtime"

	"github.com/midbel/bars/dash"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type renderOpts struct {
	output string
	jobs   int
}

func newRenderCmd() *cobra.Command {
	opts := renderOpts{
		jobs: runtime.NumCPU(),
	}
	cmd := &cobra.Command{
		Use:   "render [files...]",
		Short: "Render chart files to SVG",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), args, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default: next to each chart file)")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", opts.jobs, "number of charts rendered in parallel")
	return cmd
}

func runRender(ctx context.Context, files []string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	grp, ctx := errgroup.WithContext(ctx)
	if opts.jobs > 0 {
		grp.SetLimit(opts.jobs)
	}
	for _, file := range files {
		file := file
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			prog := newProgress(logger)
			spec, err := dash.Load(file)
			if err != nil {
				return err
			}
			written, err := spec.RenderFile(ctx, opts.output, logger)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			prog.done(fmt.Sprintf("rendered %s", written))
			return nil
		})
	}
	return grp.Wait()
}
