package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/midbel/bars/dash"
	"github.com/midbel/bars/serve"
	"github.com/spf13/cobra"
)

const defaultAddr = ":8080"

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve [files...]",
		Short: "Host chart files over HTTP with their interactions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := hostCharts(cmd.Context(), args)
			if err != nil {
				return err
			}
			err = srv.ListenAndServe(cmd.Context(), addr)
			if errors.Is(err, http.ErrServerClosed) {
				err = nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listening address")
	return cmd
}

func hostCharts(ctx context.Context, files []string) (*serve.Server, error) {
	var (
		logger = loggerFromContext(ctx)
		srv    = serve.New(logger)
	)
	for _, file := range files {
		spec, err := dash.Load(file)
		if err != nil {
			return nil, err
		}
		c, err := spec.Chart(ctx, logger)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		c.Backend = spec.Backend("")
		id, err := srv.Add(spec.Name(), c)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		logger.Debug("chart loaded", "file", file, "id", id)
	}
	return srv, nil
}
