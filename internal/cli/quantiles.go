package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/midbel/bars"
	"github.com/midbel/bars/dash"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

type quantileOpts struct {
	columns     []string
	sum         bool
	buckets     int
	ignoreZeros bool
	delimiter   string
}

func newQuantilesCmd() *cobra.Command {
	opts := quantileOpts{
		buckets: bars.DefaultBuckets,
	}
	cmd := &cobra.Command{
		Use:   "quantiles [file]",
		Short: "Print the quantile table of CSV columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuantiles(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}
	cmd.Flags().StringSliceVarP(&opts.columns, "column", "c", nil, "columns giving the values")
	cmd.Flags().BoolVar(&opts.sum, "sum", false, "use the sum of the columns of each row")
	cmd.Flags().IntVarP(&opts.buckets, "buckets", "b", opts.buckets, "number of buckets")
	cmd.Flags().BoolVar(&opts.ignoreZeros, "ignore-zeros", false, "compute the table without the zero values")
	cmd.Flags().StringVarP(&opts.delimiter, "delimiter", "d", dash.DefaultDelim, "field delimiter")
	cmd.MarkFlagRequired("column")
	return cmd
}

func runQuantiles(ctx context.Context, w io.Writer, file string, opts quantileOpts) error {
	src := dash.DataSource{
		Path:      file,
		Delimiter: opts.delimiter,
	}
	if strings.Contains(file, "://") {
		src = dash.DataSource{URL: file, Delimiter: opts.delimiter}
	}
	records, err := src.Records(ctx)
	if err != nil {
		return err
	}
	sel := dash.SelectMulti(opts.columns...)
	if opts.sum {
		sel = dash.SelectSum(opts.columns...)
	}
	values, err := dash.Values(records, sel)
	if err != nil {
		return err
	}
	cfg := bars.QuantileConfig{
		Buckets:     opts.buckets,
		IgnoreZeros: opts.ignoreZeros,
	}
	table := bars.ComputeQuantiles(values, cfg)
	loggerFromContext(ctx).Debug("quantiles computed", "values", len(values), "bounds", len(table))

	format := bars.LocaleFormat(language.English)
	for i, v := range table {
		fmt.Fprintf(w, "%d\t%s\n", i, format(v, 2))
	}
	return nil
}
