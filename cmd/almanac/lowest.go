package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-almanac/internal/logging"
	"github.com/askiada/go-almanac/internal/metrics"
	"github.com/askiada/go-almanac/pkg/almanac/parser"
	"github.com/askiada/go-almanac/pkg/search"
	"github.com/askiada/go-almanac/pkg/search/drawer"
	"github.com/askiada/go-almanac/pkg/search/measure"
	"github.com/askiada/go-almanac/pkg/search/model"
)

type lowestFlags struct {
	ranges      bool
	workers     int
	batchSize   int64
	dotFile     string
	metricsAddr string
}

func newLowestCmd(root *rootFlags) *cobra.Command {
	flags := &lowestFlags{}

	cmd := &cobra.Command{
		Use:   "lowest FILE",
		Short: "Print the seed with the lowest location",
		Long: "Print the seed with the lowest location. By default the seeds line is a list of seeds, " +
			"with --ranges it is read as start and length pairs. Seeds go through every table from seed to location, " +
			"a missing table fails the search.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := root.logger(cmd)
			if err != nil {
				return err
			}

			res, err := runLowest(cmd.Context(), logger, flags, args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "seed %d location %d\n", res.Seed, res.Location)

			return err
		},
	}

	cmd.Flags().BoolVar(&flags.ranges, "ranges", false, "read seeds as start and length pairs")
	cmd.Flags().IntVar(&flags.workers, "workers", search.DefaultWorkers, "number of workers")
	cmd.Flags().Int64Var(&flags.batchSize, "batch-size", search.DefaultBatchSize, "seeds per batch in ranges mode")
	cmd.Flags().StringVar(&flags.dotFile, "dot", "", "write the search graph to this DOT file")
	cmd.Flags().StringVar(&flags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address during the search")

	return cmd
}

func runLowest(ctx context.Context, logger logging.Logger, flags *lowestFlags, path string) (search.Result, error) {
	input, err := parser.ParseFile(path)
	if err != nil {
		return search.Result{}, err
	}

	opts := []model.SearchOption{logging.SearchLogger(logger)}

	if flags.dotFile != "" {
		msr := measure.NewDefaultMeasure()
		opts = append(opts,
			measure.SearchMeasure(msr),
			drawer.SearchDrawer(drawer.NewDOTDrawer(flags.dotFile), input.Almanac, msr),
		)
	}

	var srv *metrics.Server

	if flags.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		opts = append(opts, metrics.NewPrometheus(reg, ""))

		srv, err = metrics.Listen(flags.metricsAddr, reg)
		if err != nil {
			return search.Result{}, err
		}

		logger.Info("serving metrics", "addr", srv.Addr())
	}

	engine, err := search.New(input.Almanac,
		search.Workers(flags.workers),
		search.BatchSize(flags.batchSize),
		search.WithSearchOptions(opts...),
	)
	if err != nil {
		return search.Result{}, err
	}

	lowest := func(ctx context.Context) (search.Result, error) {
		if !flags.ranges {
			return engine.LowestInSeeds(ctx, input.Seeds...)
		}

		ranges, err := parser.SeedRanges(input.Seeds)
		if err != nil {
			return search.Result{}, err
		}

		return engine.LowestInRanges(ctx, ranges...)
	}

	if srv == nil {
		return lowest(ctx)
	}

	var res search.Result

	g, gctx := errgroup.WithContext(ctx)
	serveCtx, stopServing := context.WithCancel(gctx)

	g.Go(func() error {
		return srv.Serve(serveCtx)
	})

	g.Go(func() error {
		defer stopServing()

		var err error
		res, err = lowest(gctx)

		return err
	})

	err = g.Wait()
	if err != nil {
		return search.Result{}, err
	}

	return res, nil
}
