package search

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-almanac/pkg/almanac"
	"github.com/askiada/go-almanac/pkg/search/model"
)

// cancellation is checked every checkEvery seeds inside a batch.
const checkEvery = 1 << 16

// Engine searches the lowest location reachable from a set of seeds.
type Engine struct {
	alm       *almanac.Almanac
	order     []almanac.Stage
	opts      []model.SearchOption
	workers   int
	batchSize int64
}

// New creates an engine over alm.
func New(alm *almanac.Almanac, opts ...Option) (*Engine, error) {
	if alm == nil {
		return nil, ErrAlmanacMustBeSet
	}

	eng := &Engine{
		alm:       alm,
		order:     almanac.CanonicalOrder(),
		workers:   DefaultWorkers,
		batchSize: DefaultBatchSize,
	}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.workers <= 0 {
		return nil, errors.Wrapf(ErrInvalidWorkers, "got %d", eng.workers)
	}

	if eng.batchSize <= 0 {
		return nil, errors.Wrapf(ErrInvalidBatchSize, "got %d", eng.batchSize)
	}

	if len(eng.order) == 0 {
		return nil, almanac.ErrEmptyStageOrder
	}

	return eng, nil
}

// LowestInSeeds evaluates every seed and returns the one with the lowest location.
// The seeds are statically split between the workers.
func (e *Engine) LowestInSeeds(ctx context.Context, seeds ...int64) (Result, error) {
	if len(seeds) == 0 {
		return Result{}, ErrNoSeeds
	}

	chunkSize := int64(len(seeds)) / int64(e.workers)
	if int64(len(seeds))%int64(e.workers) != 0 {
		chunkSize++
	}

	planner, err := Plan([]SeedRange{{Start: 0, End: int64(len(seeds)) - 1}}, chunkSize)
	if err != nil {
		return Result{}, err
	}

	return e.run(ctx, model.SeedsMode, planner, func(pos int64) int64 {
		return seeds[pos]
	})
}

// LowestInRanges evaluates every seed of ranges and returns the one with the lowest location.
func (e *Engine) LowestInRanges(ctx context.Context, ranges ...SeedRange) (Result, error) {
	if len(ranges) == 0 {
		return Result{}, ErrNoSeeds
	}

	planner, err := Plan(ranges, e.batchSize)
	if err != nil {
		return Result{}, err
	}

	return e.run(ctx, model.RangesMode, planner, func(seed int64) int64 {
		return seed
	})
}

type batchResult struct {
	result  Result
	batch   WorkBatch
	worker  int
	elapsed time.Duration
}

func (e *Engine) newSearchInfo(mode model.Mode, planner *Planner) *model.SearchInfo {
	info := &model.SearchInfo{
		StartTime:    time.Now(),
		ID:           uuid.NewString(),
		Mode:         mode,
		Stages:       make([]string, len(e.order)),
		Workers:      e.workers,
		BatchSize:    planner.batchSize,
		TotalBatches: planner.Total(),
		TotalSeeds:   planner.Seeds(),
	}

	for i, stage := range e.order {
		info.Stages[i] = stage.String()
	}

	counts := planner.RangeBatches()
	for i, seedRange := range planner.ranges {
		info.Ranges = append(info.Ranges, model.RangeInfo{Start: seedRange.Start, End: seedRange.End, Batches: counts[i]})
	}

	return info
}

func (e *Engine) run(ctx context.Context, mode model.Mode, planner *Planner, seedAt func(int64) int64) (Result, error) {
	info := e.newSearchInfo(mode, planner)

	for _, opt := range e.opts {
		err := opt.New(info)
		if err != nil {
			return Result{}, errors.Wrap(err, "unable to initialise search option")
		}
	}

	errGrp, dCtx := errgroup.WithContext(ctx)

	// batches are cheap descriptors, a small buffer is enough to keep every worker busy
	batches := make(chan WorkBatch, e.workers)
	results := make(chan batchResult, e.workers)

	// channels are only closed on success, on failure the cancelled context stops the other goroutines so the
	// first error is the one reported
	errGrp.Go(func() error {
		err := e.dispatch(dCtx, info, planner, batches)
		if err != nil {
			return err
		}

		close(batches)

		return nil
	})

	errGrp.Go(func() error {
		err := e.runWorkers(dCtx, batches, results, seedAt)
		if err != nil {
			return err
		}

		close(results)

		return nil
	})

	var best batchResult

	errGrp.Go(func() error {
		var err error

		best, err = e.collect(dCtx, info, results)

		return err
	})

	err := errGrp.Wait()
	if err != nil {
		return Result{}, err
	}

	bestInfo := toResultInfo(best, info.TotalBatches)
	for _, opt := range e.opts {
		err := opt.Finish(info, bestInfo)
		if err != nil {
			return Result{}, errors.Wrap(err, "unable to finish search option")
		}
	}

	return best.result, nil
}

func (e *Engine) dispatch(ctx context.Context, info *model.SearchInfo, planner *Planner, batches chan<- WorkBatch) error {
	for {
		batch, ok := planner.Next()
		if !ok {
			return nil
		}

		for _, opt := range e.opts {
			err := opt.OnDispatch(info, toBatchInfo(batch))
			if err != nil {
				return errors.Wrapf(err, "unable to run dispatch option for batch %d", batch.Index)
			}
		}

		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "dispatcher")
		case batches <- batch:
		}
	}
}

// runWorkers starts the workers and waits for them. Each worker stops as soon as an error happens.
func (e *Engine) runWorkers(ctx context.Context, batches <-chan WorkBatch, results chan<- batchResult, seedAt func(int64) int64) error {
	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(e.workers)

	for workerIdx := 0; workerIdx < e.workers; workerIdx++ {
		localWorkerIdx := workerIdx

		errGrp.Go(func() error {
			return e.work(dCtx, localWorkerIdx, batches, results, seedAt)
		})
	}

	return errGrp.Wait()
}

func (e *Engine) work(ctx context.Context, workerIdx int, batches <-chan WorkBatch, results chan<- batchResult, seedAt func(int64) int64) error {
	// every worker resolves its own read-only snapshot of the tables
	chain, err := e.alm.Chain(e.order)
	if err != nil {
		return errors.Wrapf(err, "worker %d", workerIdx)
	}

outer:
	for {
		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "worker %d", workerIdx)
		case batch, ok := <-batches:
			if !ok {
				break outer
			}

			start := time.Now()

			res, err := lowestInBatch(ctx, chain, batch, seedAt)
			if err != nil {
				return errors.Wrapf(err, "worker %d: batch %d", workerIdx, batch.Index)
			}

			select {
			case <-ctx.Done():
				return errors.Wrapf(ctx.Err(), "worker %d", workerIdx)
			case results <- batchResult{result: res, batch: batch, worker: workerIdx, elapsed: time.Since(start)}:
			}
		}
	}

	return nil
}

func lowestInBatch(ctx context.Context, chain almanac.Chain, batch WorkBatch, seedAt func(int64) int64) (Result, error) {
	best := Result{}

	for pos, count := batch.Start, int64(0); ; pos, count = pos+1, count+1 {
		if count%checkEvery == checkEvery-1 && ctx.Err() != nil {
			return Result{}, ctx.Err()
		}

		seed := seedAt(pos)
		res := Result{Seed: seed, Location: chain.Translate(seed)}

		if count == 0 || res.Less(best) {
			best = res
		}

		// stop before incrementing, End may be the largest int64
		if pos == batch.End {
			return best, nil
		}
	}
}

func (e *Engine) collect(ctx context.Context, info *model.SearchInfo, results <-chan batchResult) (batchResult, error) {
	var (
		best batchResult
		done int64
	)

outer:
	for {
		select {
		case <-ctx.Done():
			return batchResult{}, errors.Wrap(ctx.Err(), "collector")
		case res, ok := <-results:
			if !ok {
				break outer
			}

			done++
			if done == 1 || res.result.Less(best.result) {
				best = res
			}

			for _, opt := range e.opts {
				err := opt.OnResult(info, toResultInfo(res, done))
				if err != nil {
					return batchResult{}, errors.Wrapf(err, "unable to run result option for batch %d", res.batch.Index)
				}
			}
		}
	}

	if done != info.TotalBatches {
		return batchResult{}, errors.Wrapf(ErrIncompleteSearch, "received %d of %d results", done, info.TotalBatches)
	}

	return best, nil
}

func toBatchInfo(batch WorkBatch) model.BatchInfo {
	return model.BatchInfo{Index: batch.Index, Start: batch.Start, End: batch.End}
}

func toResultInfo(res batchResult, done int64) model.ResultInfo {
	return model.ResultInfo{
		Batch:    toBatchInfo(res.batch),
		Worker:   res.worker,
		Seed:     res.result.Seed,
		Location: res.result.Location,
		Elapsed:  res.elapsed,
		Done:     done,
	}
}
