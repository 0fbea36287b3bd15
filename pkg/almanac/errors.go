package almanac

import "github.com/pkg/errors"

var (
	ErrInvalidRangeRule    = errors.New("invalid range rule")
	ErrSameStage           = errors.New("stage table must connect two different stages")
	ErrDuplicateStageTable = errors.New("duplicate stage table")
	ErrMissingStageTable   = errors.New("missing stage table")
	ErrEmptyStageOrder     = errors.New("stage order must contain at least one stage")
)
