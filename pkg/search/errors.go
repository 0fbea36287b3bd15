package search

import "github.com/pkg/errors"

var (
	ErrAlmanacMustBeSet = errors.New("almanac must be set")
	ErrInvalidBatchSize = errors.New("batch size must be greater than 0")
	ErrInvalidWorkers   = errors.New("workers must be greater than 0")
	ErrInvalidRange     = errors.New("range start must not be greater than its end")
	ErrNoSeeds          = errors.New("at least one seed is required")
	ErrIncompleteSearch = errors.New("search ended before every batch was collected")
)
