package model

// SearchOption defines the interface for search options.
//
// Each hook is always called from the same goroutine for a given search, but the dispatch hooks and the result
// hooks run concurrently with each other.
type SearchOption interface {
	// New runs before any batch is dispatched.
	New(search *SearchInfo) error
	// OnDispatch runs everytime a batch is pushed to the workers.
	OnDispatch(search *SearchInfo, batch BatchInfo) error
	// OnResult runs everytime the collector receives the result of a batch.
	OnResult(search *SearchInfo, result ResultInfo) error
	// Finish runs after the search is finished.
	Finish(search *SearchInfo, best ResultInfo) error
}
