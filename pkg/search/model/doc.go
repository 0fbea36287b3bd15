// Package model provides the data structures shared by the search engine and its options.
// It describes a search, the batches it dispatches and the results reported by its workers,
// and defines the contract every search option implements.
package model
