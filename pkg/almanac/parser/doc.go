// Package parser reads the almanac text format.
//
// The first non blank line lists the seeds:
//
//	seeds: 79 14 55 13
//
// It is followed by blank line separated sections, each one made of a header naming the two stages and one
// "destination source length" line per rule:
//
//	seed-to-soil map:
//	50 98 2
//	52 50 48
package parser
