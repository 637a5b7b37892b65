// Package normalize converts raw extracted strings into canonical forms:
// calendar dates, flattened lists, slugs and the natural keys that make
// repeated crawls idempotent.
//
// Every function in this package is pure and safe for concurrent use.
package normalize
