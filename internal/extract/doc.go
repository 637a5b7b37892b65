// Package extract holds the field extractors shared by the site builders.
//
// Extractors are pure functions over a parsed document. They never fail: a
// selector that matches nothing yields the zero value and the caller decides
// which fallback to try next.
package extract
