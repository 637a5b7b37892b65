// Package crawler defines the types and interfaces shared by the crawl
// subsystems: fetching, scheduling, politeness and persistence.
package crawler
