// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the arxiv-digest cycle:
// catalog items, fetch requests, date windows, and configuration.
package types

import (
	"strings"
	"time"
)

// Item is a single catalog entry. Identity is ID alone: two items with the
// same ID are the same paper even if other fields differ between fetches.
type Item struct {
	// ID is the catalog's stable identifier (e.g. "2301.07041"), version suffix stripped.
	ID string `json:"id" yaml:"id"`

	// Title is the paper title with whitespace collapsed.
	Title string `json:"title" yaml:"title"`

	// Summary is the paper abstract.
	Summary string `json:"summary" yaml:"summary"`

	// Authors lists the paper authors in catalog order.
	Authors []string `json:"authors" yaml:"authors"`

	// URL links to the paper's abstract page.
	URL string `json:"url" yaml:"url"`

	// Published is the submission date reported by the catalog.
	Published time.Time `json:"published" yaml:"published"`

	// Categories lists subject classifications when the catalog provides them.
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`
}

// PublishedDate returns Published formatted as YYYY-MM-DD, or "" when unknown.
func (it Item) PublishedDate() string {
	if it.Published.IsZero() {
		return ""
	}
	return it.Published.UTC().Format(time.DateOnly)
}

// FetchRequest is the per-run input to the fetcher.
type FetchRequest struct {
	// Keyword is the free-text catalog query.
	Keyword string `json:"keyword" yaml:"keyword"`

	// TargetCount is the number of new items desired.
	TargetCount int `json:"target_count" yaml:"target_count"`
}

// HasKeyword reports whether the request carries a searchable keyword.
func (r FetchRequest) HasKeyword() bool {
	return strings.TrimSpace(r.Keyword) != ""
}

// DateRange is an inclusive time window used to scope one catalog query.
type DateRange struct {
	From time.Time `json:"from" yaml:"from"`
	To   time.Time `json:"to" yaml:"to"`
}

// DayWindow returns the window covering the UTC calendar day containing t,
// from 00:00 through 23:59.
func DayWindow(t time.Time) DateRange {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return DateRange{
		From: start,
		To:   start.Add(24*time.Hour - time.Minute),
	}
}

// String renders the window as "YYYY-MM-DD..YYYY-MM-DD".
func (d DateRange) String() string {
	return d.From.UTC().Format(time.DateOnly) + ".." + d.To.UTC().Format(time.DateOnly)
}
