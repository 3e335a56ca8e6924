// Package domain provides the core measurement model and the store contract.
// It has no infrastructure dependencies.
package domain

import (
	"fmt"
	"time"
)

// Measurement is a single recorded value. Only the calendar day of Date is
// meaningful to charting.
type Measurement struct {
	ID    string    `json:"id"`
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// SortOrder controls the ordering of query results by date
type SortOrder string

const (
	SortDateDescending SortOrder = "date_desc"
	SortDateAscending  SortOrder = "date_asc"
)

// DateFilter is a conjunctive range predicate over a named date field:
// Field >= From AND Field < To.
type DateFilter struct {
	Field string    `json:"field"`
	From  time.Time `json:"from"` // inclusive
	To    time.Time `json:"to"`   // exclusive
}

// Matches reports whether t satisfies the predicate.
func (f DateFilter) Matches(t time.Time) bool {
	return !t.Before(f.From) && t.Before(f.To)
}

// String renders the predicate for logs
func (f DateFilter) String() string {
	return fmt.Sprintf("%s >= %s AND %s < %s",
		f.Field, f.From.Format(time.RFC3339), f.Field, f.To.Format(time.RFC3339))
}
