package charts

import (
	"fmt"
	"strings"
	"time"

	"github.com/aristath/dailychart/internal/domain"
	"github.com/aristath/dailychart/internal/utils"
)

// DateRange is the resolved window for a chart request.
//
// QueryUpperBound is the exclusive bound used in Filter (the day after the
// requested end date). DisplayLastDate is the requested end date itself and is
// only used for labels.
type DateRange struct {
	Range           ChartRange        `json:"range"`
	Filter          domain.DateFilter `json:"filter"`
	FirstDate       time.Time         `json:"first_date"`
	QueryUpperBound time.Time         `json:"query_end"`
	DisplayLastDate time.Time         `json:"last_date"`
}

// Resolve computes the day window ending on referenceDate's calendar day.
//
// A zero referenceDate, or arithmetic that leaves the representable calendar,
// falls back to now() instead of failing.
func Resolve(referenceDate time.Time, rng ChartRange, field string, loc *time.Location, now func() time.Time) (DateRange, error) {
	days, err := rng.Days()
	if err != nil {
		return DateRange{}, err
	}
	if strings.TrimSpace(field) == "" {
		return DateRange{}, fmt.Errorf("%w: field name is empty", ErrInvalidField)
	}
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}

	fallback := func() time.Time { return utils.StartOfDay(now(), loc) }

	if referenceDate.IsZero() {
		referenceDate = now()
	}

	requestedDate := utils.StartOfDay(referenceDate, loc)
	if !representable(requestedDate) {
		requestedDate = fallback()
	}

	lastDate := requestedDate.AddDate(0, 0, 1)
	if !representable(lastDate) {
		lastDate = fallback()
	}

	firstDate := lastDate.AddDate(0, 0, -days)
	if !representable(firstDate) {
		firstDate = fallback()
	}

	return DateRange{
		Range: rng,
		Filter: domain.DateFilter{
			Field: field,
			From:  firstDate,
			To:    lastDate,
		},
		FirstDate:       firstDate,
		QueryUpperBound: lastDate,
		DisplayLastDate: requestedDate,
	}, nil
}

// representable keeps dates inside the range SQLite date functions and
// YYYY-MM-DD labels can round-trip.
func representable(t time.Time) bool {
	return t.Year() >= 1 && t.Year() <= 9999
}
