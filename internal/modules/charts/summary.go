package charts

import (
	"fmt"

	"github.com/markcheno/go-talib"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a daily series
type Summary struct {
	DaysWithData int     `json:"days_with_data"`
	Mean         float64 `json:"mean"`           // over every day, empty days count as 0
	MeanWithData float64 `json:"mean_with_data"` // over days that received measurements
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
}

// Summarize computes summary statistics for a series
func Summarize(series *DailySeries) Summary {
	if series == nil || len(series.Values) == 0 {
		return Summary{}
	}

	withData := make([]float64, 0, len(series.Values))
	for i, v := range series.Values {
		if series.Counts[i] > 0 {
			withData = append(withData, v)
		}
	}

	s := Summary{
		DaysWithData: len(withData),
		Mean:         stat.Mean(series.Values, nil),
		Min:          floats.Min(series.Values),
		Max:          floats.Max(series.Values),
	}
	if len(withData) > 0 {
		s.MeanWithData = stat.Mean(withData, nil)
	}
	return s
}

// MovingAverage returns the simple moving average of values over window days.
// Entries before the first full window are nil.
func MovingAverage(values []float64, window int) ([]*float64, error) {
	if window < 2 || window > len(values) {
		return nil, fmt.Errorf("%w: %d (must be between 2 and %d)", ErrInvalidTrendWindow, window, len(values))
	}

	sma := talib.Sma(values, window)

	out := make([]*float64, len(values))
	for i := window - 1; i < len(sma); i++ {
		v := sma[i]
		out[i] = &v
	}
	return out, nil
}
