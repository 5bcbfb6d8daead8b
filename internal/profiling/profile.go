// Package profiling computes the descriptive summary of a dataset that
// accompanies every report, so a reader can judge the battery's
// verdicts against the shape of the input.
package profiling

import (
	"github.com/montanaflynn/stats"

	"randeval/domain/battery"
)

// Profile summarizes the input sequence
type Profile struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
}

// Describe computes the descriptive profile of a dataset. The dataset
// constructor already rejected empty and non-finite input, so the
// individual computations cannot fail; errors are ignored the way the
// rest of the codebase treats montanaflynn on validated data.
func Describe(ds battery.Dataset) Profile {
	data := stats.Float64Data(ds.Values())

	mean, _ := stats.Mean(data)
	stdDev, _ := stats.StandardDeviation(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	median, _ := stats.Median(data)
	q25, _ := stats.Percentile(data, 25)
	q75, _ := stats.Percentile(data, 75)

	return Profile{
		N:      ds.Len(),
		Mean:   mean,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
		Median: median,
		Q25:    q25,
		Q75:    q75,
	}
}
