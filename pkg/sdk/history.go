package sdk

import (
	"net/url"
	"strconv"
	"time"
)

// Sample is one point of a measurement series.
type Sample struct {
	MeasureDate string  `json:"measure_date"`
	Value       float64 `json:"value"`
}

// HistoryQuery selects a window of readings for one variable.
type HistoryQuery struct {
	StationID    int64
	VariableCode string
	Start        time.Time
	End          time.Time
}

// Values encodes the query the way /measurements/data/history/ expects.
func (q HistoryQuery) Values() url.Values {
	v := url.Values{}
	if q.VariableCode != "" {
		v.Set("variable_code", q.VariableCode)
	}
	if !q.Start.IsZero() {
		v.Set("start_date", q.Start.UTC().Format(time.RFC3339))
	}
	if !q.End.IsZero() {
		v.Set("end_date", q.End.UTC().Format(time.RFC3339))
	}
	if q.StationID != 0 {
		v.Set("station_id", strconv.FormatInt(q.StationID, 10))
	}
	return v
}

// Samples extracts the readings of a history payload. Entries that are not
// objects or carry no numeric value are skipped.
func Samples(payload any) []Sample {
	items := NewPage(payload).Items
	samples := make([]Sample, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		r := Record(m)
		value, ok := r.Float("value")
		if !ok {
			continue
		}
		samples = append(samples, Sample{MeasureDate: r.String("measure_date"), Value: value})
	}
	return samples
}

// Downsample reduces samples to at most target points by averaging consecutive
// blocks of equal size. Each point takes the date of its block's middle sample.
// Trailing samples that do not fill a block are dropped.
func Downsample(samples []Sample, target int) []Sample {
	if target <= 0 || len(samples) <= target {
		return samples
	}

	blockSize := len(samples) / target
	out := make([]Sample, 0, target)
	for i := 0; i < target; i++ {
		chunk := samples[i*blockSize : (i+1)*blockSize]

		var sum float64
		for _, s := range chunk {
			sum += s.Value
		}
		out = append(out, Sample{
			MeasureDate: chunk[len(chunk)/2].MeasureDate,
			Value:       sum / float64(len(chunk)),
		})
	}
	return out
}
