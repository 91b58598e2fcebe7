package series

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/spread-lab/prefspread/common"
	"github.com/spread-lab/prefspread/log"
)

// ParseAlignMethod converts a config string into an AlignMethod
func ParseAlignMethod(method string) (AlignMethod, error) {
	switch AlignMethod(method) {
	case AlignDrop:
		return AlignDrop, nil
	case AlignForwardFill:
		return AlignForwardFill, nil
	default:
		return "", fmt.Errorf("%w: %q", errUnknownAlignMethod, method)
	}
}

// Validate checks the series is usable by the rest of the pipeline,
// timestamps strictly increasing and every price finite
func (s *PriceSeries) Validate() error {
	if s == nil {
		return errNilSeries
	}
	if len(s.Observations) == 0 {
		return common.NewDataError(time.Time{}, time.Time{},
			fmt.Errorf("%w: %v", errNoObservations, s.Instrument))
	}
	for i := range s.Observations {
		if !isFinite(s.Observations[i].Price) {
			return common.NewDataError(s.Observations[0].Time, s.Observations[i].Time,
				fmt.Errorf("%w: %v at %v", errNonFinitePrice, s.Instrument, s.Observations[i].Time))
		}
		if i == 0 {
			continue
		}
		if !s.Observations[i].Time.After(s.Observations[i-1].Time) {
			return common.NewDataError(s.Observations[i-1].Time, s.Observations[i].Time,
				fmt.Errorf("%w: %v", errUnsortedTimestamps, s.Instrument))
		}
	}
	return nil
}

// Start returns the time of the first observation
func (s *PriceSeries) Start() time.Time {
	if len(s.Observations) == 0 {
		return time.Time{}
	}
	return s.Observations[0].Time
}

// End returns the time of the last observation
func (s *PriceSeries) End() time.Time {
	if len(s.Observations) == 0 {
		return time.Time{}
	}
	return s.Observations[len(s.Observations)-1].Time
}

// Align merges two or more price series into a frame on a shared timeline.
// AlignDrop keeps the timestamp intersection, AlignForwardFill carries
// prices forward over gaps once every series has started. The result must
// hold at least minRows rows
func Align(list []*PriceSeries, method AlignMethod, minRows int) (*Frame, error) {
	if len(list) < 2 {
		return nil, common.NewConfigError("instruments", errNotEnoughSeries)
	}
	for i := range list {
		if err := list[i].Validate(); err != nil {
			return nil, err
		}
	}

	var f *Frame
	var err error
	switch method {
	case AlignDrop:
		f, err = alignDrop(list)
	case AlignForwardFill:
		f, err = alignForwardFill(list)
	default:
		return nil, common.NewConfigError("align-method",
			fmt.Errorf("%w: %q", errUnknownAlignMethod, method))
	}
	if err != nil {
		return nil, err
	}

	if f.Rows() < minRows {
		return nil, common.NewDataError(overlapStart(list), overlapEnd(list),
			fmt.Errorf("%w: %v rows aligned, %v required", errBelowMinimumRows, f.Rows(), minRows))
	}
	log.Debugf(log.DataMgr, "aligned %v instruments over %v rows via %v",
		len(f.Instruments), f.Rows(), method)
	return f, nil
}

func alignDrop(list []*PriceSeries) (*Frame, error) {
	lookups := make([]map[int64]float64, len(list))
	for i := 1; i < len(list); i++ {
		m := make(map[int64]float64, len(list[i].Observations))
		for j := range list[i].Observations {
			m[list[i].Observations[j].Time.UnixNano()] = list[i].Observations[j].Price
		}
		lookups[i] = m
	}

	f := newFrame(list)
	for i := range list[0].Observations {
		t := list[0].Observations[i].Time
		row := make([]float64, len(list))
		row[0] = list[0].Observations[i].Price
		shared := true
		for j := 1; j < len(list); j++ {
			p, ok := lookups[j][t.UnixNano()]
			if !ok {
				shared = false
				break
			}
			row[j] = p
		}
		if !shared {
			continue
		}
		f.Times = append(f.Times, t)
		f.Prices = append(f.Prices, row)
	}

	if f.Rows() == 0 {
		return nil, common.NewDataError(overlapStart(list), overlapEnd(list), errNoOverlap)
	}
	return f, nil
}

func alignForwardFill(list []*PriceSeries) (*Frame, error) {
	timeline := mergedTimeline(list)
	start := overlapStart(list)

	f := newFrame(list)
	cursors := make([]int, len(list))
	last := make([]float64, len(list))
	for _, t := range timeline {
		for j := range list {
			obs := list[j].Observations
			for cursors[j] < len(obs) && !obs[cursors[j]].Time.After(t) {
				last[j] = obs[cursors[j]].Price
				cursors[j]++
			}
		}
		if t.Before(start) {
			continue
		}
		row := make([]float64, len(list))
		copy(row, last)
		f.Times = append(f.Times, t)
		f.Prices = append(f.Prices, row)
	}

	if f.Rows() == 0 {
		return nil, common.NewDataError(overlapStart(list), overlapEnd(list), errNoOverlap)
	}
	return f, nil
}

func newFrame(list []*PriceSeries) *Frame {
	instruments := make([]string, len(list))
	for i := range list {
		instruments[i] = list[i].Instrument
	}
	return &Frame{Instruments: instruments}
}

// mergedTimeline returns the sorted union of every observation time
func mergedTimeline(list []*PriceSeries) []time.Time {
	seen := make(map[int64]time.Time)
	for i := range list {
		for j := range list[i].Observations {
			t := list[i].Observations[j].Time
			seen[t.UnixNano()] = t
		}
	}
	keys := make([]int64, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool { return keys[a] < keys[b] })
	timeline := make([]time.Time, len(keys))
	for i := range keys {
		timeline[i] = seen[keys[i]]
	}
	return timeline
}

// overlapStart is the latest first-observation across the series
func overlapStart(list []*PriceSeries) time.Time {
	var start time.Time
	for i := range list {
		if s := list[i].Start(); s.After(start) {
			start = s
		}
	}
	return start
}

// overlapEnd is the earliest last-observation across the series
func overlapEnd(list []*PriceSeries) time.Time {
	var end time.Time
	for i := range list {
		e := list[i].End()
		if end.IsZero() || e.Before(end) {
			end = e
		}
	}
	return end
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
