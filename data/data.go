package data

import (
	"sort"

	"github.com/spread-lab/prefspread/common"
)

// Reset loaded data to blank state
func (b *Base) Reset() {
	b.latest = nil
	b.offset = 0
	b.stream = nil
}

// GetStream will return the entire data list
func (b *Base) GetStream() []common.DataEventHandler {
	return b.stream
}

// Offset returns the current iteration of the backtest
func (b *Base) Offset() int64 {
	return b.offset
}

// SetStream sets the data stream
func (b *Base) SetStream(s []common.DataEventHandler) {
	b.stream = s
}

// AppendStream appends new datas onto the stream
func (b *Base) AppendStream(s ...common.DataEventHandler) {
	for i := range s {
		if s[i] == nil {
			continue
		}
		b.stream = append(b.stream, s[i])
	}
}

// Next will return the next event in the list and also shift the offset one
func (b *Base) Next() (common.DataEventHandler, bool) {
	if int64(len(b.stream)) <= b.offset {
		return nil, false
	}

	ret := b.stream[b.offset]
	b.offset++
	b.latest = ret
	return ret, true
}

// History will return all previous data events that have happened
func (b *Base) History() []common.DataEventHandler {
	return b.stream[:b.offset]
}

// Latest will return latest data event
func (b *Base) Latest() common.DataEventHandler {
	return b.latest
}

// List returns all future data events from the current iteration
// ill-advised to use this in strategies because you don't know the future in real life
func (b *Base) List() []common.DataEventHandler {
	return b.stream[b.offset:]
}

// SortStream sorts the stream by timestamp
func (b *Base) SortStream() {
	sort.Slice(b.stream, func(i, j int) bool {
		return b.stream[i].GetTime().Before(b.stream[j].GetTime())
	})
}
