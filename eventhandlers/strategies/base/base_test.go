package base

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spread-lab/prefspread/common"
	"github.com/spread-lab/prefspread/data"
	"github.com/spread-lab/prefspread/eventtypes/bar"
	"github.com/spread-lab/prefspread/eventtypes/event"
)

type testHandler struct {
	data.Base
}

func (h *testHandler) Load() error { return nil }

func (h *testHandler) StreamSpread() []float64 { return nil }

func TestGetBaseData(t *testing.T) {
	t.Parallel()
	s := &Strategy{}
	_, err := s.GetBaseData(nil)
	assert.ErrorIs(t, err, common.ErrNilArguments)

	h := &testHandler{}
	_, err = s.GetBaseData(h)
	assert.ErrorIs(t, err, common.ErrNilEvent)

	tt := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	h.SetStream([]common.DataEventHandler{&bar.Bar{
		Event: event.Event{Offset: 4, Time: tt, Basket: []string{"PFD-A", "PFD-B"}},
	}})
	_, ok := h.Next()
	require.True(t, ok)

	es, err := s.GetBaseData(h)
	require.NoError(t, err)
	assert.Equal(t, int64(4), es.GetOffset())
	assert.Equal(t, tt, es.GetTime())
	assert.Equal(t, []string{"PFD-A", "PFD-B"}, es.Instruments())
}
