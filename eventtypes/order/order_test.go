package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/spread-lab/prefspread/direction"
)

func TestOrder(t *testing.T) {
	t.Parallel()
	o := &Order{}
	assert.True(t, o.IsOrder())

	o.SetID("1337")
	assert.Equal(t, "1337", o.GetID())

	o.SetDirection(direction.LongSpread)
	assert.Equal(t, direction.LongSpread, o.GetDirection())

	deltas := []decimal.Decimal{decimal.NewFromInt(40), decimal.NewFromInt(-80)}
	o.Deltas = deltas
	assert.Equal(t, deltas, o.GetDeltas())
}
