// Package backtest drives the event loop. Aligned bars stream in one at a
// time and the resulting signal, order and fill events are processed in
// strict queue order so every run over the same data produces the same
// result
package backtest

import (
	"fmt"

	"github.com/spread-lab/prefspread/common"
	"github.com/spread-lab/prefspread/eventhandlers/statistics"
	"github.com/spread-lab/prefspread/eventtypes/fill"
	"github.com/spread-lab/prefspread/eventtypes/order"
	"github.com/spread-lab/prefspread/eventtypes/signal"
	"github.com/spread-lab/prefspread/log"
)

// New returns a new BackTest instance
func New() *BackTest {
	return &BackTest{}
}

// Reset returns the backtest to a pre-run state, keeping the handlers and
// their settings so the same setup can be run again
func (t *BackTest) Reset() {
	t.eventQueue = nil
	t.data.Reset()
	t.portfolio.Reset()
	t.exchange.Reset()
	t.statistic.Reset()
}

// Stats returns the statistic handler
func (t *BackTest) Stats() statistics.Handler {
	return t.statistic
}

// Run processes all bar events of the loaded data and closes any position
// left standing at the end of the stream
func (t *BackTest) Run() error {
	if t.data == nil {
		return errNilData
	}
	log.Info(log.BackTester, "running backtest")
	for event, ok := t.nextEvent(); true; event, ok = t.nextEvent() {
		if !ok {
			data, ok := t.data.Next()
			if !ok {
				break
			}
			t.eventQueue = append(t.eventQueue, data)
			continue
		}

		err := t.eventLoop(event)
		if err != nil {
			return err
		}
	}

	return t.closePositionsOnExit()
}

func (t *BackTest) nextEvent() (e common.EventHandler, ok bool) {
	if len(t.eventQueue) == 0 {
		return e, false
	}

	e = t.eventQueue[0]
	t.eventQueue = t.eventQueue[1:]

	return e, true
}

func (t *BackTest) eventLoop(e common.EventHandler) error {
	switch ev := e.(type) {
	case common.DataEventHandler:
		return t.processDataEvent(ev)
	case signal.Event:
		return t.processSignalEvent(ev)
	case order.Event:
		return t.processOrderEvent(ev)
	case fill.Event:
		return t.processFillEvent(ev)
	default:
		return fmt.Errorf("%w: %T", common.ErrInvalidDataType, e)
	}
}

func (t *BackTest) processDataEvent(ev common.DataEventHandler) error {
	err := t.statistic.SetupEventForTime(ev)
	if err != nil {
		return err
	}
	err = t.portfolio.Update(ev)
	if err != nil {
		return err
	}
	h := t.portfolio.GetLatestHoldings()
	err = t.statistic.AddHoldingsForTime(&h)
	if err != nil {
		return err
	}

	s, err := t.strategy.OnSignal(t.data)
	if err != nil {
		return err
	}
	t.eventQueue = append(t.eventQueue, s)
	return nil
}

func (t *BackTest) processSignalEvent(ev signal.Event) error {
	err := t.statistic.SetEventForOffset(ev)
	if err != nil {
		return err
	}
	o, err := t.portfolio.OnSignal(ev, t.data)
	if err != nil {
		return err
	}
	// holdings already match the target, nothing to trade
	if o == nil {
		return nil
	}
	t.eventQueue = append(t.eventQueue, o)
	return t.statistic.SetEventForOffset(o)
}

func (t *BackTest) processOrderEvent(ev order.Event) error {
	f, err := t.exchange.ExecuteOrder(ev, t.data)
	if err != nil {
		return err
	}
	t.eventQueue = append(t.eventQueue, f)
	return nil
}

func (t *BackTest) processFillEvent(ev fill.Event) error {
	f, err := t.portfolio.OnFill(ev)
	if err != nil {
		return err
	}
	err = t.statistic.SetEventForOffset(f)
	if err != nil {
		return err
	}
	h := t.portfolio.GetLatestHoldings()
	return t.statistic.AddHoldingsForTime(&h)
}

// closePositionsOnExit unwinds whatever is still held against the final
// bar so the run always finishes flat and fully costed
func (t *BackTest) closePositionsOnExit() error {
	last := t.data.Latest()
	if last == nil {
		return nil
	}
	o, err := t.portfolio.CloseAllPositions(last)
	if err != nil {
		return err
	}
	if o == nil {
		return nil
	}
	log.Infof(log.BackTester, "closing remaining position at %v", last.GetTime().Format("2006-01-02"))
	f, err := t.exchange.ExecuteOrder(o, t.data)
	if err != nil {
		return err
	}
	return t.processFillEvent(f)
}
