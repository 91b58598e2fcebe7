package statistics

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/spread-lab/prefspread/common"
	commonmath "github.com/spread-lab/prefspread/common/math"
	"github.com/spread-lab/prefspread/eventhandlers/portfolio/holdings"
	"github.com/spread-lab/prefspread/eventtypes/fill"
	"github.com/spread-lab/prefspread/eventtypes/order"
	"github.com/spread-lab/prefspread/eventtypes/signal"
	"github.com/spread-lab/prefspread/log"
)

// Reset zeroes all collected events and results, keeping the run settings
func (s *Statistic) Reset() {
	*s = Statistic{
		StrategyName:        s.StrategyName,
		StrategyDescription: s.StrategyDescription,
		StrategyNickname:    s.StrategyNickname,
		Notional:            s.Notional,
		RiskFreeRate:        s.RiskFreeRate,
		PeriodsPerYear:      s.PeriodsPerYear,
	}
}

// SetStrategyName sets the name for statistical identification
func (s *Statistic) SetStrategyName(name string) {
	s.StrategyName = name
}

// SetupEventForTime appends a collection slot for the data event's offset
func (s *Statistic) SetupEventForTime(e common.DataEventHandler) error {
	if e == nil {
		return common.ErrNilEvent
	}
	offset := e.GetOffset()
	if n := len(s.Events); n > 0 && s.Events[n-1].Offset >= offset {
		return fmt.Errorf("%w at offset %v", ErrAlreadyProcessed, offset)
	}
	s.Events = append(s.Events, DataAtOffset{
		Offset:    offset,
		Time:      e.GetTime(),
		DataEvent: e,
	})
	return nil
}

// SetEventForOffset stores the event in the slot matching its offset
func (s *Statistic) SetEventForOffset(e common.EventHandler) error {
	if e == nil {
		return common.ErrNilEvent
	}
	if len(s.Events) == 0 {
		return errReceivedNoData
	}
	offset := e.GetOffset()
	for i := len(s.Events) - 1; i >= 0; i-- {
		if s.Events[i].Offset == offset {
			return s.applyEventAtOffset(e, i)
		}
	}
	return fmt.Errorf("%w %v", errNoDataAtOffset, offset)
}

func (s *Statistic) applyEventAtOffset(e common.EventHandler, i int) error {
	switch t := e.(type) {
	case common.DataEventHandler:
		s.Events[i].DataEvent = t
	case signal.Event:
		s.Events[i].SignalEvent = t
	case order.Event:
		s.Events[i].OrderEvent = t
	case fill.Event:
		s.Events[i].FillEvent = t
	default:
		return fmt.Errorf("%w: %T", common.ErrInvalidDataType, e)
	}
	return nil
}

// AddHoldingsForTime stores the holdings snapshot in the slot matching its
// offset, replacing any earlier snapshot for the same period
func (s *Statistic) AddHoldingsForTime(h *holdings.Holding) error {
	if h == nil {
		return common.ErrNilArguments
	}
	if len(s.Events) == 0 {
		return errReceivedNoData
	}
	for i := len(s.Events) - 1; i >= 0; i-- {
		if s.Events[i].Offset == h.Offset {
			s.Events[i].Holdings = *h
			return nil
		}
	}
	return fmt.Errorf("%w %v", errNoDataAtOffset, h.Offset)
}

// CalculateAllResults reduces the collected events into the performance
// summary and logs it
func (s *Statistic) CalculateAllResults() error {
	if len(s.Events) == 0 {
		return errReceivedNoData
	}
	s.StartDate = s.Events[0].Time
	s.EndDate = s.Events[len(s.Events)-1].Time
	s.Results = Results{TotalEvents: int64(len(s.Events))}

	curve := make([]EquityPoint, len(s.Events))
	prevEquity := s.Notional
	var periodWins, periodLosses int64
	for i := range s.Events {
		h := s.Events[i].Holdings
		point := EquityPoint{
			Offset:    s.Events[i].Offset,
			Timestamp: s.Events[i].Time,
			Equity:    prevEquity,
		}
		if !h.Timestamp.IsZero() {
			point.Equity = h.Equity
			point.PeriodPNL = h.PeriodPNL
		}
		prevEquity = point.Equity
		curve[i] = point

		if se := s.Events[i].SignalEvent; se != nil {
			s.Results.Signals = append(s.Results.Signals, SignalPoint{
				Timestamp:  se.GetTime(),
				Direction:  se.GetDirection(),
				ZScore:     se.GetZScore(),
				Degenerate: se.IsDegenerate(),
			})
			if se.IsDegenerate() {
				s.Results.DegenerateWindows++
			}
		}
		if point.PeriodPNL.IsPositive() {
			periodWins++
		} else if point.PeriodPNL.IsNegative() {
			periodLosses++
		}
	}
	s.Results.EquityCurve = curve
	s.Results.MaxDrawdown = calculateMaxDrawdown(curve)
	if decided := periodWins + periodLosses; decided > 0 {
		s.Results.PeriodWinRate = float64(periodWins) / float64(decided)
	}

	var last holdings.Holding
	for i := len(s.Events) - 1; i >= 0; i-- {
		if !s.Events[i].Holdings.Timestamp.IsZero() {
			last = s.Events[i].Holdings
			break
		}
	}
	s.Results.TotalPNL = last.TotalPNL
	s.Results.TotalFees = last.TotalFees
	s.Results.TotalTradedValue = last.TradedValue
	s.Results.TotalTransactions = last.Transactions

	notional, _ := s.Notional.Float64()
	finalEquity, _ := last.Equity.Float64()
	if notional > 0 && !last.Timestamp.IsZero() {
		s.Results.TotalReturnPercent = commonmath.CalculatePercentageGainOrLoss(finalEquity, notional)
	}

	s.calculateRatios(curve, notional, finalEquity)
	s.calculateRoundTrips()
	s.calculateTurnover()
	s.PrintResults()
	return nil
}

// calculateRatios computes the annualized risk adjusted performance ratios
// from the float representation of the per period returns
func (s *Statistic) calculateRatios(curve []EquityPoint, notional, finalEquity float64) {
	if len(curve) < 2 || notional <= 0 || s.PeriodsPerYear <= 0 {
		return
	}
	// the first period is the baseline and carries no movement
	returns := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		pnl, _ := curve[i].PeriodPNL.Float64()
		returns = append(returns, pnl/notional)
	}
	riskFreePerPeriod := s.RiskFreeRate / s.PeriodsPerYear
	average := commonmath.ArithmeticAverage(returns)
	annualize := math.Sqrt(s.PeriodsPerYear)

	s.Results.SharpeRatio = commonmath.CalculateSharpeRatio(returns, riskFreePerPeriod, average) * annualize
	s.Results.SortinoRatio = commonmath.CalculateSortinoRatio(returns, riskFreePerPeriod, average) * annualize

	high, _ := s.Results.MaxDrawdown.Highest.Value.Float64()
	low, _ := s.Results.MaxDrawdown.Lowest.Value.Float64()
	s.Results.CalmarRatio = commonmath.CalculateCalmarRatio(high, low, average*s.PeriodsPerYear)

	if finalEquity > 0 {
		s.Results.CompoundAnnualGrowthRate = commonmath.CalculateCompoundAnnualGrowthRate(
			notional,
			finalEquity,
			s.PeriodsPerYear,
			float64(len(curve)-1))
	}
}

// calculateRoundTrips walks the holdings ledger counting every open to
// flat cycle and whether it finished ahead of its pre entry baseline
func (s *Statistic) calculateRoundTrips() {
	var trips, tripWins int64
	baseline := decimal.Zero
	invested := false
	var lastPNL decimal.Decimal
	for i := range s.Events {
		h := s.Events[i].Holdings
		if h.Timestamp.IsZero() {
			continue
		}
		if invested && !h.IsInvested() {
			trips++
			if h.TotalPNL.GreaterThan(baseline) {
				tripWins++
			}
		}
		invested = h.IsInvested()
		if !invested {
			baseline = h.TotalPNL
		}
		lastPNL = h.TotalPNL
	}
	if invested {
		// series ended with the position still open, settle against the
		// final marked value
		trips++
		if lastPNL.GreaterThan(baseline) {
			tripWins++
		}
	}
	s.Results.RoundTrips = trips
	if trips > 0 {
		s.Results.TradeWinRate = float64(tripWins) / float64(trips)
	}
}

// calculateTurnover divides total traded value by the average gross
// exposure across the periods a position was held
func (s *Statistic) calculateTurnover() {
	grossSum := decimal.Zero
	var investedPeriods int64
	for i := range s.Events {
		h := s.Events[i].Holdings
		if h.Timestamp.IsZero() || !h.IsInvested() {
			continue
		}
		grossSum = grossSum.Add(h.GrossExposure)
		investedPeriods++
	}
	if investedPeriods == 0 || grossSum.IsZero() {
		return
	}
	avgGross := grossSum.Div(decimal.NewFromInt(investedPeriods))
	turnover, _ := s.Results.TotalTradedValue.Div(avgGross).Float64()
	s.Results.Turnover = turnover
}

func calculateMaxDrawdown(curve []EquityPoint) Swing {
	if len(curve) == 0 {
		return Swing{}
	}
	peak := ValueAtTime{Time: curve[0].Timestamp, Value: curve[0].Equity, Set: true}
	trough := peak
	maxDrawdown := Swing{Highest: peak, Lowest: peak}
	worst := decimal.Zero
	for i := 1; i < len(curve); i++ {
		if curve[i].Equity.GreaterThan(peak.Value) {
			peak = ValueAtTime{Time: curve[i].Timestamp, Value: curve[i].Equity, Set: true}
			trough = peak
			continue
		}
		if curve[i].Equity.LessThan(trough.Value) {
			trough = ValueAtTime{Time: curve[i].Timestamp, Value: curve[i].Equity, Set: true}
			if !peak.Value.IsPositive() {
				continue
			}
			// drawdowns are negative
			dd := trough.Value.Sub(peak.Value).Div(peak.Value).Mul(decimal.NewFromInt(100))
			if dd.LessThan(worst) {
				worst = dd
				maxDrawdown = Swing{Highest: peak, Lowest: trough, DrawdownPercent: dd}
			}
		}
	}
	return maxDrawdown
}

// PrintResults outputs the performance summary to the command line
func (s *Statistic) PrintResults() {
	log.Info(log.Statistics, "------------------Strategy-----------------------------------")
	log.Infof(log.Statistics, "Strategy Name: %v", s.StrategyName)
	if s.StrategyNickname != "" {
		log.Infof(log.Statistics, "Strategy Nickname: %v", s.StrategyNickname)
	}
	log.Infof(log.Statistics, "Start date: %v", s.StartDate.Format("2006-01-02"))
	log.Infof(log.Statistics, "End date: %v", s.EndDate.Format("2006-01-02"))
	log.Info(log.Statistics, "------------------Events-------------------------------------")
	log.Infof(log.Statistics, "Total events: %v", s.Results.TotalEvents)
	log.Infof(log.Statistics, "Total transactions: %v", s.Results.TotalTransactions)
	log.Infof(log.Statistics, "Round trips: %v", s.Results.RoundTrips)
	log.Infof(log.Statistics, "Degenerate windows: %v", s.Results.DegenerateWindows)
	log.Info(log.Statistics, "------------------Max Drawdown-------------------------------")
	log.Infof(log.Statistics, "Highest equity of drawdown: %v at %v",
		s.Results.MaxDrawdown.Highest.Value.Round(8), s.Results.MaxDrawdown.Highest.Time.Format("2006-01-02"))
	log.Infof(log.Statistics, "Lowest equity of drawdown: %v at %v",
		s.Results.MaxDrawdown.Lowest.Value.Round(8), s.Results.MaxDrawdown.Lowest.Time.Format("2006-01-02"))
	log.Infof(log.Statistics, "Calculated drawdown: %v%%", s.Results.MaxDrawdown.DrawdownPercent.Round(2))
	log.Info(log.Statistics, "------------------Ratios-------------------------------------")
	log.Infof(log.Statistics, "Sharpe ratio: %.4f", s.Results.SharpeRatio)
	log.Infof(log.Statistics, "Sortino ratio: %.4f", s.Results.SortinoRatio)
	log.Infof(log.Statistics, "Calmar ratio: %.4f", s.Results.CalmarRatio)
	log.Infof(log.Statistics, "Compound Annual Growth Rate: %.4f", s.Results.CompoundAnnualGrowthRate)
	log.Info(log.Statistics, "------------------Results------------------------------------")
	log.Infof(log.Statistics, "Total P&L: %v", s.Results.TotalPNL.Round(8))
	log.Infof(log.Statistics, "Total return: %.4f%%", s.Results.TotalReturnPercent)
	log.Infof(log.Statistics, "Period win rate: %.4f", s.Results.PeriodWinRate)
	log.Infof(log.Statistics, "Trade win rate: %.4f", s.Results.TradeWinRate)
	log.Infof(log.Statistics, "Turnover: %.4f", s.Results.Turnover)
	log.Infof(log.Statistics, "Total fees: %v", s.Results.TotalFees.Round(8))
	log.Infof(log.Statistics, "Total traded value: %v", s.Results.TotalTradedValue.Round(8))
}

// Serialise outputs the Statistic struct in json
func (s *Statistic) Serialise() (string, error) {
	resp, err := json.MarshalIndent(s, "", " ")
	if err != nil {
		return "", err
	}

	return string(resp), nil
}
