package math

import (
	"math"
)

// CalculateBasisPointFee returns the cost of trading amount at a fee
// expressed in basis points
func CalculateBasisPointFee(amount, bps float64) float64 {
	return amount * (bps / 10000)
}

// CalculatePercentageGainOrLoss returns the percentage rise over a certain
// period
func CalculatePercentageGainOrLoss(valueNow, valueThen float64) float64 {
	return (valueNow - valueThen) / valueThen * 100
}

// RoundFloat rounds your floating point number to the desired decimal place
func RoundFloat(x float64, prec int) float64 {
	pow := math.Pow(10, float64(prec))
	return math.Round(x*pow) / pow
}

// Clamp restricts value to the inclusive range lo to hi
func Clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// CalculateCompoundAnnualGrowthRate Calculates CAGR.
// Using years, intervals per year would be 1 and number of intervals would be the number of years
// Using days, intervals per year would be 365 and number of intervals would be the number of days
func CalculateCompoundAnnualGrowthRate(openValue, closeValue, intervalsPerYear, numberOfIntervals float64) float64 {
	k := math.Pow(closeValue/openValue, intervalsPerYear/numberOfIntervals) - 1
	return k * 100
}

// CalculateCalmarRatio is a function of the average compounded annual rate of return versus its maximum drawdown.
// The higher the Calmar ratio, the better it performed on a risk-adjusted basis during the given time frame
func CalculateCalmarRatio(highestValue, lowestValue, average float64) float64 {
	if highestValue == 0 {
		return 0
	}
	drawdownDiff := (highestValue - lowestValue) / highestValue
	if drawdownDiff == 0 {
		return 0
	}
	return average / drawdownDiff
}

// ArithmeticAverage is the basic form of calculating an average.
// Divide the sum of all values by the length of values
func ArithmeticAverage(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sumOfValues float64
	for x := range values {
		sumOfValues += values[x]
	}
	return sumOfValues / float64(len(values))
}

// SampleStandardDeviation standard deviation is a statistic that
// measures the dispersion of a dataset relative to its mean and
// is calculated as the square root of the variance
func SampleStandardDeviation(vals []float64) float64 {
	if len(vals) <= 1 {
		return 0
	}
	mean := ArithmeticAverage(vals)
	var combined float64
	for i := range vals {
		combined += math.Pow(vals[i]-mean, 2)
	}
	return math.Sqrt(combined / (float64(len(vals)) - 1))
}

// FinancialGeometricAverage is a modified geometric average to assess
// the negative returns of investments. It adds +1 to each value so negative
// movements stay distinguishable from positive ones. It should only be
// compared to other financial geometric averages
func FinancialGeometricAverage(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	product := 1.0
	for i := range values {
		if values[i] <= -1 {
			// cannot lose more than 100%, figures are incorrect
			return 0
		}
		product *= values[i] + 1
	}
	return math.Pow(product, 1/float64(len(values))) - 1
}

// CalculateSortinoRatio returns sortino ratio of backtest compared to risk-free
func CalculateSortinoRatio(movementPerPeriod []float64, riskFreeRate, average float64) float64 {
	if len(movementPerPeriod) == 0 {
		return 0
	}
	totalNegativeResultsSquared := 0.0
	for x := range movementPerPeriod {
		if movementPerPeriod[x]-riskFreeRate < 0 {
			totalNegativeResultsSquared += math.Pow(movementPerPeriod[x]-riskFreeRate, 2)
		}
	}
	averageDownsideDeviation := math.Sqrt(totalNegativeResultsSquared / float64(len(movementPerPeriod)))
	if averageDownsideDeviation == 0 {
		return 0
	}
	return (average - riskFreeRate) / averageDownsideDeviation
}

// CalculateSharpeRatio returns sharpe ratio of backtest compared to risk-free
func CalculateSharpeRatio(movementPerPeriod []float64, riskFreeRate, average float64) float64 {
	if len(movementPerPeriod) <= 1 {
		return 0
	}
	excessReturns := make([]float64, len(movementPerPeriod))
	for i := range movementPerPeriod {
		excessReturns[i] = movementPerPeriod[i] - riskFreeRate
	}
	standardDeviation := SampleStandardDeviation(excessReturns)
	if standardDeviation == 0 {
		return 0
	}
	return (average - riskFreeRate) / standardDeviation
}
