package spread

import (
	"errors"
	"fmt"
)

const pivotTolerance = 1e-12

var errIllConditioned = errors.New("design matrix is ill conditioned")

// olsWeights regresses y on the columns of x through the origin via the
// normal equations and returns the spread weight vector [1, -beta_1, ...].
// The constant term is deliberately absent, the rolling mean downstream
// absorbs any level difference
func olsWeights(y []float64, x [][]float64) ([]float64, error) {
	if len(x) == 0 || len(x[0]) == 0 || len(y) != len(x) {
		return nil, fmt.Errorf("%w: mismatched regression inputs", errIllConditioned)
	}
	k := len(x[0])
	if len(y) < k {
		return nil, fmt.Errorf("%w: %v observations for %v regressors", errIllConditioned, len(y), k)
	}

	xtx := make([][]float64, k)
	xty := make([]float64, k)
	for i := 0; i < k; i++ {
		xtx[i] = make([]float64, k)
	}
	for row := range x {
		for i := 0; i < k; i++ {
			xty[i] += x[row][i] * y[row]
			for j := i; j < k; j++ {
				xtx[i][j] += x[row][i] * x[row][j]
			}
		}
	}
	for i := 1; i < k; i++ {
		for j := 0; j < i; j++ {
			xtx[i][j] = xtx[j][i]
		}
	}

	beta, err := solve(xtx, xty)
	if err != nil {
		return nil, err
	}

	weights := make([]float64, k+1)
	weights[0] = 1
	for i := range beta {
		weights[i+1] = -beta[i]
	}
	return weights, nil
}

// solve performs Gaussian elimination with partial pivoting on ax = b,
// mutating both arguments
func solve(a [][]float64, b []float64) ([]float64, error) {
	n := len(a)
	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if abs(a[row][col]) > abs(a[pivot][col]) {
				pivot = row
			}
		}
		if abs(a[pivot][col]) < pivotTolerance {
			return nil, fmt.Errorf("%w: pivot %v below tolerance", errIllConditioned, a[pivot][col])
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for row := col + 1; row < n; row++ {
			factor := a[row][col] / a[col][col]
			for j := col; j < n; j++ {
				a[row][j] -= factor * a[col][j]
			}
			b[row] -= factor * b[col]
		}
	}

	x := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		sum := b[row]
		for j := row + 1; j < n; j++ {
			sum -= a[row][j] * x[j]
		}
		x[row] = sum / a[row][row]
	}
	return x, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
