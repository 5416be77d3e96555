package analytics

import (
	"math"

	"github.com/etnz/snowball"
	"gonum.org/v1/gonum/stat"
)

// Constants of the mock performance metrics.
const (
	MockBenchmarkReturn snowball.Percent = 8.5
	MockBeta                             = 1.1
	MockMaxDrawdown     snowball.Percent = -8.2
	MockForwardRate     snowball.Percent = 2
	mockRiskDivisor                      = 15
)

// Performance gathers the portfolio return and risk metrics.
type Performance struct {
	TotalReturn     snowball.Percent
	BenchmarkReturn snowball.Percent
	Alpha           snowball.Percent
	Beta            float64
	Sharpe          float64
	MaxDrawdown     snowball.Percent
	Volatility      snowball.Percent // Volatility is the dispersion of the position returns.
}

// MockPerformance returns placeholder metrics around the real total return of s.
// Only TotalReturn and Volatility are computed; the others are constants.
func MockPerformance(s snowball.Summary, positions []snowball.Position) Performance {
	ret := s.TotalGainPercent
	var returns []float64
	for _, p := range positions {
		if p.PriceKnown {
			returns = append(returns, float64(p.UnrealizedGainPercent))
		}
	}
	return Performance{
		TotalReturn:     ret,
		BenchmarkReturn: MockBenchmarkReturn,
		Alpha:           ret - MockBenchmarkReturn,
		Beta:            MockBeta,
		Sharpe:          float64(ret) / mockRiskDivisor,
		MaxDrawdown:     MockMaxDrawdown,
		Volatility:      snowball.Percent(Volatility(returns)),
	}
}

// MockForwardYield estimates the dividends of the next year as 2% of the
// market value of each priced position.
func MockForwardYield(positions []snowball.Position) snowball.Money {
	var total snowball.Money
	for _, p := range positions {
		if !p.PriceKnown {
			continue
		}
		total = total.Add(p.CurrentPrice.Mul(p.Shares).Percent(MockForwardRate))
	}
	return total
}

// Volatility is the sample standard deviation of returns, 0 with fewer than
// two values.
func Volatility(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	v := stat.StdDev(returns, nil)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// MaxDrawdown returns the largest peak to trough decline of a value series,
// as a negative percent. It is 0 for a series that never declines.
func MaxDrawdown(values []float64) snowball.Percent {
	if len(values) < 2 {
		return 0
	}
	var maxDrawdown float64
	peak := values[0]
	for _, v := range values {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			if dd := (peak - v) / peak; dd > maxDrawdown {
				maxDrawdown = dd
			}
		}
	}
	if maxDrawdown == 0 {
		return 0
	}
	return snowball.Percent(-maxDrawdown * 100)
}
