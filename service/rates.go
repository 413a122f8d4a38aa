package service

import (
	"fmt"
	"math"

	"housing-loan-sim/domain"
)

// MonthlyRate converts an annual rate in percent to an effective monthly rate.
// TEA is compounded geometrically; anything else is treated as TNA with
// capsPerYear capitalizations (12 when unset).
func MonthlyRate(annualRate float64, rateType domain.RateType, capsPerYear int) float64 {
	if rateType == domain.RateTEA {
		return math.Pow(1+annualRate/100, 1.0/12) - 1
	}
	if capsPerYear <= 0 {
		capsPerYear = DefaultCapitalizationsPerYear
	}
	periodicRate := annualRate / 100 / float64(capsPerYear)
	return math.Pow(1+periodicRate, float64(capsPerYear)/12) - 1
}

// AnnuityPayment is the level payment P·r·(1+r)^n / ((1+r)^n − 1).
func AnnuityPayment(principal, monthlyRate float64, periods int) (float64, error) {
	if periods <= 0 {
		return 0, fmt.Errorf("%w: %d periodos", ErrInvalidTerm, periods)
	}
	factor := math.Pow(1+monthlyRate, float64(periods))
	denominator := factor - 1
	if monthlyRate <= 0 || denominator == 0 || math.IsInf(factor, 0) || math.IsNaN(factor) {
		return 0, fmt.Errorf("%w: tasa mensual %g", ErrInvalidRate, monthlyRate)
	}
	return principal * monthlyRate * factor / denominator, nil
}

// PeriodicInsuranceRate turns an annual insurance percentage into a
// per-period factor on a 360-day year. Rates already per period are only
// scaled from percent.
func PeriodicInsuranceRate(rate float64, perPeriod bool, periodsPerYear int) float64 {
	if perPeriod {
		return rate / 100
	}
	if periodsPerYear <= 0 {
		periodsPerYear = DefaultPeriodicCostFrequency
	}
	return rate / 100 * (float64(periodsPerYear) / DayCountBasis)
}

func TermInMonths(term int, unit domain.TermUnit) int {
	if unit == domain.TermYears {
		return term * 12
	}
	return term
}

// DownPaymentAmount resolves the down payment to a currency amount.
func DownPaymentAmount(price, downPayment float64, mode domain.DownPaymentMode) float64 {
	if mode == domain.DownPaymentPercentage {
		return price * downPayment / 100
	}
	return downPayment
}
