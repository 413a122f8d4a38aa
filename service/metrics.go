package service

import (
	"math"

	"housing-loan-sim/domain"
)

// TCEA scans candidate annual rates from 1% to 200% in 0.1% steps and returns
// the first one (in percent) whose NPV against the financed amount is within
// one currency unit of zero. Returns 0 when no candidate converges or
// nothing was financed.
func TCEA(schedule []domain.ScheduleRow, financed float64) float64 {
	if financed <= 0 {
		return 0
	}
	steps := int(math.Round((TCEAScanMax - TCEAScanMin) / TCEAScanStep))
	for k := 0; k <= steps; k++ {
		rate := TCEAScanMin + float64(k)*TCEAScanStep
		npv := -financed
		for i, row := range schedule {
			npv += row.Payment / math.Pow(1+rate/12, float64(i+1))
		}
		if math.Abs(npv) < TCEAScanTolerance {
			return rate * 100
		}
	}
	return 0
}

// TREA approximates the effective annual return as a fixed share of the TCEA.
func TREA(tcea float64) float64 {
	return tcea * TREARatio
}

// NPV discounts every payment at the monthly rate.
func NPV(schedule []domain.ScheduleRow, monthlyRate float64) float64 {
	var npv float64
	for _, row := range schedule {
		npv += row.Payment / math.Pow(1+monthlyRate, float64(row.Period))
	}
	return npv
}

// IRR is the closed-form proxy ((Σ payments / principal)^(12/n) − 1)·100.
// It is not a root solve. A zero principal reports 0.
func IRR(schedule []domain.ScheduleRow, principal float64) float64 {
	if principal <= 0 || len(schedule) == 0 {
		return 0
	}
	var total float64
	for _, row := range schedule {
		total += row.Payment
	}
	return (math.Pow(total/principal, 12/float64(len(schedule))) - 1) * 100
}
