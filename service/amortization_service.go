package service

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"housing-loan-sim/domain"
)

// AmortizationEngine builds payment schedules. It keeps no state between
// calls and may be shared across goroutines.
type AmortizationEngine struct {
	subsidy *SubsidyCalculator
	logger  *zap.Logger
	now     func() time.Time
}

// NewAmortizationEngine creates an engine that nets out the subsidy computed
// by the given calculator.
func NewAmortizationEngine(subsidy *SubsidyCalculator, logger *zap.Logger) *AmortizationEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AmortizationEngine{subsidy: subsidy, logger: logger, now: time.Now}
}

// Subsidy exposes the calculator the engine was built with.
func (e *AmortizationEngine) Subsidy() *SubsidyCalculator {
	return e.subsidy
}

// scheduleParams are the resolved inputs of a schedule.
type scheduleParams struct {
	principal     float64
	monthlyRate   float64
	months        int
	grace         domain.GraceMode
	graceMonths   int
	propertyPrice float64
	lifeRate      float64
	riskRate      float64
	fixedFees     float64
	start         time.Time
}

// Simulate runs a full simulation for the given loan terms.
func (e *AmortizationEngine) Simulate(input domain.LoanInput) (domain.SimulationResult, error) {

	// Validar entrada
	if input.PropertyPrice <= 0 || input.PropertyPrice > MaxPropertyPrice {
		return domain.SimulationResult{}, fmt.Errorf("%w: %.2f", ErrInvalidPrice, input.PropertyPrice)
	}
	months := TermInMonths(input.Term, input.TermUnit)
	if months < MinTermMonths || months > MaxTermMonths {
		return domain.SimulationResult{}, fmt.Errorf("%w: %d meses (máximo %d)", ErrInvalidTerm, months, MaxTermMonths)
	}
	grace := input.GraceMode
	if grace == "" {
		grace = domain.GraceNone
	}
	if grace != domain.GraceNone && grace != domain.GracePartial && grace != domain.GraceTotal {
		return domain.SimulationResult{}, fmt.Errorf("%w: tipo %q", ErrInvalidGrace, grace)
	}
	if input.GraceMonths < 0 {
		return domain.SimulationResult{}, fmt.Errorf("%w: %d meses", ErrInvalidGrace, input.GraceMonths)
	}
	if input.Rate < 0 || input.Rate > MaxInterestRate || input.CapitalizationsPerYear < 0 {
		return domain.SimulationResult{}, fmt.Errorf("%w: %.4f%%", ErrInvalidRate, input.Rate)
	}

	downPayment := DownPaymentAmount(input.PropertyPrice, input.DownPayment, input.DownPaymentMode)
	beforeSubsidy := input.PropertyPrice - downPayment

	// El bono se calcula sobre el valor de la vivienda, no sobre el monto financiado
	subsidy := e.subsidy.Bonus(domain.SubsidyRequest{
		PropertyPrice: input.PropertyPrice,
		HousingType:   domain.NormalizeHousingType(input.HousingType),
		Applicant:     input.Applicant,
		Currency:      input.Currency,
	})
	financed := beforeSubsidy - subsidy
	if financed < 0 {
		return domain.SimulationResult{}, fmt.Errorf("%w: %.2f después del bono", ErrInvalidPrincipal, financed)
	}

	monthlyRate := MonthlyRate(input.Rate, domain.NormalizeRateType(input.RateType), input.CapitalizationsPerYear)
	if monthlyRate <= 0 || math.IsNaN(monthlyRate) || math.IsInf(monthlyRate, 0) {
		return domain.SimulationResult{}, fmt.Errorf("%w: tasa mensual %g", ErrInvalidRate, monthlyRate)
	}

	start := input.StartDate
	if start.IsZero() {
		start = e.now()
	}

	freq := input.PeriodicCostFrequency
	if freq <= 0 {
		freq = DefaultPeriodicCostFrequency
	}

	schedule, err := buildSchedule(scheduleParams{
		principal:     financed,
		monthlyRate:   monthlyRate,
		months:        months,
		grace:         grace,
		graceMonths:   input.GraceMonths,
		propertyPrice: input.PropertyPrice,
		lifeRate:      PeriodicInsuranceRate(input.LifeInsuranceRate, input.RatesArePerPeriod, freq),
		riskRate:      PeriodicInsuranceRate(input.RiskInsuranceRate, input.RatesArePerPeriod, freq),
		fixedFees:     input.PostalFee + input.AdminFee + input.Commission,
		start:         start,
	})
	if err != nil {
		return domain.SimulationResult{}, err
	}

	result := domain.SimulationResult{
		DownPaymentAmount: downPayment,
		Subsidy:           subsidy,
		FinancedAmount:    financed,
		MonthlyRate:       monthlyRate,
		Schedule:          schedule,
	}
	for _, row := range schedule {
		result.TotalInterest += row.Interest
		result.TotalLifeInsurance += row.LifeInsurance
		result.TotalRiskInsurance += row.RiskInsurance
		result.TotalPeriodicFees += row.PeriodicFees
		result.TotalPeriodicCosts += row.TotalPeriodicCosts
		if result.MonthlyPayment == 0 && row.Amortization > 0 {
			result.MonthlyPayment = row.Payment
		}
	}
	result.TCEA = TCEA(schedule, financed)
	result.TREA = TREA(result.TCEA)
	result.NPV = NPV(schedule, monthlyRate)
	result.IRR = IRR(schedule, financed)

	e.logger.Debug("simulation completed",
		zap.String("op", "engine.Simulate"),
		zap.Int("months", months),
		zap.String("grace_mode", string(grace)),
		zap.Float64("financed_amount", financed),
		zap.Float64("subsidy", subsidy),
		zap.Float64("tcea", result.TCEA),
	)

	return result, nil
}

func buildSchedule(p scheduleParams) ([]domain.ScheduleRow, error) {
	// Cuota fija sobre los periodos que amortizan capital
	amortizing := p.months
	if p.grace == domain.GraceTotal {
		amortizing = p.months - p.graceMonths
	}
	if amortizing <= 0 {
		amortizing = p.months
	}
	basePayment, err := AnnuityPayment(p.principal, p.monthlyRate, amortizing)
	if err != nil {
		return nil, err
	}

	schedule := make([]domain.ScheduleRow, 0, p.months)
	balance := p.principal

	for i := 1; i <= p.months; i++ {
		// El seguro de riesgo se calcula sobre el inmueble, no sobre la deuda
		row := domain.ScheduleRow{
			Period:         i,
			DueDate:        p.start.AddDate(0, i, 0),
			OpeningBalance: balance,
			Interest:       balance * p.monthlyRate,
			LifeInsurance:  balance * p.lifeRate,
			RiskInsurance:  p.propertyPrice * p.riskRate,
			PeriodicFees:   p.fixedFees,
		}
		row.TotalPeriodicCosts = row.LifeInsurance + row.RiskInsurance + row.PeriodicFees

		inGrace := p.grace != domain.GraceNone && i <= p.graceMonths
		switch {
		case !inGrace:
			row.Amortization = basePayment - row.Interest
			row.Payment = basePayment + row.TotalPeriodicCosts
		case p.grace == domain.GracePartial:
			row.Payment = row.Interest + row.TotalPeriodicCosts
		case p.grace == domain.GraceTotal:
			row.Payment = row.TotalPeriodicCosts
		}

		balance = math.Max(0, balance-row.Amortization)
		row.ClosingBalance = balance
		schedule = append(schedule, row)
	}

	return schedule, nil
}
