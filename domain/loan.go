package domain

import (
	"strings"
	"time"
)

type DownPaymentMode string

const (
	DownPaymentAmount     DownPaymentMode = "amount"
	DownPaymentPercentage DownPaymentMode = "percentage"
)

// RateType indica cómo se expresa la tasa anual.
type RateType string

const (
	RateTEA RateType = "TEA" // efectiva anual
	RateTNA RateType = "TNA" // nominal anual, con capitalizaciones
)

// NormalizeRateType accepts the rate type in any case; anything other than
// TEA is nominal.
func NormalizeRateType(t RateType) RateType {
	if strings.EqualFold(strings.TrimSpace(string(t)), string(RateTEA)) {
		return RateTEA
	}
	return RateTNA
}

type TermUnit string

const (
	TermMonths TermUnit = "months"
	TermYears  TermUnit = "years"
)

type GraceMode string

const (
	GraceNone    GraceMode = "none"
	GracePartial GraceMode = "partial" // solo intereses
	GraceTotal   GraceMode = "total"   // sin pago de cuota
)

type Currency string

const (
	CurrencyPEN Currency = "PEN"
	CurrencyUSD Currency = "USD"
)

// LoanInput holds the terms of a single mortgage simulation.
type LoanInput struct {
	PropertyPrice   float64         `json:"property_price"`
	DownPayment     float64         `json:"down_payment"`
	DownPaymentMode DownPaymentMode `json:"down_payment_mode"`

	Rate                   float64  `json:"rate"`
	RateType               RateType `json:"rate_type"`
	CapitalizationsPerYear int      `json:"capitalizations_per_year,omitempty"`

	Term     int      `json:"term"`
	TermUnit TermUnit `json:"term_unit"`

	GraceMode   GraceMode `json:"grace_mode"`
	GraceMonths int       `json:"grace_months"`

	// Tasas de seguro en % anual, salvo que RatesArePerPeriod sea true.
	LifeInsuranceRate     float64 `json:"life_insurance_rate"`
	RiskInsuranceRate     float64 `json:"risk_insurance_rate"`
	RatesArePerPeriod     bool    `json:"rates_are_per_period"`
	PostalFee             float64 `json:"postal_fee"`
	AdminFee              float64 `json:"admin_fee"`
	Commission            float64 `json:"commission"`
	PeriodicCostFrequency int     `json:"periodic_cost_frequency,omitempty"`

	Applicant   Applicant   `json:"applicant"`
	HousingType HousingType `json:"housing_type"`
	Currency    Currency    `json:"currency"`

	// StartDate only drives the informational due dates.
	StartDate time.Time `json:"start_date,omitzero"`
}

type ScheduleRow struct {
	Period             int       `json:"period"`
	DueDate            time.Time `json:"due_date"`
	OpeningBalance     float64   `json:"opening_balance"`
	Interest           float64   `json:"interest"`
	Amortization       float64   `json:"amortization"`
	LifeInsurance      float64   `json:"life_insurance"`
	RiskInsurance      float64   `json:"risk_insurance"`
	PeriodicFees       float64   `json:"periodic_fees"`
	TotalPeriodicCosts float64   `json:"total_periodic_costs"`
	Payment            float64   `json:"payment"`
	ClosingBalance     float64   `json:"closing_balance"`
}

type SimulationResult struct {
	MonthlyPayment    float64 `json:"monthly_payment"`
	TotalInterest     float64 `json:"total_interest"`
	DownPaymentAmount float64 `json:"down_payment_amount"`
	Subsidy           float64 `json:"subsidy"`
	FinancedAmount    float64 `json:"financed_amount"`
	MonthlyRate       float64 `json:"monthly_rate"`

	TCEA float64 `json:"tcea"`
	TREA float64 `json:"trea"`
	NPV  float64 `json:"npv"`
	IRR  float64 `json:"irr"`

	TotalLifeInsurance float64 `json:"total_life_insurance"`
	TotalRiskInsurance float64 `json:"total_risk_insurance"`
	TotalPeriodicFees  float64 `json:"total_periodic_fees"`
	TotalPeriodicCosts float64 `json:"total_periodic_costs"`

	Schedule []ScheduleRow `json:"schedule"`
}
