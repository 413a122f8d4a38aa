package domain

type HousingType string

const (
	HousingStandard    HousingType = "standard"
	HousingSustainable HousingType = "sustainable"
)

// NormalizeHousingType maps anything other than "sustainable" to standard.
func NormalizeHousingType(t HousingType) HousingType {
	if t == HousingSustainable {
		return HousingSustainable
	}
	return HousingStandard
}

// PriceBand is one of the five property price ranges of the bonus program.
type PriceBand string

const (
	BandR1 PriceBand = "R1"
	BandR2 PriceBand = "R2"
	BandR3 PriceBand = "R3"
	BandR4 PriceBand = "R4"
	BandR5 PriceBand = "R5"
)

// DefaultIncome is assumed when the applicant's income is not provided.
// It sits above the integrated-support threshold.
const DefaultIncome = 5000.0

type Applicant struct {
	Income             *float64 `json:"income,omitempty"`
	IsElderly          bool     `json:"is_elderly"`
	IsDisplaced        bool     `json:"is_displaced"`
	IsReturningMigrant bool     `json:"is_returning_migrant"`
	HasDisability      bool     `json:"has_disability"`
}

// IncomeOrDefault returns the declared income, or DefaultIncome when it is
// absent or zero.
func (a Applicant) IncomeOrDefault() float64 {
	if a.Income == nil || *a.Income == 0 {
		return DefaultIncome
	}
	return *a.Income
}

func (a Applicant) Vulnerable() bool {
	return a.IsElderly || a.IsDisplaced || a.IsReturningMigrant || a.HasDisability
}

type SubsidyRequest struct {
	PropertyPrice float64     `json:"property_price"`
	HousingType   HousingType `json:"housing_type"`
	Applicant     Applicant   `json:"applicant"`
	Currency      Currency    `json:"currency"`
}

type SubsidyResult struct {
	Band          PriceBand `json:"band"`
	BaseBonus     float64   `json:"base_bonus"`
	Supplement    float64   `json:"supplement"`
	Total         float64   `json:"total"`
	PolicyVersion string    `json:"policy_version"`
}
