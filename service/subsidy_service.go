package service

import (
	"go.uber.org/zap"

	"housing-loan-sim/domain"
)

// PriceRange is an inclusive property price range mapped to a band.
type PriceRange struct {
	Band domain.PriceBand
	Min  float64
	Max  float64
}

// SubsidyPolicy is the data behind the good-payer bonus. Policy changes are
// new tables, not new code.
type SubsidyPolicy struct {
	Version         string
	Ranges          []PriceRange
	Bonuses         map[domain.HousingType]map[domain.PriceBand]float64
	FallbackBand    domain.PriceBand
	IncomeThreshold float64
	Supplement      float64
	// Bands that never receive the integrated supplement.
	NoSupplement map[domain.PriceBand]bool
}

func DefaultSubsidyPolicy() SubsidyPolicy {
	return SubsidyPolicy{
		Version: "bbp-2024",
		Ranges: []PriceRange{
			{Band: domain.BandR1, Min: 68800, Max: 98100},
			{Band: domain.BandR2, Min: 98101, Max: 146900},
			{Band: domain.BandR3, Min: 146901, Max: 244600},
			{Band: domain.BandR4, Min: 244601, Max: 362100},
			{Band: domain.BandR5, Min: 362101, Max: 488800},
		},
		Bonuses: map[domain.HousingType]map[domain.PriceBand]float64{
			domain.HousingStandard: {
				domain.BandR1: 27400,
				domain.BandR2: 22800,
				domain.BandR3: 20900,
				domain.BandR4: 7800,
				domain.BandR5: 0,
			},
			domain.HousingSustainable: {
				domain.BandR1: 33700,
				domain.BandR2: 29100,
				domain.BandR3: 27200,
				domain.BandR4: 14100,
				domain.BandR5: 0,
			},
		},
		FallbackBand:    domain.BandR5,
		IncomeThreshold: 4746,
		Supplement:      3600,
		NoSupplement:    map[domain.PriceBand]bool{domain.BandR5: true},
	}
}

// SubsidyCalculator computes the good-payer bonus. It holds no mutable state
// and is safe for concurrent use.
type SubsidyCalculator struct {
	policy SubsidyPolicy
	logger *zap.Logger
}

func NewSubsidyCalculator(policy SubsidyPolicy, logger *zap.Logger) *SubsidyCalculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubsidyCalculator{policy: policy, logger: logger}
}

func (c *SubsidyCalculator) Policy() SubsidyPolicy {
	return c.policy
}

// Band classifies a property price. Prices outside every range fall back to
// the policy's fallback band.
func (c *SubsidyCalculator) Band(price float64) domain.PriceBand {
	for _, r := range c.policy.Ranges {
		if price >= r.Min && price <= r.Max {
			return r.Band
		}
	}
	c.logger.Debug("property price outside every band, using fallback",
		zap.String("op", "subsidy.Band"),
		zap.Float64("property_price", price),
		zap.String("band", string(c.policy.FallbackBand)),
	)
	return c.policy.FallbackBand
}

// IntegratedSupport reports whether the applicant qualifies for the
// supplemental amount.
func (c *SubsidyCalculator) IntegratedSupport(a domain.Applicant) bool {
	return a.IncomeOrDefault() <= c.policy.IncomeThreshold || a.Vulnerable()
}

// Compute returns the bonus breakdown for the request. The housing type is
// used as given; callers normalize it first.
func (c *SubsidyCalculator) Compute(req domain.SubsidyRequest) domain.SubsidyResult {
	band := c.Band(req.PropertyPrice)
	base := c.policy.Bonuses[req.HousingType][band]

	result := domain.SubsidyResult{
		Band:          band,
		BaseBonus:     base,
		PolicyVersion: c.policy.Version,
	}
	if c.IntegratedSupport(req.Applicant) && !c.policy.NoSupplement[band] {
		result.Supplement = c.policy.Supplement
	}
	result.Total = result.BaseBonus + result.Supplement

	c.logger.Debug("subsidy computed",
		zap.String("op", "subsidy.Compute"),
		zap.String("band", string(band)),
		zap.String("housing_type", string(req.HousingType)),
		zap.String("currency", string(req.Currency)),
		zap.Float64("total", result.Total),
	)
	return result
}

func (c *SubsidyCalculator) Bonus(req domain.SubsidyRequest) float64 {
	return c.Compute(req).Total
}
