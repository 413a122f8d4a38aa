package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"housing-loan-sim/domain"
)

func income(v float64) *float64 { return &v }

func newTestCalculator() *SubsidyCalculator {
	return NewSubsidyCalculator(DefaultSubsidyPolicy(), zap.NewNop())
}

func TestSubsidyCalculator_Band(t *testing.T) {
	c := newTestCalculator()

	cases := []struct {
		price float64
		want  domain.PriceBand
	}{
		{50000, domain.BandR5}, // below R1 falls back
		{68800, domain.BandR1},
		{98100, domain.BandR1},
		{98101, domain.BandR2},
		{146900, domain.BandR2},
		{146901, domain.BandR3},
		{244600, domain.BandR3},
		{244601, domain.BandR4},
		{362100, domain.BandR4},
		{362101, domain.BandR5},
		{488800, domain.BandR5},
		{700000, domain.BandR5},
		{0, domain.BandR5},
		{-1, domain.BandR5},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, c.Band(tc.price), "price %.0f", tc.price)
	}
}

func TestSubsidyCalculator_Compute(t *testing.T) {
	c := newTestCalculator()

	t.Run("98101 standard => R2 base 22800", func(t *testing.T) {
		got := c.Compute(domain.SubsidyRequest{
			PropertyPrice: 98101,
			HousingType:   domain.HousingStandard,
		})
		assert.Equal(t, domain.BandR2, got.Band)
		assert.Equal(t, 22800.0, got.BaseBonus)
		assert.Equal(t, 0.0, got.Supplement)
		assert.Equal(t, 22800.0, got.Total)
	})

	t.Run("income 4000 price 100000 standard => 22800 + 3600 = 26400", func(t *testing.T) {
		got := c.Compute(domain.SubsidyRequest{
			PropertyPrice: 100000,
			HousingType:   domain.HousingStandard,
			Applicant:     domain.Applicant{Income: income(4000)},
		})
		assert.Equal(t, 26400.0, got.Total)
		assert.Equal(t, 3600.0, got.Supplement)
	})

	t.Run("income exactly at threshold gets supplement", func(t *testing.T) {
		got := c.Bonus(domain.SubsidyRequest{
			PropertyPrice: 100000,
			HousingType:   domain.HousingStandard,
			Applicant:     domain.Applicant{Income: income(4746)},
		})
		assert.Equal(t, 26400.0, got)
	})

	t.Run("700000 low income => R5 and no supplement", func(t *testing.T) {
		got := c.Compute(domain.SubsidyRequest{
			PropertyPrice: 700000,
			HousingType:   domain.HousingStandard,
			Applicant:     domain.Applicant{Income: income(4000), IsElderly: true},
		})
		assert.Equal(t, domain.BandR5, got.Band)
		assert.Equal(t, 0.0, got.Total)
	})

	t.Run("in-band R5 vulnerable => still zero", func(t *testing.T) {
		got := c.Bonus(domain.SubsidyRequest{
			PropertyPrice: 400000,
			HousingType:   domain.HousingSustainable,
			Applicant:     domain.Applicant{HasDisability: true},
		})
		assert.Equal(t, 0.0, got)
	})

	t.Run("sustainable R1 displaced => 33700 + 3600", func(t *testing.T) {
		got := c.Bonus(domain.SubsidyRequest{
			PropertyPrice: 80000,
			HousingType:   domain.HousingSustainable,
			Applicant:     domain.Applicant{IsDisplaced: true},
		})
		assert.Equal(t, 37300.0, got)
	})

	t.Run("absent income defaults above threshold", func(t *testing.T) {
		got := c.Bonus(domain.SubsidyRequest{
			PropertyPrice: 300000,
			HousingType:   domain.HousingStandard,
		})
		assert.Equal(t, 7800.0, got)
	})

	t.Run("zero income counts as absent", func(t *testing.T) {
		got := c.Compute(domain.SubsidyRequest{
			PropertyPrice: 100000,
			HousingType:   domain.HousingStandard,
			Applicant:     domain.Applicant{Income: income(0)},
		})
		assert.Equal(t, 0.0, got.Supplement)
		assert.Equal(t, 22800.0, got.Total)
	})

	t.Run("returning migrant R3 => 20900 + 3600", func(t *testing.T) {
		got := c.Bonus(domain.SubsidyRequest{
			PropertyPrice: 200000,
			HousingType:   domain.HousingStandard,
			Applicant:     domain.Applicant{IsReturningMigrant: true},
		})
		assert.Equal(t, 24500.0, got)
	})
}

func TestSubsidyCalculator_Deterministic(t *testing.T) {
	c := newTestCalculator()
	req := domain.SubsidyRequest{
		PropertyPrice: 150000,
		HousingType:   domain.HousingSustainable,
		Applicant:     domain.Applicant{Income: income(3000)},
		Currency:      domain.CurrencyPEN,
	}

	first := c.Compute(req)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Compute(req))
	}
	assert.Equal(t, "bbp-2024", first.PolicyVersion)
}

func TestSubsidyCalculator_CustomPolicy(t *testing.T) {
	policy := DefaultSubsidyPolicy()
	policy.Version = "test"
	policy.Supplement = 1000
	policy.Bonuses[domain.HousingStandard][domain.BandR2] = 5000

	c := NewSubsidyCalculator(policy, nil)

	got := c.Compute(domain.SubsidyRequest{
		PropertyPrice: 100000,
		HousingType:   domain.HousingStandard,
		Applicant:     domain.Applicant{IsElderly: true},
	})
	assert.Equal(t, 6000.0, got.Total)
	assert.Equal(t, "test", got.PolicyVersion)
}

func TestNormalizeHousingType(t *testing.T) {
	assert.Equal(t, domain.HousingSustainable, domain.NormalizeHousingType(domain.HousingSustainable))
	assert.Equal(t, domain.HousingStandard, domain.NormalizeHousingType(""))
	assert.Equal(t, domain.HousingStandard, domain.NormalizeHousingType("Tradicional"))
}

func TestNormalizeRateType(t *testing.T) {
	assert.Equal(t, domain.RateTEA, domain.NormalizeRateType("TEA"))
	assert.Equal(t, domain.RateTEA, domain.NormalizeRateType(" tea "))
	assert.Equal(t, domain.RateTNA, domain.NormalizeRateType("tna"))
	assert.Equal(t, domain.RateTNA, domain.NormalizeRateType(""))
}
