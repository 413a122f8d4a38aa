package service

const (
	MaxPropertyPrice = 1_000_000_000.0 // 1 billón
	MaxInterestRate  = 1000.0          // 1000% anual
	MaxTermMonths    = 600             // 50 años
	MinTermMonths    = 1

	DefaultCapitalizationsPerYear = 12
	DefaultPeriodicCostFrequency  = 12
	DayCountBasis                 = 360 // año comercial para prorratear seguros

	// Búsqueda de TCEA: tasas anuales candidatas de 1% a 200% en pasos de 0.1%.
	TCEAScanMin       = 0.01
	TCEAScanMax       = 2.0
	TCEAScanStep      = 0.001
	TCEAScanTolerance = 1.0 // |VAN| en unidades de moneda

	TREARatio = 0.9
)
