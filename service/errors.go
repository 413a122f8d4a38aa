package service

import "errors"

var (
	ErrInvalidRate      = errors.New("tasa inválida")
	ErrInvalidPrincipal = errors.New("monto financiado inválido")
	ErrInvalidTerm      = errors.New("plazo inválido")
	ErrInvalidPrice     = errors.New("valor de vivienda inválido")
	ErrInvalidGrace     = errors.New("periodo de gracia inválido")

	ErrInvalidSimulation = errors.New("simulación inválida")
)

// IsValidationError reports whether err comes from rejecting caller input.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRate) ||
		errors.Is(err, ErrInvalidPrincipal) ||
		errors.Is(err, ErrInvalidTerm) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrInvalidGrace) ||
		errors.Is(err, ErrInvalidSimulation)
}
