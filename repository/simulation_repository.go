package repository

import (
	"context"
	"errors"

	"housing-loan-sim/domain"
)

var ErrSimulationNotFound = errors.New("simulación no encontrada")

type SimulationRepository interface {
	Save(ctx context.Context, sim domain.Simulation) error
	// ListByUser returns the user's simulations, newest first.
	ListByUser(ctx context.Context, email string) ([]domain.Simulation, error)
	Get(ctx context.Context, id string) (domain.Simulation, error)
	Delete(ctx context.Context, id string) error
}
