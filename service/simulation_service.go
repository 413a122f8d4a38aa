package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"housing-loan-sim/domain"
	"housing-loan-sim/repository"
)

// SimulationService runs simulations and keeps named runs per user.
type SimulationService struct {
	engine *AmortizationEngine
	repo   repository.SimulationRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewSimulationService(
	engine *AmortizationEngine,
	repo repository.SimulationRepository,
	logger *zap.Logger,
) *SimulationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimulationService{engine: engine, repo: repo, logger: logger, now: time.Now}
}

func (s *SimulationService) Simulate(input domain.LoanInput) (domain.SimulationResult, error) {
	return s.engine.Simulate(input)
}

func (s *SimulationService) Subsidy(req domain.SubsidyRequest) domain.SubsidyResult {
	req.HousingType = domain.NormalizeHousingType(req.HousingType)
	return s.engine.Subsidy().Compute(req)
}

// Run simulates the input and stores the result under the given name.
func (s *SimulationService) Run(ctx context.Context, input domain.SaveSimulationInput) (domain.Simulation, error) {
	email := strings.TrimSpace(input.UserEmail)
	name := strings.TrimSpace(input.Name)
	if email == "" {
		return domain.Simulation{}, fmt.Errorf("%w: falta user_email", ErrInvalidSimulation)
	}
	if name == "" {
		return domain.Simulation{}, fmt.Errorf("%w: falta name", ErrInvalidSimulation)
	}

	result, err := s.engine.Simulate(input.Input)
	if err != nil {
		return domain.Simulation{}, err
	}

	sim := domain.Simulation{
		ID:             uuid.NewString(),
		UserEmail:      email,
		Name:           name,
		Input:          input.Input,
		Result:         result,
		IsBaseScenario: input.IsBaseScenario,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.repo.Save(ctx, sim); err != nil {
		return domain.Simulation{}, fmt.Errorf("save simulation: %w", err)
	}

	s.logger.Info("simulation saved",
		zap.String("op", "simulations.Run"),
		zap.String("simulation_id", sim.ID),
		zap.String("name", sim.Name),
	)
	return sim, nil
}

func (s *SimulationService) List(ctx context.Context, email string) ([]domain.Simulation, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: falta user_email", ErrInvalidSimulation)
	}
	return s.repo.ListByUser(ctx, email)
}

func (s *SimulationService) Get(ctx context.Context, id string) (domain.Simulation, error) {
	return s.repo.Get(ctx, id)
}

func (s *SimulationService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("simulation deleted",
		zap.String("op", "simulations.Delete"),
		zap.String("simulation_id", id),
	)
	return nil
}
