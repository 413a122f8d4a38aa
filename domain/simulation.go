package domain

import "time"

// Simulation is a named, stored simulation run owned by a user.
type Simulation struct {
	ID             string           `json:"id"`
	UserEmail      string           `json:"user_email"`
	Name           string           `json:"name"`
	Input          LoanInput        `json:"simulation_data"`
	Result         SimulationResult `json:"results"`
	IsBaseScenario bool             `json:"is_base_scenario"`
	CreatedAt      time.Time        `json:"created_at"`
}

type SaveSimulationInput struct {
	UserEmail      string    `json:"user_email"`
	Name           string    `json:"name"`
	Input          LoanInput `json:"simulation_data"`
	IsBaseScenario bool      `json:"is_base_scenario"`
}
