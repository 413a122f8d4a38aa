package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"housing-loan-sim/domain"
)

func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	cfg.MaxConns = 5
	cfg.MinConns = 1
	cfg.MaxConnLifetime = 30 * time.Minute

	return pgxpool.NewWithConfig(ctx, cfg)
}

// PostgresSimulationRepository keeps simulations in a single table with the
// loan input and result as jsonb.
type PostgresSimulationRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSimulationRepository(db *pgxpool.Pool) *PostgresSimulationRepository {
	return &PostgresSimulationRepository{db: db}
}

func (r *PostgresSimulationRepository) EnsureSchema(ctx context.Context) error {
	const table = `
create table if not exists simulations (
  id               uuid primary key,
  user_email       text not null,
  name             text not null,
  input            jsonb not null,
  result           jsonb not null,
  is_base_scenario boolean not null default false,
  created_at       timestamptz not null default now()
);
`
	const index = `
create index if not exists simulations_user_email_idx on simulations (user_email, created_at desc);
`
	if _, err := r.db.Exec(ctx, table); err != nil {
		return fmt.Errorf("create simulations table: %w", err)
	}
	if _, err := r.db.Exec(ctx, index); err != nil {
		return fmt.Errorf("create simulations index: %w", err)
	}
	return nil
}

func (r *PostgresSimulationRepository) Save(ctx context.Context, sim domain.Simulation) error {
	input, err := json.Marshal(sim.Input)
	if err != nil {
		return fmt.Errorf("encode simulation input: %w", err)
	}
	result, err := json.Marshal(sim.Result)
	if err != nil {
		return fmt.Errorf("encode simulation result: %w", err)
	}

	const q = `
insert into simulations
  (id, user_email, name, input, result, is_base_scenario, created_at)
values
  ($1, $2, $3, $4, $5, $6, $7);
`
	_, err = r.db.Exec(ctx, q, sim.ID, sim.UserEmail, sim.Name, input, result, sim.IsBaseScenario, sim.CreatedAt)
	return err
}

func (r *PostgresSimulationRepository) ListByUser(ctx context.Context, email string) ([]domain.Simulation, error) {
	const q = `
select id::text, user_email, name, input, result, is_base_scenario, created_at
from simulations
where user_email = $1
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sims := []domain.Simulation{}
	for rows.Next() {
		sim, err := scanSimulation(rows)
		if err != nil {
			return nil, err
		}
		sims = append(sims, sim)
	}
	return sims, rows.Err()
}

func (r *PostgresSimulationRepository) Get(ctx context.Context, id string) (domain.Simulation, error) {
	const q = `
select id::text, user_email, name, input, result, is_base_scenario, created_at
from simulations
where id = $1
limit 1;
`
	if _, err := uuid.Parse(id); err != nil {
		return domain.Simulation{}, ErrSimulationNotFound
	}
	sim, err := scanSimulation(r.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Simulation{}, ErrSimulationNotFound
	}
	return sim, err
}

func (r *PostgresSimulationRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrSimulationNotFound
	}
	tag, err := r.db.Exec(ctx, `delete from simulations where id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSimulationNotFound
	}
	return nil
}

func scanSimulation(row pgx.Row) (domain.Simulation, error) {
	var (
		sim           domain.Simulation
		input, result []byte
	)
	if err := row.Scan(
		&sim.ID,
		&sim.UserEmail,
		&sim.Name,
		&input,
		&result,
		&sim.IsBaseScenario,
		&sim.CreatedAt,
	); err != nil {
		return domain.Simulation{}, err
	}
	if err := json.Unmarshal(input, &sim.Input); err != nil {
		return domain.Simulation{}, fmt.Errorf("decode simulation input: %w", err)
	}
	if err := json.Unmarshal(result, &sim.Result); err != nil {
		return domain.Simulation{}, fmt.Errorf("decode simulation result: %w", err)
	}
	return sim, nil
}
