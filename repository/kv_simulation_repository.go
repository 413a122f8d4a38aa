package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"housing-loan-sim/domain"
)

func simulationKey(id string) string { return "simulation:" + id }
func userSimulationsKey(email string) string { return "user_simulations:" + email }

// KVSimulationRepository stores each simulation as JSON under
// simulation:<id> and keeps an id index per user under
// user_simulations:<email>.
type KVSimulationRepository struct {
	kv KVStore
	// guards the read-modify-write of the per-user index within this process
	mu sync.Mutex
}

func NewKVSimulationRepository(kv KVStore) *KVSimulationRepository {
	return &KVSimulationRepository{kv: kv}
}

func (r *KVSimulationRepository) Save(ctx context.Context, sim domain.Simulation) error {
	raw, err := json.Marshal(sim)
	if err != nil {
		return fmt.Errorf("encode simulation: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ids, err := r.userIDs(ctx, sim.UserEmail)
	if err != nil {
		return err
	}

	if err := r.kv.Set(ctx, simulationKey(sim.ID), string(raw)); err != nil {
		return fmt.Errorf("store simulation: %w", err)
	}

	// Un registro fuera del índice nunca se lista; se revierte.
	if err := r.setUserIDs(ctx, sim.UserEmail, append(ids, sim.ID)); err != nil {
		if delErr := r.kv.Del(ctx, simulationKey(sim.ID)); delErr != nil {
			return errors.Join(err, fmt.Errorf("rollback simulation %s: %w", sim.ID, delErr))
		}
		return err
	}
	return nil
}

func (r *KVSimulationRepository) ListByUser(ctx context.Context, email string) ([]domain.Simulation, error) {
	ids, err := r.userIDs(ctx, email)
	if err != nil {
		return nil, err
	}

	sims := make([]domain.Simulation, 0, len(ids))
	for _, id := range ids {
		sim, err := r.Get(ctx, id)
		if errors.Is(err, ErrSimulationNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		sims = append(sims, sim)
	}

	sort.SliceStable(sims, func(i, j int) bool {
		return sims[i].CreatedAt.After(sims[j].CreatedAt)
	})
	return sims, nil
}

func (r *KVSimulationRepository) Get(ctx context.Context, id string) (domain.Simulation, error) {
	raw, err := r.kv.Get(ctx, simulationKey(id))
	if errors.Is(err, ErrKeyNotFound) {
		return domain.Simulation{}, ErrSimulationNotFound
	}
	if err != nil {
		return domain.Simulation{}, fmt.Errorf("load simulation %s: %w", id, err)
	}

	var sim domain.Simulation
	if err := json.Unmarshal([]byte(raw), &sim); err != nil {
		return domain.Simulation{}, fmt.Errorf("decode simulation %s: %w", id, err)
	}
	return sim, nil
}

func (r *KVSimulationRepository) Delete(ctx context.Context, id string) error {
	sim, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.kv.Del(ctx, simulationKey(id)); err != nil {
		return fmt.Errorf("delete simulation %s: %w", id, err)
	}

	ids, err := r.userIDs(ctx, sim.UserEmail)
	if err != nil {
		return err
	}
	kept := ids[:0]
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	return r.setUserIDs(ctx, sim.UserEmail, kept)
}

func (r *KVSimulationRepository) userIDs(ctx context.Context, email string) ([]string, error) {
	raw, err := r.kv.Get(ctx, userSimulationsKey(email))
	if errors.Is(err, ErrKeyNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load simulation index: %w", err)
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("decode simulation index: %w", err)
	}
	return ids, nil
}

func (r *KVSimulationRepository) setUserIDs(ctx context.Context, email string, ids []string) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode simulation index: %w", err)
	}
	if err := r.kv.Set(ctx, userSimulationsKey(email), string(raw)); err != nil {
		return fmt.Errorf("store simulation index: %w", err)
	}
	return nil
}
