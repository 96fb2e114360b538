package main

import (
	"context"
	"sync"
)

// Repository define a interface para guardar o estado da tela de cada sessão
type Repository interface {
	// GetState retorna o estado da sessão (ou um estado vazio se ela ainda não existe)
	GetState(ctx context.Context, sessionID string) (State, error)

	// SaveState substitui o estado da sessão
	SaveState(ctx context.Context, sessionID string, state State) error
}

// SessionRepository implementa Repository em memória. O estado vive apenas
// enquanto o processo estiver rodando.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]State
}

// NewSessionRepository cria uma nova instância de SessionRepository
func NewSessionRepository() Repository {
	return &SessionRepository{
		sessions: make(map[string]State),
	}
}

// GetState retorna o estado da sessão
func (r *SessionRepository) GetState(ctx context.Context, sessionID string) (State, error) {
	if err := ctx.Err(); err != nil {
		return State{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.sessions[sessionID]
	if !ok {
		return NewState(), nil
	}
	return state.clone(), nil
}

// SaveState substitui o estado da sessão
func (r *SessionRepository) SaveState(ctx context.Context, sessionID string, state State) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[sessionID] = state.clone()
	return nil
}
