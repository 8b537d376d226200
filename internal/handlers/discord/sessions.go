package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/KirkDiggler/partyroll/internal/services/game"
)

// SessionFactory builds the game session for a channel
type SessionFactory func(channelID string) (game.Service, error)

// Sessions keeps one game session per Discord channel
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]game.Service
	factory  SessionFactory
}

// NewSessions creates an empty session registry
func NewSessions(factory SessionFactory) (*Sessions, error) {
	if factory == nil {
		return nil, errors.New("session factory cannot be nil")
	}

	return &Sessions{
		sessions: make(map[string]game.Service),
		factory:  factory,
	}, nil
}

// Get returns the session for a channel if one exists
func (r *Sessions) Get(channelID string) (game.Service, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	svc, ok := r.sessions[channelID]
	return svc, ok
}

// GetOrCreate returns the session for a channel, creating it on first use
func (r *Sessions) GetOrCreate(channelID string) (game.Service, error) {
	if svc, ok := r.Get(channelID); ok {
		return svc, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another interaction may have created it in the meantime
	if svc, ok := r.sessions[channelID]; ok {
		return svc, nil
	}

	svc, err := r.factory(channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session for channel %s: %w", channelID, err)
	}
	r.sessions[channelID] = svc
	log.Printf("Created party session for channel %s", channelID)

	return svc, nil
}

// Remove drops the session for a channel
func (r *Sessions) Remove(channelID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[channelID]; !ok {
		return false
	}
	delete(r.sessions, channelID)
	return true
}

// ChannelIDs returns the channels with a session, sorted
func (r *Sessions) ChannelIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// TickAll advances the timer of every session. It returns the channels whose time ran out.
func (r *Sessions) TickAll(ctx context.Context) []string {
	r.mu.RLock()
	snapshot := make(map[string]game.Service, len(r.sessions))
	for id, svc := range r.sessions {
		snapshot[id] = svc
	}
	r.mu.RUnlock()

	timedOut := []string{}
	for channelID, svc := range snapshot {
		output, err := svc.Tick(ctx, &game.TickInput{})
		if err != nil {
			log.Printf("Error ticking session for channel %s: %v", channelID, err)
			continue
		}
		if output.TimeUp {
			timedOut = append(timedOut, channelID)
		}
	}
	sort.Strings(timedOut)
	return timedOut
}
