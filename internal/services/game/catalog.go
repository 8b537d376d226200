package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/KirkDiggler/partyroll/internal/models"
	catalogRepo "github.com/KirkDiggler/partyroll/internal/repositories/catalog"
)

// UpsertChallenge adds a challenge or replaces the one with the same ID in place
func (s *service) UpsertChallenge(ctx context.Context, input *UpsertChallengeInput) (*UpsertChallengeOutput, error) {
	if input == nil || input.Challenge == nil {
		return nil, ErrNilInput
	}

	challenge := input.Challenge.Clone()
	if challenge.ID == "" {
		challenge.ID = s.uuidGenerator.NewUUID()
	}
	if err := validateChallenge(challenge); err != nil {
		return nil, err
	}

	s.lock()
	defer s.unlock(ctx)

	created := false
	if _, idx := s.findChallenge(challenge.ID); idx == -1 {
		s.challenges = append(s.challenges, challenge)
		created = true
	} else {
		s.challenges[idx] = challenge
	}

	return &UpsertChallengeOutput{
		Challenge: challenge.Clone(),
		Created:   created,
	}, nil
}

// DeleteChallenge removes a challenge. Deleting the active challenge returns the session to idle.
func (s *service) DeleteChallenge(ctx context.Context, input *DeleteChallengeInput) (*DeleteChallengeOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	s.lock()
	defer s.unlock(ctx)

	_, idx := s.findChallenge(input.ChallengeID)
	if idx == -1 {
		return &DeleteChallengeOutput{Deleted: false}, nil
	}

	wasActive := s.activeChallengeID == input.ChallengeID
	s.challenges = append(s.challenges[:idx:idx], s.challenges[idx+1:]...)

	if wasActive {
		s.clearSelection()
		s.timer.Running = false
		s.timer.EndsAt = time.Time{}
		s.setPhase(models.GamePhaseIdle)
	}

	return &DeleteChallengeOutput{
		Deleted:   true,
		WasActive: wasActive,
	}, nil
}

// ImportChallenges validates the whole catalog before replacing the current one.
// The active selection and the anti-repeat queue are cleared with it.
func (s *service) ImportChallenges(ctx context.Context, input *ImportChallengesInput) (*ImportChallengesOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if err := validateCatalog(input.Challenges); err != nil {
		return nil, err
	}

	s.lock()
	defer s.unlock(ctx)

	s.importChallenges(input.Challenges)

	return &ImportChallengesOutput{
		Count: len(s.challenges),
	}, nil
}

func (s *service) importChallenges(challenges []*models.Challenge) {
	s.challenges = cloneChallenges(challenges)
	s.clearSelection()
	s.recentChallengeIDs = []string{}
	s.timer.Running = false
	s.timer.EndsAt = time.Time{}
	s.setPhase(models.GamePhaseIdle)

	log.Printf("Imported catalog with %d challenges", len(s.challenges))
}

// ExportChallenges returns a copy of the catalog in draw order
func (s *service) ExportChallenges(ctx context.Context, input *ExportChallengesInput) (*ExportChallengesOutput, error) {
	s.lock()
	defer s.unlock(ctx)

	return &ExportChallengesOutput{
		Challenges: cloneChallenges(s.challenges),
	}, nil
}

// SaveCatalog stores the current catalog under a name
func (s *service) SaveCatalog(ctx context.Context, input *SaveCatalogInput) (*SaveCatalogOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if input.Name == "" {
		return nil, ErrInvalidName
	}
	if s.catalogRepo == nil {
		return nil, ErrNilCatalogRepo
	}

	s.lock()
	challenges := cloneChallenges(s.challenges)
	now := s.clock.Now()
	s.unlock(ctx)

	if err := s.catalogRepo.SaveCatalog(ctx, &catalogRepo.SaveCatalogInput{
		Name:       input.Name,
		Challenges: challenges,
		UpdatedAt:  now,
	}); err != nil {
		return nil, fmt.Errorf("failed to save catalog: %w", err)
	}

	return &SaveCatalogOutput{
		Name:  input.Name,
		Count: len(challenges),
	}, nil
}

// LoadCatalog imports a stored catalog with the same side effects as ImportChallenges
func (s *service) LoadCatalog(ctx context.Context, input *LoadCatalogInput) (*LoadCatalogOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if input.Name == "" {
		return nil, ErrInvalidName
	}
	if s.catalogRepo == nil {
		return nil, ErrNilCatalogRepo
	}

	stored, err := s.catalogRepo.GetCatalog(ctx, &catalogRepo.GetCatalogInput{
		Name: input.Name,
	})
	if err != nil {
		if errors.Is(err, catalogRepo.ErrCatalogNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if err := validateCatalog(stored.Challenges); err != nil {
		return nil, err
	}

	s.lock()
	defer s.unlock(ctx)

	s.importChallenges(stored.Challenges)

	return &LoadCatalogOutput{
		Name:  input.Name,
		Count: len(s.challenges),
	}, nil
}

// ListCatalogs returns the names of stored catalogs
func (s *service) ListCatalogs(ctx context.Context, input *ListCatalogsInput) (*ListCatalogsOutput, error) {
	if s.catalogRepo == nil {
		return nil, ErrNilCatalogRepo
	}

	output, err := s.catalogRepo.ListCatalogs(ctx, &catalogRepo.ListCatalogsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list catalogs: %w", err)
	}

	return &ListCatalogsOutput{
		Names: output.Names,
	}, nil
}

func validateChallenge(c *models.Challenge) error {
	if c == nil {
		return fmt.Errorf("%w: challenge is nil", ErrInvalidChallenge)
	}
	if c.ID == "" {
		return fmt.Errorf("%w: id cannot be empty", ErrInvalidChallenge)
	}
	if c.Title == "" {
		return fmt.Errorf("%w: %s has no title", ErrInvalidChallenge, c.ID)
	}
	if !c.Type.IsValid() {
		return fmt.Errorf("%w: %s has unknown type %q", ErrInvalidChallenge, c.ID, c.Type)
	}
	if c.MinPlayers < 1 {
		return fmt.Errorf("%w: %s needs at least one player", ErrInvalidChallenge, c.ID)
	}
	if c.MaxPlayers < c.MinPlayers {
		return fmt.Errorf("%w: %s has maxPlayers %d below minPlayers %d", ErrInvalidChallenge, c.ID, c.MaxPlayers, c.MinPlayers)
	}
	if c.TimerOverrideSeconds != nil && *c.TimerOverrideSeconds <= 0 {
		return fmt.Errorf("%w: %s has a non-positive timer override", ErrInvalidChallenge, c.ID)
	}
	return nil
}

// validateCatalog checks every entry and that IDs are unique
func validateCatalog(challenges []*models.Challenge) error {
	seen := make(map[string]bool, len(challenges))
	for _, c := range challenges {
		if err := validateChallenge(c); err != nil {
			return err
		}
		if seen[c.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateChallengeID, c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}
