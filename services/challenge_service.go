package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"fitPerksAPI/internal/apperr"
	"fitPerksAPI/internal/i18n"
	"fitPerksAPI/internal/store"
	"fitPerksAPI/internal/types/challenge"
	"fitPerksAPI/internal/types/submission"
	"fitPerksAPI/internal/types/user"
)

type ChallengeService struct {
	store store.Store
}

func NewChallengeService(st store.Store) *ChallengeService {
	return &ChallengeService{store: st}
}

func (s *ChallengeService) ListChallenges(ctx context.Context, loc i18n.Locale) ([]challenge.LocalizedChallenge, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	out := make([]challenge.LocalizedChallenge, 0, len(doc.Challenges))
	for _, c := range doc.Challenges {
		out = append(out, c.Localized(loc))
	}
	return out, nil
}

// Join occupies the user's single active-challenge slot with a snapshot
// of the challenge. Joining while a challenge is already active is
// rejected; the slot must be cancelled or submitted first.
func (s *ChallengeService) Join(ctx context.Context, userID, challengeID string, loc i18n.Locale) (*user.View, error) {
	var view user.View

	err := s.store.Update(func(doc *store.Document) error {
		account := doc.UserByID(userID)
		if account == nil {
			return fmt.Errorf("%w: user", apperr.ErrNotFound)
		}
		if account.ActiveChallenge != nil {
			return fmt.Errorf("%w: a challenge is already active", apperr.ErrConflict)
		}

		ch := doc.ChallengeByID(challengeID)
		if ch == nil {
			return fmt.Errorf("%w: challenge", apperr.ErrNotFound)
		}

		account.ActiveChallenge = &challenge.Active{
			Challenge: *ch,
			StartedAt: time.Now(),
		}
		account.UpdatedAt = time.Now()
		view = account.Localized(loc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &view, nil
}

func (s *ChallengeService) Cancel(ctx context.Context, userID string, loc i18n.Locale) (*user.View, error) {
	var view user.View

	err := s.store.Update(func(doc *store.Document) error {
		account := doc.UserByID(userID)
		if account == nil {
			return fmt.Errorf("%w: user", apperr.ErrNotFound)
		}
		if account.ActiveChallenge == nil {
			return fmt.Errorf("%w: no active challenge", apperr.ErrInvalidState)
		}

		account.ActiveChallenge = nil
		account.UpdatedAt = time.Now()
		view = account.Localized(loc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &view, nil
}

// Submit turns the active challenge into a pending submission carrying
// the challenge snapshot and the proof image, and frees the slot.
func (s *ChallengeService) Submit(ctx context.Context, userID, imageURL string) (*submission.Submission, error) {
	var created submission.Submission

	err := s.store.Update(func(doc *store.Document) error {
		account := doc.UserByID(userID)
		if account == nil {
			return fmt.Errorf("%w: user", apperr.ErrNotFound)
		}
		if account.ActiveChallenge == nil {
			return fmt.Errorf("%w: no active challenge to submit", apperr.ErrInvalidState)
		}

		created = submission.Submission{
			ID:          uuid.NewString(),
			UserID:      account.ID,
			Username:    account.Username,
			Challenge:   account.ActiveChallenge.Challenge,
			ImageURL:    imageURL,
			Status:      submission.StatusPending,
			SubmittedAt: time.Now(),
		}
		doc.Submissions = append(doc.Submissions, created)

		account.ActiveChallenge = nil
		account.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("User %s submitted proof for challenge %s", userID, created.Challenge.ID)
	return &created, nil
}
