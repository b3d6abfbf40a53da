package services

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sort"
	"time"

	"fitPerksAPI/internal/apperr"
	"fitPerksAPI/internal/i18n"
	"fitPerksAPI/internal/store"
	"fitPerksAPI/internal/types/submission"
	"fitPerksAPI/internal/types/user"
)

// AdminService backs the review panel: submission approval, user
// listing. Ticket replies go through SupportService.
type AdminService struct {
	store store.Store
}

func NewAdminService(st store.Store) *AdminService {
	return &AdminService{store: st}
}

// ListSubmissions returns all submissions, newest first, optionally
// filtered by status. An empty status means no filter.
func (s *AdminService) ListSubmissions(ctx context.Context, status submission.Status) ([]submission.Submission, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	out := make([]submission.Submission, 0, len(doc.Submissions))
	for _, sub := range doc.Submissions {
		if status == "" || sub.Status == status {
			out = append(out, sub)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out, nil
}

// Approve resolves a pending submission: credits the snapshotted reward
// to the owner exactly once and records the challenge as completed.
// Approved and rejected submissions are terminal.
func (s *AdminService) Approve(ctx context.Context, submissionID string) (*submission.Submission, error) {
	var resolved submission.Submission

	err := s.store.Update(func(doc *store.Document) error {
		sub := doc.SubmissionByID(submissionID)
		if sub == nil {
			return fmt.Errorf("%w: submission", apperr.ErrNotFound)
		}
		if sub.Status != submission.StatusPending {
			return fmt.Errorf("%w: submission is already %s", apperr.ErrInvalidState, sub.Status)
		}

		account := doc.UserByID(sub.UserID)
		if account == nil {
			return fmt.Errorf("%w: submission owner", apperr.ErrNotFound)
		}

		now := time.Now()
		sub.Status = submission.StatusApproved
		sub.ProcessedAt = &now
		sub.PointsAwarded = sub.Challenge.Reward

		account.Points += sub.Challenge.Reward
		if !slices.Contains(account.CompletedChallenges, sub.Challenge.ID) {
			account.CompletedChallenges = append(account.CompletedChallenges, sub.Challenge.ID)
		}
		account.UpdatedAt = now

		resolved = *sub
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Approved submission %s: awarded %d points to %s", submissionID, resolved.PointsAwarded, resolved.UserID)
	return &resolved, nil
}

// Reject resolves a pending submission with a reason and awards nothing.
func (s *AdminService) Reject(ctx context.Context, submissionID, reason string) (*submission.Submission, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", apperr.ErrInvalidInput)
	}

	var resolved submission.Submission

	err := s.store.Update(func(doc *store.Document) error {
		sub := doc.SubmissionByID(submissionID)
		if sub == nil {
			return fmt.Errorf("%w: submission", apperr.ErrNotFound)
		}
		if sub.Status != submission.StatusPending {
			return fmt.Errorf("%w: submission is already %s", apperr.ErrInvalidState, sub.Status)
		}

		now := time.Now()
		sub.Status = submission.StatusRejected
		sub.ProcessedAt = &now
		sub.RejectionReason = reason

		resolved = *sub
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &resolved, nil
}

func (s *AdminService) ListUsers(ctx context.Context, loc i18n.Locale) ([]user.View, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	out := make([]user.View, 0, len(doc.Users))
	for _, u := range doc.Users {
		out = append(out, u.Localized(loc))
	}
	return out, nil
}

func (s *AdminService) GetUser(ctx context.Context, userID string, loc i18n.Locale) (*user.View, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	account := doc.UserByID(userID)
	if account == nil {
		return nil, fmt.Errorf("%w: user", apperr.ErrNotFound)
	}

	view := account.Localized(loc)
	return &view, nil
}
