package services

import (
	"context"
	"fmt"
	"time"

	"fitPerksAPI/internal/apperr"
	"fitPerksAPI/internal/i18n"
	"fitPerksAPI/internal/store"
	"fitPerksAPI/internal/types/submission"
	"fitPerksAPI/internal/types/user"
)

type UserService struct {
	store store.Store
}

func NewUserService(st store.Store) *UserService {
	return &UserService{store: st}
}

func (s *UserService) GetProfile(ctx context.Context, userID string, loc i18n.Locale) (*user.View, error) {
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

// UpdateProfile changes username and/or bio. A changed username is
// checked for uniqueness and rewritten on the user's tickets and
// pending submissions, which carry it denormalized.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *user.UpdateProfileRequest, loc i18n.Locale) (*user.View, error) {
	var view user.View

	err := s.store.Update(func(doc *store.Document) error {
		account := doc.UserByID(userID)
		if account == nil {
			return fmt.Errorf("%w: user", apperr.ErrNotFound)
		}

		changed := false
		if req.Username != "" && req.Username != account.Username {
			if existing := doc.UserByUsername(req.Username); existing != nil && existing.ID != userID {
				return fmt.Errorf("%w: username is already taken", apperr.ErrConflict)
			}
			account.Username = req.Username
			for i := range doc.Tickets {
				if doc.Tickets[i].UserID == userID {
					doc.Tickets[i].Username = req.Username
				}
			}
			for i := range doc.Submissions {
				if doc.Submissions[i].UserID == userID && doc.Submissions[i].Status == submission.StatusPending {
					doc.Submissions[i].Username = req.Username
				}
			}
			changed = true
		}
		if req.Bio != "" && req.Bio != account.Bio {
			account.Bio = req.Bio
			changed = true
		}

		if !changed {
			view = account.Localized(loc)
			return store.ErrNoChange
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

func (s *UserService) UpdateProfilePicture(ctx context.Context, userID, pictureURL string, loc i18n.Locale) (*user.View, error) {
	var view user.View

	err := s.store.Update(func(doc *store.Document) error {
		account := doc.UserByID(userID)
		if account == nil {
			return fmt.Errorf("%w: user", apperr.ErrNotFound)
		}
		account.PictureURL = pictureURL
		account.UpdatedAt = time.Now()
		view = account.Localized(loc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &view, nil
}
