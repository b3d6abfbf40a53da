package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"fitPerksAPI/internal/apperr"
	"fitPerksAPI/internal/store"
	"fitPerksAPI/internal/types/ticket"
)

type SupportService struct {
	store store.Store
}

func NewSupportService(st store.Store) *SupportService {
	return &SupportService{store: st}
}

// PostUserMessage appends a new unread ticket from the user.
func (s *SupportService) PostUserMessage(ctx context.Context, userID, username, message string) (*ticket.Ticket, error) {
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", apperr.ErrInvalidInput)
	}

	created := ticket.Ticket{
		ID:        uuid.NewString(),
		UserID:    userID,
		Username:  username,
		Message:   message,
		Sender:    ticket.SenderUser,
		Status:    ticket.StatusUnread,
		CreatedAt: time.Now(),
	}

	err := s.store.Update(func(doc *store.Document) error {
		if doc.UserByID(userID) == nil {
			return fmt.Errorf("%w: user", apperr.ErrNotFound)
		}
		doc.Tickets = append(doc.Tickets, created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// PostAdminReply appends an admin ticket into the user's thread. The
// reply is created already read: the unread flag tracks what the admin
// has not seen yet, and an admin reply was seen by its author.
func (s *SupportService) PostAdminReply(ctx context.Context, userID, message string) (*ticket.Ticket, error) {
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", apperr.ErrInvalidInput)
	}

	var created ticket.Ticket

	err := s.store.Update(func(doc *store.Document) error {
		account := doc.UserByID(userID)
		if account == nil {
			return fmt.Errorf("%w: user", apperr.ErrNotFound)
		}
		created = ticket.Ticket{
			ID:        uuid.NewString(),
			UserID:    account.ID,
			Username:  account.Username,
			Message:   message,
			Sender:    ticket.SenderAdmin,
			Status:    ticket.StatusRead,
			CreatedAt: time.Now(),
		}
		doc.Tickets = append(doc.Tickets, created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// ListForUser returns the user's thread in ascending creation order.
func (s *SupportService) ListForUser(ctx context.Context, userID string) ([]ticket.Ticket, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	out := make([]ticket.Ticket, 0)
	for _, t := range doc.Tickets {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// MarkRead flips the given tickets to read. Unknown ids are ignored;
// nothing is persisted when no ticket actually changed.
func (s *SupportService) MarkRead(ctx context.Context, ticketIDs []string) error {
	wanted := make(map[string]bool, len(ticketIDs))
	for _, id := range ticketIDs {
		wanted[id] = true
	}

	return s.store.Update(func(doc *store.Document) error {
		changed := false
		for i := range doc.Tickets {
			if wanted[doc.Tickets[i].ID] && doc.Tickets[i].Status != ticket.StatusRead {
				doc.Tickets[i].Status = ticket.StatusRead
				changed = true
			}
		}
		if !changed {
			return store.ErrNoChange
		}
		return nil
	})
}

// ListUnreadFromUsers feeds the admin inbox badge.
func (s *SupportService) ListUnreadFromUsers(ctx context.Context) ([]ticket.Ticket, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	out := make([]ticket.Ticket, 0)
	for _, t := range doc.Tickets {
		if t.Sender == ticket.SenderUser && t.Status == ticket.StatusUnread {
			out = append(out, t)
		}
	}
	return out, nil
}
