package services

import (
	"context"
	"fmt"

	"fitPerksAPI/internal/i18n"
	"fitPerksAPI/internal/store"
)

// DocService serves static bilingual content such as the FAQ.
type DocService struct {
	store store.Store
}

func NewDocService(st store.Store) *DocService {
	return &DocService{store: st}
}

// ListFAQ projects the raw bilingual FAQ entries to one locale.
func (s *DocService) ListFAQ(ctx context.Context, loc i18n.Locale) ([]map[string]any, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return i18n.ProjectCollection(doc.FAQ, loc), nil
}
