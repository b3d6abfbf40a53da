package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"fitPerksAPI/internal/i18n"
	"fitPerksAPI/internal/store"
	"fitPerksAPI/internal/types/challenge"
	"fitPerksAPI/internal/types/reward"
	"fitPerksAPI/internal/types/user"
)

var testSecret = []byte("test-secret")

func newTestStore(t *testing.T) *store.FileStore {
	t.Helper()
	return store.NewFileStore(filepath.Join(t.TempDir(), "db.json"))
}

// seedReferenceData installs one challenge and one reward the tests
// can join and redeem.
func seedReferenceData(t *testing.T, st store.Store) {
	t.Helper()
	err := st.Update(func(doc *store.Document) error {
		doc.Challenges = append(doc.Challenges, challenge.Challenge{
			ID:          "ch1",
			Name:        i18n.Text{Ar: "تحدي المشي", En: "Walking challenge"},
			Description: i18n.Text{Ar: "امشِ ١٠٠٠٠ خطوة", En: "Walk 10000 steps"},
			Reward:      50,
		})
		doc.Rewards = append(doc.Rewards, reward.Reward{
			ID:   "rw1",
			Name: i18n.Text{Ar: "قسيمة قهوة", En: "Coffee voucher"},
			Cost: 100,
		})
		doc.FAQ = append(doc.FAQ, map[string]any{
			"id":       "q1",
			"question": map[string]any{"ar": "س", "en": "Q"},
			"answer":   map[string]any{"ar": "ج", "en": "A"},
		})
		return nil
	})
	require.NoError(t, err)
}

// registerTestUser creates an account through the real registration
// path and returns its id.
func registerTestUser(t *testing.T, st store.Store, username string) string {
	t.Helper()
	svc := NewAuthService(st, testSecret)
	view, _, err := svc.Register(context.Background(), &user.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
	}, i18n.LocaleEn)
	require.NoError(t, err)
	return view.ID
}

func setUserPoints(t *testing.T, st store.Store, userID string, points int) {
	t.Helper()
	require.NoError(t, st.Update(func(doc *store.Document) error {
		doc.UserByID(userID).Points = points
		return nil
	}))
}
