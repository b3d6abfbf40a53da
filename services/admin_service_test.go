package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitPerksAPI/internal/apperr"
	"fitPerksAPI/internal/i18n"
	"fitPerksAPI/internal/types/submission"
)

// createPendingSubmission walks a user through join+submit and returns
// the pending submission id.
func createPendingSubmission(t *testing.T, svc *ChallengeService, userID string) string {
	t.Helper()
	_, err := svc.Join(context.Background(), userID, "ch1", i18n.LocaleEn)
	require.NoError(t, err)
	sub, err := svc.Submit(context.Background(), userID, "http://x/proof.png")
	require.NoError(t, err)
	return sub.ID
}

func TestApprove_CreditsExactlyOnce(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	seedReferenceData(t, st)
	userID := registerTestUser(t, st, "karim")
	subID := createPendingSubmission(t, NewChallengeService(st), userID)
	svc := NewAdminService(st)

	resolved, err := svc.Approve(context.Background(), subID)
	require.NoError(t, err)
	assert.Equal(t, submission.StatusApproved, resolved.Status)
	assert.Equal(t, 50, resolved.PointsAwarded)
	require.NotNil(t, resolved.ProcessedAt)

	doc, err := st.Load()
	require.NoError(t, err)
	account := doc.UserByID(userID)
	assert.Equal(t, 50, account.Points)
	assert.Equal(t, []string{"ch1"}, account.CompletedChallenges)

	// second approve must fail and must not double-credit
	_, err = svc.Approve(context.Background(), subID)
	assert.ErrorIs(t, err, apperr.ErrInvalidState)

	doc, err = st.Load()
	require.NoError(t, err)
	assert.Equal(t, 50, doc.UserByID(userID).Points)
	assert.Len(t, doc.UserByID(userID).CompletedChallenges, 1)
}

func TestApprove_UnknownSubmission(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	_, err := NewAdminService(st).Approve(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestReject(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	seedReferenceData(t, st)
	userID := registerTestUser(t, st, "karim")
	subID := createPendingSubmission(t, NewChallengeService(st), userID)
	svc := NewAdminService(st)

	resolved, err := svc.Reject(context.Background(), subID, "image does not show the activity")
	require.NoError(t, err)
	assert.Equal(t, submission.StatusRejected, resolved.Status)
	assert.Equal(t, "image does not show the activity", resolved.RejectionReason)
	require.NotNil(t, resolved.ProcessedAt)

	// rejected submissions award nothing and are terminal
	doc, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, doc.UserByID(userID).Points)

	_, err = svc.Approve(context.Background(), subID)
	assert.ErrorIs(t, err, apperr.ErrInvalidState)
}

func TestReject_RequiresReason(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	_, err := NewAdminService(st).Reject(context.Background(), "any", "")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestListSubmissions_FilterAndOrder(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	seedReferenceData(t, st)
	chSvc := NewChallengeService(st)
	adminSvc := NewAdminService(st)

	first := createPendingSubmission(t, chSvc, registerTestUser(t, st, "karim"))
	second := createPendingSubmission(t, chSvc, registerTestUser(t, st, "amal"))

	_, err := adminSvc.Approve(context.Background(), first)
	require.NoError(t, err)

	all, err := adminSvc.ListSubmissions(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := adminSvc.ListSubmissions(context.Background(), submission.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second, pending[0].ID)

	approved, err := adminSvc.ListSubmissions(context.Background(), submission.StatusApproved)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, first, approved[0].ID)
}

func TestAdminUserListing(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	id := registerTestUser(t, st, "karim")
	registerTestUser(t, st, "amal")
	svc := NewAdminService(st)

	users, err := svc.ListUsers(context.Background(), i18n.LocaleAr)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	view, err := svc.GetUser(context.Background(), id, i18n.LocaleAr)
	require.NoError(t, err)
	assert.Equal(t, "karim", view.Username)

	_, err = svc.GetUser(context.Background(), "missing", i18n.LocaleAr)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
