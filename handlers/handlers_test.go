package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitPerksAPI/internal/i18n"
	"fitPerksAPI/internal/store"
	"fitPerksAPI/internal/types/challenge"
	"fitPerksAPI/internal/types/reward"
	"fitPerksAPI/middleware"
	"fitPerksAPI/services"
)

var testSecret = []byte("handler-test-secret")

// newTestRouter wires the real services over a temp file store, the
// same way main.go does.
func newTestRouter(t *testing.T) (*mux.Router, *store.FileStore) {
	t.Helper()

	st := store.NewFileStore(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, st.Update(func(doc *store.Document) error {
		doc.Challenges = append(doc.Challenges, challenge.Challenge{
			ID:     "ch1",
			Name:   i18n.Text{Ar: "تحدي", En: "Challenge"},
			Reward: 50,
		})
		doc.Rewards = append(doc.Rewards, reward.Reward{
			ID:   "rw1",
			Name: i18n.Text{Ar: "مكافأة", En: "Reward"},
			Cost: 100,
		})
		return nil
	}))

	authHandler := NewAuthHandler(services.NewAuthService(st, testSecret))
	userHandler := NewUserHandler(services.NewUserService(st), t.TempDir(), "http://localhost")
	challengeHandler := NewChallengeHandler(services.NewChallengeService(st), t.TempDir(), "http://localhost")
	rewardHandler := NewRewardHandler(services.NewRewardService(st))
	supportService := services.NewSupportService(st)
	supportHandler := NewSupportHandler(supportService)
	adminHandler := NewAdminHandler(services.NewAdminService(st), supportService)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/challenges", challengeHandler.ListChallenges).Methods("GET")
	api.HandleFunc("/rewards", rewardHandler.ListRewards).Methods("GET")

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware(testSecret))
	protected.HandleFunc("/profile", userHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/challenges/join", challengeHandler.JoinChallenge).Methods("POST")
	protected.HandleFunc("/rewards/redeem", rewardHandler.RedeemReward).Methods("POST")
	protected.HandleFunc("/support", supportHandler.PostMessage).Methods("POST")

	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/submissions", adminHandler.ListSubmissions).Methods("GET")

	return r, st
}

func doJSON(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, r http.Handler) string {
	t.Helper()

	rec := doJSON(t, r, "POST", "/api/register", "", map[string]string{
		"username": "karim",
		"email":    "karim@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestRegisterLoginFlow(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t)
	registerAndLogin(t, r)

	rec := doJSON(t, r, "POST", "/api/login", "", map[string]string{
		"username": "karim",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, "POST", "/api/login", "", map[string]string{
		"username": "karim",
		"password": "wrongpass",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, r, "POST", "/api/register", "", map[string]string{
		"username": "karim",
		"email":    "second@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t)

	rec := doJSON(t, r, "GET", "/api/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, r, "GET", "/api/profile", "garbage-token", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJoinChallengeOverHTTP(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t)
	token := registerAndLogin(t, r)

	rec := doJSON(t, r, "POST", "/api/challenges/join", token, map[string]string{"challengeId": "ch1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// second join conflicts
	rec = doJSON(t, r, "POST", "/api/challenges/join", token, map[string]string{"challengeId": "ch1"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// unknown challenge
	rec = doJSON(t, r, "POST", "/api/challenges/join", token, map[string]string{"challengeId": "nope"})
	assert.Equal(t, http.StatusConflict, rec.Code) // slot already occupied wins
}

func TestRedeemOverHTTP_InsufficientBalance(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t)
	token := registerAndLogin(t, r)

	rec := doJSON(t, r, "POST", "/api/rewards/redeem", token, map[string]string{"rewardId": "rw1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListChallenges_LocaleHeader(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/api/challenges", nil)
	req.Header.Set("Accept-Language", "en-US")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var challenges []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &challenges))
	require.Len(t, challenges, 1)
	assert.Equal(t, "Challenge", challenges[0]["name"])

	// no header falls back to Arabic
	req = httptest.NewRequest("GET", "/api/challenges", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &challenges))
	assert.Equal(t, "تحدي", challenges[0]["name"])
}

func TestSupportPostOverHTTP(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t)
	token := registerAndLogin(t, r)

	rec := doJSON(t, r, "POST", "/api/support", token, map[string]string{"message": "hello"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "unread", created["status"])
	assert.Equal(t, "karim", created["username"])
}

func TestAdminSubmissionsListIsOpen(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t)

	// admin surface carries no auth
	rec := doJSON(t, r, "GET", "/api/admin/submissions", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestResponsesNeverLeakPasswordHash(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t)
	token := registerAndLogin(t, r)

	rec := doJSON(t, r, "GET", "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "passwordHash")
}
