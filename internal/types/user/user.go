package user

import (
	"time"

	"fitPerksAPI/internal/i18n"
	"fitPerksAPI/internal/types/challenge"
)

// Redemption records one reward exchanged for points. The code is the
// opaque value the venue scans to verify the exchange.
type Redemption struct {
	ID         string    `json:"id"`
	RewardID   string    `json:"rewardId"`
	RewardName i18n.Text `json:"rewardName"`
	Cost       int       `json:"cost"`
	Code       string    `json:"code"`
	RedeemedAt time.Time `json:"redeemedAt"`
}

type User struct {
	ID                  string            `json:"id"`
	Username            string            `json:"username"`
	Email               string            `json:"email"`
	PasswordHash        string            `json:"passwordHash"`
	Bio                 string            `json:"bio"`
	PictureURL          string            `json:"pictureUrl,omitempty"`
	Points              int               `json:"points"`
	ActiveChallenge     *challenge.Active `json:"activeChallenge,omitempty"`
	CompletedChallenges []string          `json:"completedChallenges"`
	RedeemedRewards     []Redemption      `json:"redeemedRewards"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
}

// View is the API shape of a user: no password hash, active challenge
// projected to one locale. Everything else passes through verbatim.
type View struct {
	ID                  string                     `json:"id"`
	Username            string                     `json:"username"`
	Email               string                     `json:"email"`
	Bio                 string                     `json:"bio"`
	PictureURL          string                     `json:"pictureUrl,omitempty"`
	Points              int                        `json:"points"`
	ActiveChallenge     *challenge.LocalizedActive `json:"activeChallenge,omitempty"`
	CompletedChallenges []string                   `json:"completedChallenges"`
	RedeemedRewards     []Redemption               `json:"redeemedRewards"`
	CreatedAt           time.Time                  `json:"createdAt"`
}

func (u User) Localized(loc i18n.Locale) View {
	view := View{
		ID:                  u.ID,
		Username:            u.Username,
		Email:               u.Email,
		Bio:                 u.Bio,
		PictureURL:          u.PictureURL,
		Points:              u.Points,
		CompletedChallenges: u.CompletedChallenges,
		RedeemedRewards:     u.RedeemedRewards,
		CreatedAt:           u.CreatedAt,
	}
	if view.CompletedChallenges == nil {
		view.CompletedChallenges = []string{}
	}
	if view.RedeemedRewards == nil {
		view.RedeemedRewards = []Redemption{}
	}
	if u.ActiveChallenge != nil {
		active := u.ActiveChallenge.Localized(loc)
		view.ActiveChallenge = &active
	}
	return view
}
