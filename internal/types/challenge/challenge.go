package challenge

import (
	"time"

	"fitPerksAPI/internal/i18n"
)

// Challenge is immutable reference data. Name and description carry
// both locales in the stored document.
type Challenge struct {
	ID          string    `json:"id"`
	Name        i18n.Text `json:"name"`
	Description i18n.Text `json:"description"`
	Reward      int       `json:"reward"`
}

// Active is the snapshot embedded in a user while a challenge is in
// progress. The snapshot keeps the slot stable even if the reference
// data changes afterwards.
type Active struct {
	Challenge Challenge `json:"challenge"`
	StartedAt time.Time `json:"startedAt"`
}

type LocalizedChallenge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Reward      int    `json:"reward"`
}

type LocalizedActive struct {
	Challenge LocalizedChallenge `json:"challenge"`
	StartedAt time.Time          `json:"startedAt"`
}

func (c Challenge) Localized(loc i18n.Locale) LocalizedChallenge {
	return LocalizedChallenge{
		ID:          c.ID,
		Name:        c.Name.Resolve(loc),
		Description: c.Description.Resolve(loc),
		Reward:      c.Reward,
	}
}

func (a Active) Localized(loc i18n.Locale) LocalizedActive {
	return LocalizedActive{
		Challenge: a.Challenge.Localized(loc),
		StartedAt: a.StartedAt,
	}
}
