package reward

import "fitPerksAPI/internal/i18n"

// Reward is immutable reference data exchanged for points.
type Reward struct {
	ID   string    `json:"id"`
	Name i18n.Text `json:"name"`
	Cost int       `json:"cost"`
}

type LocalizedReward struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Cost int    `json:"cost"`
}

func (r Reward) Localized(loc i18n.Locale) LocalizedReward {
	return LocalizedReward{
		ID:   r.ID,
		Name: r.Name.Resolve(loc),
		Cost: r.Cost,
	}
}
