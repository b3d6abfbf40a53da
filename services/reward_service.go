package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"fitPerksAPI/internal/apperr"
	"fitPerksAPI/internal/i18n"
	"fitPerksAPI/internal/store"
	"fitPerksAPI/internal/types/reward"
	"fitPerksAPI/internal/types/user"
)

type RewardService struct {
	store store.Store
}

func NewRewardService(st store.Store) *RewardService {
	return &RewardService{store: st}
}

// RedemptionResult is what the client renders as a QR code, plus the
// balance left after the debit.
type RedemptionResult struct {
	Redemption user.Redemption `json:"redemption"`
	Balance    int             `json:"balance"`
}

func (s *RewardService) ListRewards(ctx context.Context, loc i18n.Locale) ([]reward.LocalizedReward, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	out := make([]reward.LocalizedReward, 0, len(doc.Rewards))
	for _, r := range doc.Rewards {
		out = append(out, r.Localized(loc))
	}
	return out, nil
}

// Redeem debits the reward cost from the user's balance and appends a
// redemption record with a fresh verification code. The balance is
// never touched when it cannot cover the cost.
func (s *RewardService) Redeem(ctx context.Context, userID, rewardID string) (*RedemptionResult, error) {
	var result RedemptionResult

	err := s.store.Update(func(doc *store.Document) error {
		account := doc.UserByID(userID)
		if account == nil {
			return fmt.Errorf("%w: user", apperr.ErrNotFound)
		}

		rw := doc.RewardByID(rewardID)
		if rw == nil {
			return fmt.Errorf("%w: reward", apperr.ErrNotFound)
		}

		if account.Points < rw.Cost {
			return fmt.Errorf("%w: need %d points, have %d", apperr.ErrInsufficientBalance, rw.Cost, account.Points)
		}

		account.Points -= rw.Cost
		redemption := user.Redemption{
			ID:         uuid.NewString(),
			RewardID:   rw.ID,
			RewardName: rw.Name,
			Cost:       rw.Cost,
			Code:       newRedemptionCode(),
			RedeemedAt: time.Now(),
		}
		account.RedeemedRewards = append(account.RedeemedRewards, redemption)
		account.UpdatedAt = time.Now()

		result = RedemptionResult{Redemption: redemption, Balance: account.Points}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("User %s redeemed reward %s for %d points", userID, rewardID, result.Redemption.Cost)
	return &result, nil
}

// newRedemptionCode returns an opaque token unique per redemption.
func newRedemptionCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "RDM-" + raw[:12]
}
