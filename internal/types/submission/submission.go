package submission

import (
	"time"

	"fitPerksAPI/internal/types/challenge"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Submission is a user's claim of challenge completion awaiting admin
// review. The challenge is snapshotted at submit time so the reward
// amount stays what the user saw. A submission is mutated exactly once,
// on approve or reject, and is terminal afterwards.
type Submission struct {
	ID              string              `json:"id"`
	UserID          string              `json:"userId"`
	Username        string              `json:"username"`
	Challenge       challenge.Challenge `json:"challenge"`
	ImageURL        string              `json:"imageUrl"`
	Status          Status              `json:"status"`
	SubmittedAt     time.Time           `json:"submittedAt"`
	ProcessedAt     *time.Time          `json:"processedAt,omitempty"`
	PointsAwarded   int                 `json:"pointsAwarded,omitempty"`
	RejectionReason string              `json:"rejectionReason,omitempty"`
}
