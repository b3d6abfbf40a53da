package ticket

import "time"

type Sender string

const (
	SenderUser  Sender = "user"
	SenderAdmin Sender = "admin"
)

type Status string

const (
	StatusUnread Status = "unread"
	StatusRead   Status = "read"
)

// Ticket is one support message between a user and the admin. Tickets
// are append-only; the only mutation is the unread -> read transition.
type Ticket struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	Sender    Sender    `json:"sender"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
