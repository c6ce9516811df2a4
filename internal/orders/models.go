package orders

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
)

// confirmed and rejected are terminal; cancellation is a separate flow
// that is not part of this service.
var validNext = map[Status]map[Status]bool{
	StatusPending:   {StatusConfirmed: true, StatusRejected: true},
	StatusConfirmed: {},
	StatusRejected:  {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

type Order struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateInput struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}
