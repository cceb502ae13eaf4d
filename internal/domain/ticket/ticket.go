package ticket

type Status string

const (
	StatusFree     Status = "free"
	StatusReserved Status = "reserved"
	StatusApproved Status = "approved"
)

func (s Status) Valid() bool {
	switch s {
	case StatusFree, StatusReserved, StatusApproved:
		return true
	}
	return false
}

// Active reports whether the ticket is held by a live purchase.
func (s Status) Active() bool {
	return s == StatusReserved || s == StatusApproved
}

// Ticket is one sellable unit. Its ID is the positional index in the
// inventory's ticket array, so the two must never diverge.
type Ticket struct {
	ID     int    `json:"id"`
	Status Status `json:"status"`
}

func NewFree(id int) Ticket {
	return Ticket{ID: id, Status: StatusFree}
}
