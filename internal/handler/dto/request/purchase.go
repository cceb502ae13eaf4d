package request

import (
	"encoding/json"

	"raffle-tickets/internal/domain/purchase"
)

// BuyTicketsRequest binds the multipart buy form. The proof file itself is
// read from the multipart payload separately; tickets arrive as a
// JSON-encoded integer array ("[1,2,3]") for parity with the original form.
type BuyTicketsRequest struct {
	Name      string `form:"name" binding:"required"`
	Email     string `form:"email" binding:"required"`
	Phone     string `form:"phone" binding:"required"`
	Reference string `form:"reference" binding:"required"`
	Tickets   string `form:"tickets" binding:"required"`
}

func (r BuyTicketsRequest) TicketIDs() ([]int, error) {
	var ids []int
	if err := json.Unmarshal([]byte(r.Tickets), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r BuyTicketsRequest) ToDraft(ticketIDs []int, proof *string) purchase.Draft {
	return purchase.Draft{
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Reference: r.Reference,
		TicketIDs: ticketIDs,
		Proof:     proof,
	}
}

// UpdatePurchaseRequest edits buyer-identity fields only; omitted fields are
// left untouched.
type UpdatePurchaseRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}
