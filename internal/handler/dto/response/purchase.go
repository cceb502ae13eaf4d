package response

import (
	"time"

	"raffle-tickets/internal/usecase/queries"
)

type TicketResponse struct {
	ID     int    `json:"id"`
	Status string `json:"status"`
}

type PurchaseResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	TicketIDs []int     `json:"tickets"`
	Status    string    `json:"status"`
	Proof     *string   `json:"proof"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"createdAt"`
}

type SettingsResponse struct {
	TotalTickets int `json:"totalTickets"`
}

func FromTicketView(v queries.TicketView) TicketResponse {
	return TicketResponse{ID: v.ID, Status: v.Status}
}

func FromPurchaseView(v *queries.PurchaseView) *PurchaseResponse {
	return &PurchaseResponse{
		ID:        v.ID,
		Name:      v.Name,
		Email:     v.Email,
		Phone:     v.Phone,
		TicketIDs: v.TicketIDs,
		Status:    v.Status,
		Proof:     v.Proof,
		Reference: v.Reference,
		CreatedAt: v.CreatedAt,
	}
}

func FromSettingsView(v *queries.SettingsView) *SettingsResponse {
	return &SettingsResponse{TotalTickets: v.TotalTickets}
}
