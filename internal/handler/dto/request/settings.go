package request

type ResizeCapacityRequest struct {
	TotalTickets int `json:"totalTickets" binding:"required"`
}
