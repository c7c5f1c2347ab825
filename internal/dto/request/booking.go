package request

// BookingRequest is the body of both booking creation and room change.
type BookingRequest struct {
	RoomID int64 `json:"roomId" validate:"required,min=1"`
}
