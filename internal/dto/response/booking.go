package response

import (
	"time"

	"conference-booking/internal/data/entity"
)

type RoomResponse struct {
	ID        int64     `json:"id"`
	HotelID   int64     `json:"hotelId"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingResponse is the caller's booking together with its room.
type BookingResponse struct {
	ID        int64         `json:"id"`
	Room      *RoomResponse `json:"Room"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type BookingIDResponse struct {
	BookingID int64 `json:"bookingId"`
}

// Helper converters
func RoomToResponse(room *entity.Room) RoomResponse {
	return RoomResponse{
		ID:        room.ID,
		HotelID:   room.HotelID,
		Name:      room.Name,
		Capacity:  room.Capacity,
		CreatedAt: room.CreatedAt,
		UpdatedAt: room.UpdatedAt,
	}
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	resp := BookingResponse{
		ID:        booking.ID,
		CreatedAt: booking.CreatedAt,
		UpdatedAt: booking.UpdatedAt,
	}

	if booking.Room != nil {
		room := RoomToResponse(booking.Room)
		resp.Room = &room
	}

	return resp
}
