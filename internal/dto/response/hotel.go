package response

import (
	"time"

	"conference-booking/internal/data/entity"
)

type HotelResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type HotelWithRoomsResponse struct {
	HotelResponse
	Rooms []RoomResponse `json:"Rooms"`
}

func HotelToResponse(hotel *entity.Hotel) HotelResponse {
	return HotelResponse{
		ID:        hotel.ID,
		Name:      hotel.Name,
		Image:     hotel.Image,
		CreatedAt: hotel.CreatedAt,
		UpdatedAt: hotel.UpdatedAt,
	}
}

func HotelWithRoomsToResponse(hotel *entity.Hotel) HotelWithRoomsResponse {
	rooms := make([]RoomResponse, len(hotel.Rooms))
	for i, room := range hotel.Rooms {
		rooms[i] = RoomToResponse(room)
	}

	return HotelWithRoomsResponse{
		HotelResponse: HotelToResponse(hotel),
		Rooms:         rooms,
	}
}
