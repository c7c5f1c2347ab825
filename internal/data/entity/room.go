package entity

type Room struct {
	Base
	HotelID int64  `db:"hotel_id"`
	Name    string `db:"name"`
	// Capacity counts the remaining reservable slots; the database keeps it >= 0.
	Capacity int `db:"capacity"`
}

// IsFull reports whether the room cannot take another occupant.
func (r *Room) IsFull() bool {
	return r.Capacity <= 0
}
