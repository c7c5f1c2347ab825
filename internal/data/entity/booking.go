package entity

type Booking struct {
	Base
	UserID int64 `db:"user_id"`
	RoomID int64 `db:"room_id"`

	// Room is only populated by the per-user lookup.
	Room *Room `db:"-"`
}
