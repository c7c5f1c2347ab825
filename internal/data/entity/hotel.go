package entity

type Hotel struct {
	Base
	Name  string `db:"name"`
	Image string `db:"image"`

	// Rooms is only populated by hotel-with-rooms lookups.
	Rooms []*Room `db:"-"`
}
