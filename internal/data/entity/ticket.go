package entity

type TicketStatus string

const (
	TicketStatusReserved TicketStatus = "RESERVED"
	TicketStatusPaid     TicketStatus = "PAID"
)

type TicketType struct {
	Base
	Name          string `db:"name"`
	Price         int    `db:"price"`
	IsRemote      bool   `db:"is_remote"`
	IncludesHotel bool   `db:"includes_hotel"`
}

type Ticket struct {
	Base
	EnrollmentID int64        `db:"enrollment_id"`
	TicketTypeID int64        `db:"ticket_type_id"`
	Status       TicketStatus `db:"status"`
}

// GrantsHotel reports whether a ticket of type tt entitles its holder to a hotel room.
func (t *Ticket) GrantsHotel(tt *TicketType) bool {
	return t.Status == TicketStatusPaid && tt != nil && !tt.IsRemote && tt.IncludesHotel
}
