package entity

type Enrollment struct {
	Base
	UserID int64  `db:"user_id"`
	Name   string `db:"name"`
}
