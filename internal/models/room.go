package models

import "time"

// RoomType categorises teaching spaces.
type RoomType string

const (
	RoomClassroom   RoomType = "CLASSROOM"
	RoomLab         RoomType = "LAB"
	RoomSeminarHall RoomType = "SEMINAR_HALL"
)

// Room represents a bookable teaching space.
type Room struct {
	ID        string    `db:"id" json:"id"`
	Number    string    `db:"room_number" json:"room_number"`
	Building  string    `db:"building" json:"building"`
	Capacity  int       `db:"capacity" json:"capacity"`
	Type      RoomType  `db:"room_type" json:"room_type"`
	Available bool      `db:"is_available" json:"is_available"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
