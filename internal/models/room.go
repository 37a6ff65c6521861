package models

// Room is the subset of the room directory a booking needs: the stable id
// and the location snapshot copied onto new bookings.
type Room struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}
