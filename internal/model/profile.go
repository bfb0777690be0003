package model

// Profile ids are a closed enumeration; the reports surface is gated on the
// administrator profile.
const (
	ProfileAdministrator = 1
	ProfileAttendant     = 2
)

type Profile struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"nome" db:"nome"`
}
