package event

import (
	"time"

	"github.com/Eddy-C127/dance-academy/core"
)

// Event types
const (
	TypeRecital     = "recital"
	TypeCompetition = "competition"
	TypeWorkshop    = "workshop"
	TypeMeeting     = "meeting"
)

// Event is an academy happening shown on the public calendar.
type Event struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Type        string    `json:"type" db:"type"`
	Location    string    `json:"location" db:"location"`
	Date        time.Time `json:"date" db:"date"` // UTC
}

type NewEvent struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Type        string    `json:"type" validate:"required,oneof=recital competition workshop meeting"`
	Location    string    `json:"location"`
	Date        time.Time `json:"date" validate:"required"`
}

func (ne *NewEvent) Validate() error {
	ne.Title = core.CleanString(ne.Title)
	ne.Description = core.CleanString(ne.Description)
	ne.Location = core.CleanString(ne.Location)
	return core.Validate.Struct(ne)
}

type QueryFilter struct {
	From  time.Time
	To    time.Time
	Limit int
}
