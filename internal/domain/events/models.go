package events

import "time"

// Event is the canonical client-side shape. Backend variants are converted
// at the boundary by eventWire so nothing downstream branches on field names.
type Event struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	EventType       string    `json:"eventType"`
	MaxParticipants int       `json:"maxParticipants"`
	Status          string    `json:"status"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	Location        string    `json:"location"`
	IsApproved      bool      `json:"isApproved"`
	CreatedBy       string    `json:"createdBy"`
	CreatedAt       time.Time `json:"createdAt"`
}

// eventWire tolerates the camelCase and snake_case field spellings the mock
// and real backends disagree on.
type eventWire struct {
	ID                   string     `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	EventType            string     `json:"eventType"`
	EventTypeSnake       string     `json:"event_type"`
	MaxParticipants      int        `json:"maxParticipants"`
	MaxParticipantsSnake int        `json:"max_participants"`
	Status               string     `json:"status"`
	StartTime            *time.Time `json:"startTime"`
	StartTimeSnake       *time.Time `json:"start_time"`
	EndTime              *time.Time `json:"endTime"`
	EndTimeSnake         *time.Time `json:"end_time"`
	Location             string     `json:"location"`
	IsApproved           bool       `json:"isApproved"`
	IsApprovedSnake      bool       `json:"is_approved"`
	CreatedBy            string     `json:"createdBy"`
	CreatedBySnake       string     `json:"created_by"`
	CreatedAt            *time.Time `json:"createdAt"`
	CreatedAtSnake       *time.Time `json:"created_at"`
}

func (w eventWire) canonical() Event {
	e := Event{
		ID:              w.ID,
		Title:           w.Title,
		Description:     w.Description,
		EventType:       w.EventType,
		MaxParticipants: w.MaxParticipants,
		Status:          w.Status,
		Location:        w.Location,
		IsApproved:      w.IsApproved || w.IsApprovedSnake,
		CreatedBy:       w.CreatedBy,
	}
	if e.EventType == "" {
		e.EventType = w.EventTypeSnake
	}
	if e.MaxParticipants == 0 {
		e.MaxParticipants = w.MaxParticipantsSnake
	}
	if e.CreatedBy == "" {
		e.CreatedBy = w.CreatedBySnake
	}
	e.StartTime = pickTime(w.StartTime, w.StartTimeSnake)
	e.EndTime = pickTime(w.EndTime, w.EndTimeSnake)
	e.CreatedAt = pickTime(w.CreatedAt, w.CreatedAtSnake)
	return e
}

func pickTime(primary, fallback *time.Time) time.Time {
	if primary != nil {
		return *primary
	}
	if fallback != nil {
		return *fallback
	}
	return time.Time{}
}

// CreateEventInput is validated client-side before any request goes out.
type CreateEventInput struct {
	Title           string    `json:"title" validate:"required"`
	Description     string    `json:"description"`
	EventType       string    `json:"eventType" validate:"required"`
	MaxParticipants int       `json:"maxParticipants" validate:"gte=0"`
	StartTime       time.Time `json:"startTime" validate:"required"`
	EndTime         time.Time `json:"endTime" validate:"required,gtefield=StartTime"`
	Location        string    `json:"location"`
	CreatedBy       string    `json:"createdBy"`
}

// Patch carries the fields of a partial update. Nil fields keep the cached
// value; the merged full object is what goes over the wire.
type Patch struct {
	Title           *string
	Description     *string
	EventType       *string
	MaxParticipants *int
	Status          *string
	StartTime       *time.Time
	EndTime         *time.Time
	Location        *string
	IsApproved      *bool
}

func (p Patch) apply(e Event) Event {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.EventType != nil {
		e.EventType = *p.EventType
	}
	if p.MaxParticipants != nil {
		e.MaxParticipants = *p.MaxParticipants
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.StartTime != nil {
		e.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		e.EndTime = *p.EndTime
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.IsApproved != nil {
		e.IsApproved = *p.IsApproved
	}
	return e
}
