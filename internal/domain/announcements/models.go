package announcements

import "time"

// Announcement is the canonical shape. Two backend variants exist: the
// server one carries type/createdBy, the client-persisted one carries the
// validity window. The wire mapper folds both into this.
type Announcement struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Type      string    `json:"type,omitempty"`
	CreatedBy string    `json:"createdBy,omitempty"`
	ValidFrom time.Time `json:"validFrom"`
	ValidTo   time.Time `json:"validTo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type announcementWire struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Type           string     `json:"type"`
	CreatedBy      string     `json:"createdBy"`
	CreatedBySnake string     `json:"created_by"`
	ValidFrom      *time.Time `json:"validFrom"`
	ValidFromSnake *time.Time `json:"valid_from"`
	ValidTo        *time.Time `json:"validTo"`
	ValidToSnake   *time.Time `json:"valid_to"`
	StartsAt       *time.Time `json:"starts_at"`
	EndsAt         *time.Time `json:"ends_at"`
	CreatedAt      *time.Time `json:"createdAt"`
	CreatedAtSnake *time.Time `json:"created_at"`
	UpdatedAt      *time.Time `json:"updatedAt"`
	UpdatedAtSnake *time.Time `json:"updated_at"`
}

func (w announcementWire) canonical() Announcement {
	a := Announcement{
		ID:        w.ID,
		Title:     w.Title,
		Content:   w.Content,
		Type:      w.Type,
		CreatedBy: w.CreatedBy,
	}
	if a.CreatedBy == "" {
		a.CreatedBy = w.CreatedBySnake
	}
	a.ValidFrom = pickTime(w.ValidFrom, w.ValidFromSnake, w.StartsAt)
	a.ValidTo = pickTime(w.ValidTo, w.ValidToSnake, w.EndsAt)
	a.CreatedAt = pickTime(w.CreatedAt, w.CreatedAtSnake, nil)
	a.UpdatedAt = pickTime(w.UpdatedAt, w.UpdatedAtSnake, nil)
	return a
}

func pickTime(candidates ...*time.Time) time.Time {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return time.Time{}
}

// CreateInput is rejected client-side before any network or storage call
// when the validity window is inverted.
type CreateInput struct {
	Title     string `validate:"required"`
	Content   string `validate:"required"`
	Type      string
	CreatedBy string
	ValidFrom time.Time `validate:"required"`
	ValidTo   time.Time `validate:"required,gtefield=ValidFrom"`
}

type UpdateInput struct {
	Title     string    `validate:"required"`
	Content   string    `validate:"required"`
	ValidFrom time.Time `validate:"required"`
	ValidTo   time.Time `validate:"required,gtefield=ValidFrom"`
}
