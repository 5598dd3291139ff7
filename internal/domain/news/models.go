package news

import "time"

// Item is the canonical news shape. Image carries the backend's
// base64-encoded bytes untouched.
type Item struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Author    string    `json:"author"`
	Duration  string    `json:"duration"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type itemWire struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Category       string     `json:"category"`
	NewsType       string     `json:"newsType"`
	Author         string     `json:"author"`
	CreatedBy      string     `json:"createdBy"`
	Duration       string     `json:"duration"`
	Image          string     `json:"image"`
	Date           *time.Time `json:"date"`
	CreatedAt      *time.Time `json:"createdAt"`
	CreatedAtSnake *time.Time `json:"created_at"`
	UpdatedAt      *time.Time `json:"updatedAt"`
	UpdatedAtSnake *time.Time `json:"updated_at"`
}

func (w itemWire) canonical() Item {
	item := Item{
		ID:       w.ID,
		Title:    w.Title,
		Content:  w.Content,
		Category: w.Category,
		Author:   w.Author,
		Duration: w.Duration,
		Image:    w.Image,
	}
	if item.Category == "" {
		item.Category = w.NewsType
	}
	if item.Author == "" {
		item.Author = w.CreatedBy
	}
	switch {
	case w.CreatedAt != nil:
		item.CreatedAt = *w.CreatedAt
	case w.CreatedAtSnake != nil:
		item.CreatedAt = *w.CreatedAtSnake
	case w.Date != nil:
		item.CreatedAt = *w.Date
	}
	switch {
	case w.UpdatedAt != nil:
		item.UpdatedAt = *w.UpdatedAt
	case w.UpdatedAtSnake != nil:
		item.UpdatedAt = *w.UpdatedAtSnake
	}
	return item
}

// Attachment is the optional image file submitted with a news item.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

type CreateInput struct {
	Title     string `validate:"required"`
	Content   string `validate:"required"`
	CreatedBy string
	NewsType  string `validate:"required"`
	File      *Attachment
}

type UpdateInput struct {
	Title    string `validate:"required"`
	Content  string `validate:"required"`
	NewsType string
	File     *Attachment
}
