package documents

import (
	"strings"
	"time"
)

// Document is the canonical shape of a shared document. FileData is only
// populated on paths that carry the content; listings leave it empty.
type Document struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	DocumentType  string    `json:"documentType"`
	UploadedAt    time.Time `json:"uploadedAt"`
	UploadedByID  string    `json:"uploadedById"`
	FileData      string    `json:"fileData,omitempty"`
	DepartmentIDs []string  `json:"departmentIds"`
}

type documentWire struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	DocumentType      string     `json:"documentType"`
	DocumentTypeSnake string     `json:"document_type"`
	UploadedAt        *time.Time `json:"uploadedAt"`
	UploadedAtSnake   *time.Time `json:"uploaded_at"`
	UploadedByID      string     `json:"uploadedById"`
	UploadedByIDSnake string     `json:"uploaded_by_id"`
	FileData          string     `json:"fileData"`
	DepartmentIDs     []string   `json:"departmentIds"`
}

func (w documentWire) canonical() Document {
	d := Document{
		ID:            w.ID,
		Title:         w.Title,
		Description:   w.Description,
		DocumentType:  w.DocumentType,
		UploadedByID:  w.UploadedByID,
		FileData:      w.FileData,
		DepartmentIDs: w.DepartmentIDs,
	}
	if d.DocumentType == "" {
		d.DocumentType = w.DocumentTypeSnake
	}
	if d.UploadedByID == "" {
		d.UploadedByID = w.UploadedByIDSnake
	}
	if w.UploadedAt != nil {
		d.UploadedAt = *w.UploadedAt
	} else if w.UploadedAtSnake != nil {
		d.UploadedAt = *w.UploadedAtSnake
	}
	return d
}

type UploadInput struct {
	Title         string `validate:"required"`
	Description   string
	DocumentType  string `validate:"required"`
	UploadedByID  string
	DepartmentIDs []string
	FileName      string `validate:"required"`
	ContentType   string
	Data          []byte `validate:"required"`
}

func (in UploadInput) departmentField() string {
	return strings.Join(in.DepartmentIDs, ",")
}
