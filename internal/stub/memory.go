package stub

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type account struct {
	ID           string
	Email        string
	Name         string
	Role         string
	UserType     string
	PasswordHash []byte
}

type eventRecord struct {
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

type newsRecord struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Author    string    `json:"author"`
	Duration  string    `json:"duration"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// employeeRecord is served snake_case on purpose: the real backend does, and
// the client's boundary mapper has to cope with it.
type employeeRecord struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	PhoneNumber   string    `json:"phone_number"`
	Position      string    `json:"position,omitempty"`
	Department    string    `json:"department,omitempty"`
	DateOfJoining time.Time `json:"date_of_joining"`
}

type documentRecord struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	DocumentType  string    `json:"documentType"`
	UploadedAt    time.Time `json:"uploadedAt"`
	UploadedByID  string    `json:"uploadedById"`
	DepartmentIDs []string  `json:"departmentIds"`

	fileName    string
	contentType string
	data        []byte
}

// announcementRecord is the server-variant announcement shape, distinct from
// the client-persisted one.
type announcementRecord struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Type      string     `json:"type"`
	CreatedBy string     `json:"created_by"`
	StartsAt  *time.Time `json:"starts_at,omitempty"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type memory struct {
	mu            sync.Mutex
	accounts      map[string]*account
	events        []eventRecord
	news          []newsRecord
	employees     []employeeRecord
	documents     []documentRecord
	announcements []announcementRecord
}

func newMemory() *memory {
	return &memory{accounts: make(map[string]*account)}
}

func (m *memory) addAccount(email, password, name, role, userType string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[email] = &account{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		Role:         role,
		UserType:     userType,
		PasswordHash: hash,
	}
	return nil
}

func (m *memory) seedSampleData() {
	now := time.Now().UTC()
	m.mu.Lock()
	defer m.mu.Unlock()

	m.employees = []employeeRecord{
		{
			ID:            uuid.NewString(),
			FirstName:     "Maya",
			LastName:      "Okafor",
			Email:         "maya.okafor@example.com",
			PhoneNumber:   "+1-555-0142",
			Position:      "People Operations Lead",
			Department:    "HR",
			DateOfJoining: now.AddDate(-3, -2, 0),
		},
		{
			ID:            uuid.NewString(),
			FirstName:     "Jonas",
			LastName:      "Lindqvist",
			Email:         "jonas.lindqvist@example.com",
			PhoneNumber:   "+1-555-0178",
			Position:      "Backend Engineer",
			Department:    "Engineering",
			DateOfJoining: now.AddDate(-1, -7, 0),
		},
	}

	m.news = []newsRecord{{
		ID:        uuid.NewString(),
		Title:     "Welcome to the new intranet",
		Content:   "The portal is live. Directory, events and documents are all here.",
		Category:  "general",
		Author:    "Maya Okafor",
		CreatedAt: now.AddDate(0, 0, -7),
		UpdatedAt: now.AddDate(0, 0, -7),
	}}

	endsAt := now.AddDate(0, 1, 0)
	m.announcements = []announcementRecord{{
		ID:        uuid.NewString(),
		Title:     "Office closed on Friday",
		Content:   "Facilities maintenance; work from home.",
		Type:      "facilities",
		CreatedBy: "Maya Okafor",
		StartsAt:  &now,
		EndsAt:    &endsAt,
		CreatedAt: now.AddDate(0, 0, -2),
	}}
}
