package employees

import "time"

// Employee is the canonical directory entry. Position and department are
// optional; not every backend variant populates them.
type Employee struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	PhoneNumber   string    `json:"phoneNumber"`
	Position      string    `json:"position,omitempty"`
	Department    string    `json:"department,omitempty"`
	DateOfJoining time.Time `json:"dateOfJoining"`
}

func (e Employee) FullName() string {
	if e.FirstName == "" {
		return e.LastName
	}
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

type employeeWire struct {
	ID                 string     `json:"id"`
	FirstName          string     `json:"firstName"`
	FirstNameSnake     string     `json:"first_name"`
	LastName           string     `json:"lastName"`
	LastNameSnake      string     `json:"last_name"`
	Email              string     `json:"email"`
	PhoneNumber        string     `json:"phoneNumber"`
	PhoneNumberSnake   string     `json:"phone_number"`
	Position           string     `json:"position"`
	Department         string     `json:"department"`
	DateOfJoining      *time.Time `json:"dateOfJoining"`
	DateOfJoiningSnake *time.Time `json:"date_of_joining"`
}

func (w employeeWire) canonical() Employee {
	e := Employee{
		ID:          w.ID,
		FirstName:   w.FirstName,
		LastName:    w.LastName,
		Email:       w.Email,
		PhoneNumber: w.PhoneNumber,
		Position:    w.Position,
		Department:  w.Department,
	}
	if e.FirstName == "" {
		e.FirstName = w.FirstNameSnake
	}
	if e.LastName == "" {
		e.LastName = w.LastNameSnake
	}
	if e.PhoneNumber == "" {
		e.PhoneNumber = w.PhoneNumberSnake
	}
	if w.DateOfJoining != nil {
		e.DateOfJoining = *w.DateOfJoining
	} else if w.DateOfJoiningSnake != nil {
		e.DateOfJoining = *w.DateOfJoiningSnake
	}
	return e
}
