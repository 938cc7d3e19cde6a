package models

import "time"

// ProfessorContact is the contact data carried on a mesa event for one
// assigned professor. Email/Phone may be empty when not on file.
type ProfessorContact struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// MesaTask is one queued dispatch unit: a mesa-assignment event plus the
// professors to notify about it.
type MesaTask struct {
	RequestID  string
	MesaID     string
	Subject    string
	Body       string
	ExamDate   time.Time
	URL        string
	Professors []ProfessorContact
}
