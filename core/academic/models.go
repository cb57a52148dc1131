package academic

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/campusdesk/portal/core"
)

type Subject struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Class     ClassRank `json:"class" db:"class"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
}

// Assignment links a staff user to a subject they teach.
type Assignment struct {
	ID        string    `json:"id" db:"id"`
	StaffID   string    `json:"staff_id" db:"staff_id"`
	SubjectID string    `json:"subject_id" db:"subject_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
}

// AssignmentDetail is an Assignment joined with the staff username and its subject.
type AssignmentDetail struct {
	Assignment
	StaffUsername string    `json:"staff_username" db:"staff_username"`
	SubjectName   string    `json:"subject_name" db:"subject_name"`
	SubjectClass  ClassRank `json:"subject_class" db:"subject_class"`
}

// NewSubject contains information needed to create a new Subject.
type NewSubject struct {
	Name  string    `json:"name" validate:"required,notblank"`
	Class ClassRank `json:"class" validate:"required,classrank"`
}

func (ns *NewSubject) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Class = ClassRank(core.CleanString(string(ns.Class), true /* lower */))
	return validate.Struct(ns)
}

// UpdateSubject defines what information may be provided to modify an existing Subject.
type UpdateSubject struct {
	Name  string    `json:"name"`
	Class ClassRank `json:"class" validate:"omitempty,classrank"`
}

func (us *UpdateSubject) Validate(orig Subject, validate *validator.Validate) error {
	if name := core.CleanString(us.Name); name != "" {
		us.Name = name
	} else {
		us.Name = orig.Name
	}
	if cls := ClassRank(core.CleanString(string(us.Class), true /* lower */)); cls != "" {
		us.Class = cls
	} else {
		us.Class = orig.Class
	}
	return validate.Struct(us)
}

type NewAssignment struct {
	StaffID   string `json:"staff_id" validate:"required"`
	SubjectID string `json:"subject_id" validate:"required"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.StaffID = core.CleanString(na.StaffID)
	na.SubjectID = core.CleanString(na.SubjectID)
	return validate.Struct(na)
}
