package domain

import (
	"time"

	"github.com/google/uuid"
)

// JobID uniquely identifies a job
type JobID = uuid.UUID

// UserID identifies the authenticated owner of a job
type UserID = uuid.UUID

// JobType enumerates the employment types a posting may carry
type JobType string

const (
	JobTypeFullTime JobType = "Full-Time"
	JobTypePartTime JobType = "Part-Time"
	JobTypeContract JobType = "Contract"
)

// JobTypes lists every accepted JobType in display order
var JobTypes = []JobType{JobTypeFullTime, JobTypePartTime, JobTypeContract}

// Valid reports whether t is one of the enumerated job types
func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract:
		return true
	default:
		return false
	}
}

// Job is a single job posting owned by the user who created it
type Job struct {
	ID          JobID     `json:"id"`
	OwnerID     UserID    `json:"owner_id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	JobType     JobType   `json:"job_type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// JobFields are the client-editable fields submitted on create
type JobFields struct {
	Title       string  `json:"title" validate:"notblank"`
	Company     string  `json:"company" validate:"notblank"`
	Location    string  `json:"location" validate:"notblank"`
	Description string  `json:"description" validate:"notblank"`
	JobType     JobType `json:"job_type" validate:"jobtype"`
}

// JobPatch carries a partial update; nil fields are left untouched
type JobPatch struct {
	Title       *string  `json:"title,omitempty" validate:"omitnil,notblank"`
	Company     *string  `json:"company,omitempty" validate:"omitnil,notblank"`
	Location    *string  `json:"location,omitempty" validate:"omitnil,notblank"`
	Description *string  `json:"description,omitempty" validate:"omitnil,notblank"`
	JobType     *JobType `json:"job_type,omitempty" validate:"omitnil,jobtype"`
}

// Empty reports whether the patch changes nothing
func (p JobPatch) Empty() bool {
	return p.Title == nil && p.Company == nil && p.Location == nil && p.Description == nil && p.JobType == nil
}

// Apply returns a copy of j with the patch fields set
func (p JobPatch) Apply(j Job) Job {
	if p.Title != nil {
		j.Title = *p.Title
	}
	if p.Company != nil {
		j.Company = *p.Company
	}
	if p.Location != nil {
		j.Location = *p.Location
	}
	if p.Description != nil {
		j.Description = *p.Description
	}
	if p.JobType != nil {
		j.JobType = *p.JobType
	}
	return j
}

// Session is the caller's authenticated identity
type Session struct {
	UserID    UserID
	SessionID string
}

// Authenticated reports whether s carries a usable identity
func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != uuid.Nil
}
