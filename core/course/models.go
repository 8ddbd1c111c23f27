package course

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/shulehub/shule/core"
)

// Content types
const (
	ContentVideo    = "video"
	ContentDocument = "document"
	ContentImage    = "image"
	ContentAudio    = "audio"
)

// Course is a unit of teaching, uniquely keyed by its code.
// Content is an opaque reference to externally stored material.
type Course struct {
	Code         string    `json:"course_code"`
	Name         string    `json:"course_name"`
	Description  string    `json:"description,omitempty"`
	InstructorID string    `json:"instructor_id,omitempty"`
	ContentType  string    `json:"content_type,omitempty"`
	Content      string    `json:"content,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Code         string `json:"course_code" validate:"required,alphanum,min=3,max=30"`
	Name         string `json:"course_name" validate:"required,min=3,max=50"`
	Description  string `json:"description" validate:"omitempty,max=255"`
	InstructorID string `json:"instructor_id" validate:"omitempty,min=3,max=30"`
	ContentType  string `json:"content_type" validate:"omitempty,oneof=video document image audio"`
	Content      string `json:"content"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Code = core.CleanString(nc.Code)
	nc.Name = core.CleanString(nc.Name)
	nc.Description = core.CleanString(nc.Description)
	nc.InstructorID = core.CleanString(nc.InstructorID)
	return validate.Struct(nc)
}

// UpdateCourse defines what information may be provided to modify a Course.
type UpdateCourse struct {
	Name         string `json:"course_name" validate:"required,min=3,max=50"`
	Description  string `json:"description" validate:"omitempty,max=255"`
	InstructorID string `json:"instructor_id" validate:"omitempty,min=3,max=30"`
	ContentType  string `json:"content_type" validate:"omitempty,oneof=video document image audio"`
	Content      string `json:"content"`
}

func (uc *UpdateCourse) Validate(validate *validator.Validate) error {
	uc.Name = core.CleanString(uc.Name)
	uc.Description = core.CleanString(uc.Description)
	uc.InstructorID = core.CleanString(uc.InstructorID)
	return validate.Struct(uc)
}
