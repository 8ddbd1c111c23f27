package grade

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/shulehub/shule/core"
)

// Grade is a class level grouping a set of teachers.
type Grade struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	TeacherIDs []string  `json:"teachers,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewGrade contains information needed to register a new Grade.
type NewGrade struct {
	ID         int      `json:"id" validate:"required,min=1"`
	Name       string   `json:"name" validate:"required,min=3,max=30"`
	TeacherIDs []string `json:"teachers" validate:"omitempty,dive,min=3,max=30"`
}

func (ng *NewGrade) Validate(validate *validator.Validate) error {
	ng.Name = core.CleanString(ng.Name)
	return validate.Struct(ng)
}
