package account

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/shulehub/shule/core"
)

// Roles
const (
	RoleStudent = "STUDENT"
	RoleTeacher = "TEACHER"
	RoleAdmin   = "ADMIN"
)

// Genders
const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
)

var Roles = []string{RoleStudent, RoleTeacher, RoleAdmin}

// Identity is a persisted user record: a Student, Teacher or Admin.
// The ID is supplied by the caller and unique within its role.
type Identity struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email,omitempty"`
	Role         string    `json:"role"`
	Age          int       `json:"age,omitempty"`
	Gender       string    `json:"gender,omitempty"`
	Grade        int       `json:"grade,omitempty"` // students only
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (idt *Identity) Name() string {
	if idt.LastName == "" {
		return idt.FirstName
	}
	return idt.FirstName + " " + idt.LastName
}

func (idt *Identity) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	idt.PasswordHash = hash
	return nil
}

func (idt *Identity) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(idt.PasswordHash, []byte(pwd))
}

func (idt *Identity) IsAdmin() bool {
	return idt.Role == RoleAdmin
}

// NewStudent contains information needed to register a new student.
type NewStudent struct {
	ID        string `json:"id" validate:"required,min=3,max=30"`
	FirstName string `json:"first_name" validate:"required,min=3,max=30"`
	LastName  string `json:"last_name" validate:"required,min=3,max=30"`
	Email     string `json:"email" validate:"omitempty,email"`
	Password  string `json:"password" validate:"required"`
	Age       int    `json:"age" validate:"required,min=7"`
	Grade     int    `json:"grade" validate:"required"`
	Gender    string `json:"gender" validate:"required,gender"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.ID = core.CleanString(ns.ID)
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.LastName = core.CleanString(ns.LastName)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	return validate.Struct(ns)
}

// NewTeacher contains information needed to register a new teacher.
// Courses lists existing course codes the teacher will instruct.
type NewTeacher struct {
	ID        string   `json:"id" validate:"required,min=3,max=30"`
	FirstName string   `json:"first_name" validate:"required,min=3,max=30"`
	LastName  string   `json:"last_name" validate:"required,min=3,max=30"`
	Email     string   `json:"email" validate:"omitempty,email"`
	Password  string   `json:"password" validate:"required"`
	Age       int      `json:"age" validate:"required,min=18"`
	Gender    string   `json:"gender" validate:"required,gender"`
	Courses   []string `json:"courses" validate:"omitempty,dive,min=3,max=30"`
}

func (nt *NewTeacher) Validate(validate *validator.Validate) error {
	nt.ID = core.CleanString(nt.ID)
	nt.FirstName = core.CleanString(nt.FirstName)
	nt.LastName = core.CleanString(nt.LastName)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	return validate.Struct(nt)
}

// NewAdmin contains information needed to register a new admin.
type NewAdmin struct {
	ID        string `json:"id" validate:"required,min=3,max=30"`
	FirstName string `json:"first_name" validate:"required,min=3,max=30"`
	LastName  string `json:"last_name" validate:"required,min=3,max=30"`
	Email     string `json:"email" validate:"omitempty,email"`
	Password  string `json:"password" validate:"required"`
}

func (na *NewAdmin) Validate(validate *validator.Validate) error {
	na.ID = core.CleanString(na.ID)
	na.FirstName = core.CleanString(na.FirstName)
	na.LastName = core.CleanString(na.LastName)
	na.Email = core.CleanString(na.Email, true /* lower */)
	return validate.Struct(na)
}

// UpdateStudent defines what information may be provided to modify a student.
// A zero field is left unchanged; a new password is re-hashed on save.
type UpdateStudent struct {
	FirstName string `json:"first_name" validate:"omitempty,min=3,max=30"`
	LastName  string `json:"last_name" validate:"omitempty,min=3,max=30"`
	Password  string `json:"password"`
	Age       int    `json:"age" validate:"omitempty,min=7"`
	Grade     int    `json:"grade"`
	Gender    string `json:"gender" validate:"omitempty,gender"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	us.FirstName = core.CleanString(us.FirstName)
	us.LastName = core.CleanString(us.LastName)
	return validate.Struct(us)
}

// UpdateTeacher defines what information may be provided to modify a teacher.
type UpdateTeacher struct {
	FirstName string   `json:"first_name" validate:"omitempty,min=3,max=30"`
	LastName  string   `json:"last_name" validate:"omitempty,min=3,max=30"`
	Password  string   `json:"password"`
	Age       int      `json:"age" validate:"omitempty,min=18"`
	Gender    string   `json:"gender" validate:"omitempty,gender"`
	Courses   []string `json:"courses" validate:"omitempty,dive,min=3,max=30"`
}

func (utc *UpdateTeacher) Validate(validate *validator.Validate) error {
	utc.FirstName = core.CleanString(utc.FirstName)
	utc.LastName = core.CleanString(utc.LastName)
	return validate.Struct(utc)
}

// Login carries credentials for any identity kind.
type Login struct {
	ID       string `json:"id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (l *Login) Validate(validate *validator.Validate) error {
	l.ID = core.CleanString(l.ID)
	return validate.Struct(l)
}

// InitValidators registers account-specific validators and translations.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	registerValidators(validate, translator)
}
