package grade

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/shulehub/shule/core"
)

var (
	// errors
	ErrNotFound    = errors.New("grade not found")
	ErrGradeExists = errors.New("a grade with this id already exists")
)

type (
	Repository interface {
		CheckIDUniqueness(ctx context.Context, id int) error
		CreateGrade(ctx context.Context, grd Grade) (Grade, error)
		GetGrade(ctx context.Context, id int) (Grade, error)
		QueryGrades(ctx context.Context, ordering []core.DBOrdering) ([]Grade, error)
		DeleteGrade(ctx context.Context, id int) error
	}

	// TeacherChecker reports which of the given teacher IDs exist.
	// Implemented by the account service; wired in at startup.
	TeacherChecker interface {
		MissingTeachers(ctx context.Context, ids []string) ([]string, error)
	}

	Service struct {
		repo     Repository
		teachers TeacherChecker
	}
)

func NewService(repo Repository, teachers TeacherChecker) *Service {
	return &Service{repo: repo, teachers: teachers}
}

func (svc *Service) Create(ctx context.Context, ng NewGrade) (Grade, error) {
	if err := svc.repo.CheckIDUniqueness(ctx, ng.ID); err != nil {
		if errors.Cause(err) == ErrGradeExists {
			return Grade{}, core.NewConflictError(ErrGradeExists)
		}
		return Grade{}, err
	}

	if len(ng.TeacherIDs) > 0 && svc.teachers != nil {
		missing, err := svc.teachers.MissingTeachers(ctx, ng.TeacherIDs)
		if err != nil {
			return Grade{}, errors.Wrap(err, "checking teachers")
		}
		if len(missing) > 0 {
			return Grade{}, core.NewValidationError(nil, core.FieldError{
				Field: "teachers",
				Error: fmt.Sprintf("the following teachers do not exist: %s", strings.Join(missing, ", ")),
			})
		}
	}

	now := time.Now().UTC()
	grd := Grade{
		ID:         ng.ID,
		Name:       ng.Name,
		TeacherIDs: ng.TeacherIDs,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return svc.repo.CreateGrade(ctx, grd)
}

func (svc *Service) Get(ctx context.Context, id int) (Grade, error) {
	return svc.repo.GetGrade(ctx, id)
}

func (svc *Service) Query(ctx context.Context, ordering []core.DBOrdering) ([]Grade, error) {
	return svc.repo.QueryGrades(ctx, ordering)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteGrade(ctx, id)
}
