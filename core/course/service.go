package course

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
	ErrNotFound     = errors.New("course not found")
	ErrCourseExists = errors.New("a course with this code already exists")
)

type (
	Repository interface {
		CheckCodeUniqueness(ctx context.Context, code string) error
		CreateCourse(ctx context.Context, crs Course) (Course, error)
		GetCourse(ctx context.Context, code string) (Course, error)
		QueryCourses(ctx context.Context, ordering []core.DBOrdering) ([]Course, error)
		QueryCoursesByCode(ctx context.Context, codes []string) ([]Course, error)
		UpdateCourse(ctx context.Context, crs Course) (Course, error)
		SetInstructor(ctx context.Context, instructorID string, codes []string) error
		DeleteCourse(ctx context.Context, code string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nc NewCourse) (Course, error) {
	if err := svc.repo.CheckCodeUniqueness(ctx, nc.Code); err != nil {
		if errors.Cause(err) == ErrCourseExists {
			return Course{}, core.NewConflictError(ErrCourseExists)
		}
		return Course{}, err
	}

	now := time.Now().UTC()
	crs := Course{
		Code:         nc.Code,
		Name:         nc.Name,
		Description:  nc.Description,
		InstructorID: nc.InstructorID,
		ContentType:  nc.ContentType,
		Content:      nc.Content,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return svc.repo.CreateCourse(ctx, crs)
}

func (svc *Service) Get(ctx context.Context, code string) (Course, error) {
	return svc.repo.GetCourse(ctx, code)
}

func (svc *Service) Query(ctx context.Context, ordering []core.DBOrdering) ([]Course, error) {
	return svc.repo.QueryCourses(ctx, ordering)
}

func (svc *Service) Update(ctx context.Context, code string, uc UpdateCourse) (Course, error) {
	crs, err := svc.repo.GetCourse(ctx, code)
	if err != nil {
		return Course{}, err
	}
	crs.Name = uc.Name
	crs.Description = uc.Description
	crs.InstructorID = uc.InstructorID
	crs.ContentType = uc.ContentType
	if uc.Content != "" {
		crs.Content = uc.Content
	}
	crs.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateCourse(ctx, crs)
}

func (svc *Service) Delete(ctx context.Context, code string) error {
	return svc.repo.DeleteCourse(ctx, code)
}

// AssignInstructor claims existing courses for an instructor. All codes must
// refer to existing courses; missing codes fail validation without any write.
func (svc *Service) AssignInstructor(ctx context.Context, instructorID string, codes []string) error {
	found, err := svc.repo.QueryCoursesByCode(ctx, codes)
	if err != nil {
		return errors.Wrap(err, "querying courses by code")
	}

	existing := make(map[string]bool, len(found))
	for _, crs := range found {
		existing[crs.Code] = true
	}
	var missing []string
	for _, code := range codes {
		if !existing[code] {
			missing = append(missing, code)
		}
	}
	if len(missing) > 0 {
		return core.NewValidationError(nil, core.FieldError{
			Field: "courses",
			Error: fmt.Sprintf("the following courses do not exist: %s", strings.Join(missing, ", ")),
		})
	}

	return svc.repo.SetInstructor(ctx, instructorID, codes)
}
