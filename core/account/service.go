package account

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/shulehub/shule/core"
)

var (
	// errors
	ErrNotFound             = errors.New("identity not found")
	ErrIdentityExists       = errors.New("an identity with this id already exists")
	ErrAuthenticationFailed = errors.New("authentication failed")
)

type (
	Repository interface {
		CheckIDUniqueness(ctx context.Context, role, id string) error
		CreateIdentity(ctx context.Context, idt Identity) (Identity, error)
		GetIdentity(ctx context.Context, role, id string) (Identity, error)
		// QueryIdentities returns all identities of a role, optionally ordered.
		QueryIdentities(ctx context.Context, role string, ordering []core.DBOrdering) ([]Identity, error)
		UpdateIdentity(ctx context.Context, idt Identity) (Identity, error)
		DeleteIdentity(ctx context.Context, role, id string) error
	}

	// CourseAssigner claims existing courses for an instructor.
	// Implemented by the course service; wired in at startup.
	CourseAssigner interface {
		AssignInstructor(ctx context.Context, instructorID string, codes []string) error
	}

	Service struct {
		repo    Repository
		courses CourseAssigner
		mail    core.EmailService
		conf    *core.Config
	}
)

func NewService(repo Repository, courses CourseAssigner, mail core.EmailService, conf *core.Config) *Service {
	return &Service{
		repo:    repo,
		courses: courses,
		mail:    mail,
		conf:    conf,
	}
}

func (svc *Service) checkUniqueness(ctx context.Context, role, id string) error {
	if err := svc.repo.CheckIDUniqueness(ctx, role, id); err != nil {
		if errors.Cause(err) == ErrIdentityExists {
			return core.NewConflictError(ErrIdentityExists)
		}
		return err
	}
	return nil
}

func (svc *Service) create(ctx context.Context, idt Identity, pwd string) (Identity, error) {
	now := time.Now().UTC()
	idt.CreatedAt = now
	idt.UpdatedAt = now
	if err := idt.SetPassword(pwd); err != nil {
		return Identity{}, errors.Wrap(err, "hashing password")
	}

	idt, err := svc.repo.CreateIdentity(ctx, idt)
	if err != nil {
		return Identity{}, errors.Wrap(err, "creating identity")
	}
	svc.sendWelcomeEmail(idt)
	return idt, nil
}

func (svc *Service) RegisterStudent(ctx context.Context, ns NewStudent) (Identity, error) {
	if err := svc.checkUniqueness(ctx, RoleStudent, ns.ID); err != nil {
		return Identity{}, err
	}
	return svc.create(ctx, Identity{
		ID:        ns.ID,
		FirstName: ns.FirstName,
		LastName:  ns.LastName,
		Email:     ns.Email,
		Role:      RoleStudent,
		Age:       ns.Age,
		Gender:    ns.Gender,
		Grade:     ns.Grade,
	}, ns.Password)
}

func (svc *Service) RegisterTeacher(ctx context.Context, nt NewTeacher) (Identity, error) {
	if err := svc.checkUniqueness(ctx, RoleTeacher, nt.ID); err != nil {
		return Identity{}, err
	}
	if len(nt.Courses) > 0 && svc.courses != nil {
		if err := svc.courses.AssignInstructor(ctx, nt.ID, nt.Courses); err != nil {
			return Identity{}, err
		}
	}
	return svc.create(ctx, Identity{
		ID:        nt.ID,
		FirstName: nt.FirstName,
		LastName:  nt.LastName,
		Email:     nt.Email,
		Role:      RoleTeacher,
		Age:       nt.Age,
		Gender:    nt.Gender,
	}, nt.Password)
}

func (svc *Service) RegisterAdmin(ctx context.Context, na NewAdmin) (Identity, error) {
	if err := svc.checkUniqueness(ctx, RoleAdmin, na.ID); err != nil {
		return Identity{}, err
	}
	return svc.create(ctx, Identity{
		ID:        na.ID,
		FirstName: na.FirstName,
		LastName:  na.LastName,
		Email:     na.Email,
		Role:      RoleAdmin,
	}, na.Password)
}

// Authenticate verifies credentials for an identity of the given role.
// Any miss (unknown id or wrong password) fails with ErrAuthenticationFailed;
// the cause is deliberately not distinguishable by the caller.
func (svc *Service) Authenticate(ctx context.Context, role, id, pwd string) (Identity, error) {
	idt, err := svc.repo.GetIdentity(ctx, role, core.CleanString(id))
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return Identity{}, ErrAuthenticationFailed
		}
		return Identity{}, errors.Wrap(err, "finding identity")
	}
	if err := idt.CheckPassword(pwd); err != nil {
		return Identity{}, ErrAuthenticationFailed
	}
	return idt, nil
}

func (svc *Service) Get(ctx context.Context, role, id string) (Identity, error) {
	return svc.repo.GetIdentity(ctx, role, id)
}

func (svc *Service) Query(ctx context.Context, role string, ordering []core.DBOrdering) ([]Identity, error) {
	return svc.repo.QueryIdentities(ctx, role, ordering)
}

func (svc *Service) UpdateStudent(ctx context.Context, id string, us UpdateStudent) (Identity, error) {
	idt, err := svc.repo.GetIdentity(ctx, RoleStudent, id)
	if err != nil {
		return Identity{}, err
	}
	if us.FirstName != "" {
		idt.FirstName = us.FirstName
	}
	if us.LastName != "" {
		idt.LastName = us.LastName
	}
	if us.Age != 0 {
		idt.Age = us.Age
	}
	if us.Grade != 0 {
		idt.Grade = us.Grade
	}
	if us.Gender != "" {
		idt.Gender = us.Gender
	}
	return svc.saveUpdate(ctx, idt, us.Password)
}

func (svc *Service) UpdateTeacher(ctx context.Context, id string, utc UpdateTeacher) (Identity, error) {
	idt, err := svc.repo.GetIdentity(ctx, RoleTeacher, id)
	if err != nil {
		return Identity{}, err
	}
	if utc.FirstName != "" {
		idt.FirstName = utc.FirstName
	}
	if utc.LastName != "" {
		idt.LastName = utc.LastName
	}
	if utc.Age != 0 {
		idt.Age = utc.Age
	}
	if utc.Gender != "" {
		idt.Gender = utc.Gender
	}
	if len(utc.Courses) > 0 && svc.courses != nil {
		if err := svc.courses.AssignInstructor(ctx, idt.ID, utc.Courses); err != nil {
			return Identity{}, err
		}
	}
	return svc.saveUpdate(ctx, idt, utc.Password)
}

func (svc *Service) saveUpdate(ctx context.Context, idt Identity, pwd string) (Identity, error) {
	if pwd != "" {
		if err := idt.SetPassword(pwd); err != nil {
			return Identity{}, errors.Wrap(err, "hashing password")
		}
	}
	idt.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateIdentity(ctx, idt)
}

func (svc *Service) Delete(ctx context.Context, role, id string) error {
	return svc.repo.DeleteIdentity(ctx, role, id)
}

// MissingTeachers returns the subset of ids with no teacher identity.
func (svc *Service) MissingTeachers(ctx context.Context, ids []string) ([]string, error) {
	var missing []string
	for _, id := range ids {
		if _, err := svc.repo.GetIdentity(ctx, RoleTeacher, id); err != nil {
			if errors.Cause(err) == ErrNotFound {
				missing = append(missing, id)
				continue
			}
			return nil, err
		}
	}
	return missing, nil
}

func (svc *Service) sendWelcomeEmail(idt Identity) {
	if svc.mail == nil || idt.Email == "" {
		return
	}
	svc.mail.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: idt.Name(), Address: idt.Email}},
		Subject: fmt.Sprintf("Welcome to %s", svc.conf.AppName),
		BodyStr: fmt.Sprintf("Hi %s,\n\nYour %s account has been created.", idt.Name(), svc.conf.AppName),
	})
}
