package account

import (
	"context"
	"testing"

	"github.com/shulehub/shule/core"
)

// fakeRepo is a minimal in-memory Repository for service tests.
type fakeRepo struct {
	table map[string]Identity
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{table: make(map[string]Identity)}
}

func (repo *fakeRepo) key(role, id string) string { return role + ":" + id }

func (repo *fakeRepo) CheckIDUniqueness(ctx context.Context, role, id string) error {
	if _, ok := repo.table[repo.key(role, id)]; ok {
		return ErrIdentityExists
	}
	return nil
}

func (repo *fakeRepo) CreateIdentity(ctx context.Context, idt Identity) (Identity, error) {
	repo.table[repo.key(idt.Role, idt.ID)] = idt
	return idt, nil
}

func (repo *fakeRepo) GetIdentity(ctx context.Context, role, id string) (Identity, error) {
	if idt, ok := repo.table[repo.key(role, id)]; ok {
		return idt, nil
	}
	return Identity{}, ErrNotFound
}

func (repo *fakeRepo) QueryIdentities(ctx context.Context, role string, _ []core.DBOrdering) ([]Identity, error) {
	var identities []Identity
	for _, idt := range repo.table {
		if idt.Role == role {
			identities = append(identities, idt)
		}
	}
	return identities, nil
}

func (repo *fakeRepo) UpdateIdentity(ctx context.Context, idt Identity) (Identity, error) {
	if _, ok := repo.table[repo.key(idt.Role, idt.ID)]; !ok {
		return Identity{}, ErrNotFound
	}
	repo.table[repo.key(idt.Role, idt.ID)] = idt
	return idt, nil
}

func (repo *fakeRepo) DeleteIdentity(ctx context.Context, role, id string) error {
	if _, ok := repo.table[repo.key(role, id)]; !ok {
		return ErrNotFound
	}
	delete(repo.table, repo.key(role, id))
	return nil
}

// fakeAssigner records course assignments.
type fakeAssigner struct {
	assigned map[string][]string
	err      error
}

func (fa *fakeAssigner) AssignInstructor(ctx context.Context, instructorID string, codes []string) error {
	if fa.err != nil {
		return fa.err
	}
	if fa.assigned == nil {
		fa.assigned = make(map[string][]string)
	}
	fa.assigned[instructorID] = codes
	return nil
}

func testService() (*Service, *fakeRepo, *fakeAssigner) {
	repo := newFakeRepo()
	assigner := new(fakeAssigner)
	conf := &core.Config{AppName: "Shule"}
	return NewService(repo, assigner, nil, conf), repo, assigner
}

func TestService_RegisterStudent(t *testing.T) {
	svc, _, _ := testService()
	ctx := context.Background()

	ns := NewStudent{
		ID:        "stud1",
		FirstName: "Jane",
		LastName:  "Doe",
		Password:  "Passw0rd",
		Age:       12,
		Grade:     6,
		Gender:    GenderFemale,
	}

	idt, err := svc.RegisterStudent(ctx, ns)
	if err != nil {
		t.Fatalf("RegisterStudent() failed: %v", err)
	}
	if idt.Role != RoleStudent {
		t.Errorf("role = %q; want %q", idt.Role, RoleStudent)
	}
	if err := idt.CheckPassword(ns.Password); err != nil {
		t.Errorf("stored hash does not verify the password: %v", err)
	}
	if idt.CreatedAt.IsZero() || idt.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}

	// same id again conflicts
	if _, err := svc.RegisterStudent(ctx, ns); err == nil {
		t.Fatal("RegisterStudent() passed on a duplicate id")
	} else if _, ok := err.(*core.ConflictError); !ok {
		t.Errorf("duplicate error = %T; want *core.ConflictError", err)
	}

	// a teacher may reuse the id; uniqueness is per role
	nt := NewTeacher{
		ID:        "stud1",
		FirstName: "Ada",
		LastName:  "Wong",
		Password:  "Chalkb0ard",
		Age:       34,
		Gender:    GenderFemale,
	}
	if _, err := svc.RegisterTeacher(ctx, nt); err != nil {
		t.Errorf("RegisterTeacher() with the same id failed: %v", err)
	}
}

func TestService_RegisterTeacher_assignsCourses(t *testing.T) {
	svc, _, assigner := testService()
	ctx := context.Background()

	nt := NewTeacher{
		ID:        "teach1",
		FirstName: "Ada",
		LastName:  "Wong",
		Password:  "Chalkb0ard",
		Age:       34,
		Gender:    GenderFemale,
		Courses:   []string{"MATH101", "BIO201"},
	}
	if _, err := svc.RegisterTeacher(ctx, nt); err != nil {
		t.Fatalf("RegisterTeacher() failed: %v", err)
	}
	if got := assigner.assigned["teach1"]; len(got) != 2 {
		t.Errorf("assigned courses = %v; want %v", got, nt.Courses)
	}

	// a failed assignment aborts the registration
	assigner.err = core.NewValidationError(nil, core.FieldError{Field: "courses", Error: "nope"})
	nt.ID = "teach2"
	if _, err := svc.RegisterTeacher(ctx, nt); err == nil {
		t.Fatal("RegisterTeacher() passed despite a failed course assignment")
	}
	if _, err := svc.Get(ctx, RoleTeacher, "teach2"); err != ErrNotFound {
		t.Error("identity was created despite a failed course assignment")
	}
}

func TestService_Authenticate(t *testing.T) {
	svc, _, _ := testService()
	ctx := context.Background()

	if _, err := svc.RegisterStudent(ctx, NewStudent{
		ID: "stud1", FirstName: "Jane", LastName: "Doe",
		Password: "Passw0rd", Age: 12, Grade: 6, Gender: GenderFemale,
	}); err != nil {
		t.Fatalf("RegisterStudent() failed: %v", err)
	}

	tests := []struct {
		name    string
		role    string
		id      string
		pwd     string
		wantErr error
	}{
		{name: "ok", role: RoleStudent, id: "stud1", pwd: "Passw0rd"},
		{name: "wrong password", role: RoleStudent, id: "stud1", pwd: "WrongPwd1", wantErr: ErrAuthenticationFailed},
		{name: "unknown id", role: RoleStudent, id: "ghost", pwd: "Passw0rd", wantErr: ErrAuthenticationFailed},
		{name: "wrong role", role: RoleAdmin, id: "stud1", pwd: "Passw0rd", wantErr: ErrAuthenticationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idt, err := svc.Authenticate(ctx, tt.role, tt.id, tt.pwd)
			if err != tt.wantErr {
				t.Fatalf("Authenticate() error = %v; wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && idt.ID != tt.id {
				t.Errorf("Authenticate() id = %q; want %q", idt.ID, tt.id)
			}
		})
	}
}

func TestService_UpdateStudent(t *testing.T) {
	svc, _, _ := testService()
	ctx := context.Background()

	idt, err := svc.RegisterStudent(ctx, NewStudent{
		ID: "stud1", FirstName: "Jane", LastName: "Doe",
		Password: "Passw0rd", Age: 12, Grade: 6, Gender: GenderFemale,
	})
	if err != nil {
		t.Fatalf("RegisterStudent() failed: %v", err)
	}

	// partial update leaves other fields alone
	updated, err := svc.UpdateStudent(ctx, idt.ID, UpdateStudent{FirstName: "Janet", Grade: 7})
	if err != nil {
		t.Fatalf("UpdateStudent() failed: %v", err)
	}
	if updated.FirstName != "Janet" || updated.Grade != 7 {
		t.Errorf("unexpected update result: %+v", updated)
	}
	if updated.LastName != "Doe" || updated.Age != 12 {
		t.Errorf("untouched fields changed: %+v", updated)
	}
	if err := updated.CheckPassword("Passw0rd"); err != nil {
		t.Error("password changed on a non-password update")
	}

	// password change re-hashes
	updated, err = svc.UpdateStudent(ctx, idt.ID, UpdateStudent{Password: "NewPassw0rd"})
	if err != nil {
		t.Fatalf("UpdateStudent() failed: %v", err)
	}
	if err := updated.CheckPassword("NewPassw0rd"); err != nil {
		t.Error("new password does not verify")
	}
	if err := updated.CheckPassword("Passw0rd"); err == nil {
		t.Error("old password still verifies")
	}

	if _, err := svc.UpdateStudent(ctx, "ghost", UpdateStudent{FirstName: "No"}); err != ErrNotFound {
		t.Errorf("UpdateStudent() error = %v; want ErrNotFound", err)
	}
}

func TestService_MissingTeachers(t *testing.T) {
	svc, _, _ := testService()
	ctx := context.Background()

	if _, err := svc.RegisterTeacher(ctx, NewTeacher{
		ID: "teach1", FirstName: "Ada", LastName: "Wong",
		Password: "Chalkb0ard", Age: 34, Gender: GenderFemale,
	}); err != nil {
		t.Fatalf("RegisterTeacher() failed: %v", err)
	}

	missing, err := svc.MissingTeachers(ctx, []string{"teach1", "ghost1", "ghost2"})
	if err != nil {
		t.Fatalf("MissingTeachers() failed: %v", err)
	}
	if len(missing) != 2 || missing[0] != "ghost1" || missing[1] != "ghost2" {
		t.Errorf("missing = %v; want [ghost1 ghost2]", missing)
	}
}
