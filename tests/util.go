package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/shulehub/shule/core/account"
	"github.com/shulehub/shule/core/course"
	"github.com/shulehub/shule/core/grade"
)

func createIdentity(
	t *testing.T,
	repo account.Repository,
	idt account.Identity,
	pwd string,
	createdAt ...time.Time,
) account.Identity {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	idt.CreatedAt = tstamp
	idt.UpdatedAt = tstamp
	if pwd != "" {
		if err := idt.SetPassword(pwd); err != nil {
			t.Fatalf("createIdentity() failed: %v", err)
		}
	}
	idt, err := repo.CreateIdentity(context.Background(), idt)
	if err != nil {
		t.Fatalf("createIdentity() failed: %v", err)
	}
	return idt
}

func CreateStudent(
	t *testing.T,
	repo account.Repository,
	id, first, last, pwd string,
	age, grd int,
	gender string,
	createdAt ...time.Time,
) account.Identity {
	return createIdentity(t, repo, account.Identity{
		ID:        id,
		FirstName: first,
		LastName:  last,
		Role:      account.RoleStudent,
		Age:       age,
		Gender:    gender,
		Grade:     grd,
	}, pwd, createdAt...)
}

func CreateTeacher(
	t *testing.T,
	repo account.Repository,
	id, first, last, pwd string,
	age int,
	gender string,
	createdAt ...time.Time,
) account.Identity {
	return createIdentity(t, repo, account.Identity{
		ID:        id,
		FirstName: first,
		LastName:  last,
		Role:      account.RoleTeacher,
		Age:       age,
		Gender:    gender,
	}, pwd, createdAt...)
}

func CreateAdmin(
	t *testing.T,
	repo account.Repository,
	id, first, last, pwd string,
	createdAt ...time.Time,
) account.Identity {
	return createIdentity(t, repo, account.Identity{
		ID:        id,
		FirstName: first,
		LastName:  last,
		Role:      account.RoleAdmin,
	}, pwd, createdAt...)
}

func CreateCourse(
	t *testing.T,
	repo course.Repository,
	code, name, instructorID string,
) course.Course {
	t.Helper()

	now := time.Now().UTC()
	crs, err := repo.CreateCourse(context.Background(), course.Course{
		Code:         code,
		Name:         name,
		InstructorID: instructorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return crs
}

func CreateGrade(
	t *testing.T,
	repo grade.Repository,
	id int,
	name string,
	teacherIDs []string,
) grade.Grade {
	t.Helper()

	now := time.Now().UTC()
	grd, err := repo.CreateGrade(context.Background(), grade.Grade{
		ID:         id,
		Name:       name,
		TeacherIDs: teacherIDs,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		t.Fatalf("CreateGrade() failed: %v", err)
	}
	return grd
}
