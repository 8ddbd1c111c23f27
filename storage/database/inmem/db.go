package inmemdb

import (
	"sync"

	"github.com/shulehub/shule/core/account"
	"github.com/shulehub/shule/core/course"
	"github.com/shulehub/shule/core/grade"
)

// DB is an in-memory database used in tests and local tinkering.
type DB struct {
	identity *identityTable
	course   *courseTable
	grade    *gradeTable
}

type (
	identityTable struct {
		mutex sync.RWMutex
		table map[string]*account.Identity // keyed by role + ":" + id
	}
	courseTable struct {
		mutex sync.RWMutex
		table map[string]*course.Course
	}
	gradeTable struct {
		mutex sync.RWMutex
		table map[int]*grade.Grade
	}
)

func Open() (*DB, error) {
	db := &DB{
		identity: &identityTable{table: make(map[string]*account.Identity)},
		course:   &courseTable{table: make(map[string]*course.Course)},
		grade:    &gradeTable{table: make(map[int]*grade.Grade)},
	}
	return db, nil
}
