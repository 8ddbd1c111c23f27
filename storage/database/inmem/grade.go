package inmemdb

import (
	"context"
	"sort"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/grade"
)

type gradeRepository struct {
	db *gradeTable
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *DB) *gradeRepository {
	return &gradeRepository{db: db.grade}
}

func (repo *gradeRepository) CheckIDUniqueness(ctx context.Context, id int) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if _, ok := repo.db.table[id]; ok {
		return grade.ErrGradeExists
	}
	return nil
}

func (repo *gradeRepository) CreateGrade(ctx context.Context, grd grade.Grade) (grade.Grade, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[grd.ID]; ok {
		return grade.Grade{}, grade.ErrGradeExists
	}
	repo.db.table[grd.ID] = &grd
	return grd, nil
}

func (repo *gradeRepository) GetGrade(ctx context.Context, id int) (grade.Grade, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if grd, ok := repo.db.table[id]; ok {
		return *grd, nil
	}
	return grade.Grade{}, grade.ErrNotFound
}

// QueryGrades returns all grades ordered by ID; the requested ordering is
// not interpreted here.
func (repo *gradeRepository) QueryGrades(ctx context.Context, _ []core.DBOrdering) ([]grade.Grade, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	grades := make([]grade.Grade, 0, len(repo.db.table))
	for _, grd := range repo.db.table {
		grades = append(grades, *grd)
	}
	sort.Slice(grades, func(i, j int) bool { return grades[i].ID < grades[j].ID })
	return grades, nil
}

func (repo *gradeRepository) DeleteGrade(ctx context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return grade.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
