package inmemdb

import (
	"context"
	"sort"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/course"
)

type courseRepository struct {
	db *courseTable
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) *courseRepository {
	return &courseRepository{db: db.course}
}

func (repo *courseRepository) CheckCodeUniqueness(ctx context.Context, code string) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if _, ok := repo.db.table[code]; ok {
		return course.ErrCourseExists
	}
	return nil
}

func (repo *courseRepository) CreateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[crs.Code]; ok {
		return course.Course{}, course.ErrCourseExists
	}
	repo.db.table[crs.Code] = &crs
	return crs, nil
}

func (repo *courseRepository) GetCourse(ctx context.Context, code string) (course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if crs, ok := repo.db.table[code]; ok {
		return *crs, nil
	}
	return course.Course{}, course.ErrNotFound
}

// QueryCourses returns all courses ordered by code; the requested ordering
// is not interpreted here.
func (repo *courseRepository) QueryCourses(ctx context.Context, _ []core.DBOrdering) ([]course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	courses := make([]course.Course, 0, len(repo.db.table))
	for _, crs := range repo.db.table {
		courses = append(courses, *crs)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].Code < courses[j].Code })
	return courses, nil
}

func (repo *courseRepository) QueryCoursesByCode(ctx context.Context, codes []string) ([]course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	courses := make([]course.Course, 0, len(codes))
	for _, code := range codes {
		if crs, ok := repo.db.table[code]; ok {
			courses = append(courses, *crs)
		}
	}
	return courses, nil
}

func (repo *courseRepository) UpdateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.table[crs.Code]
	if !ok {
		return course.Course{}, course.ErrNotFound
	}
	crs.CreatedAt = orig.CreatedAt
	repo.db.table[crs.Code] = &crs
	return crs, nil
}

func (repo *courseRepository) SetInstructor(ctx context.Context, instructorID string, codes []string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, code := range codes {
		crs, ok := repo.db.table[code]
		if !ok {
			return course.ErrNotFound
		}
		crs.InstructorID = instructorID
	}
	return nil
}

func (repo *courseRepository) DeleteCourse(ctx context.Context, code string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[code]; !ok {
		return course.ErrNotFound
	}
	delete(repo.db.table, code)
	return nil
}
