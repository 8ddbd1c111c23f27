package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/course"
)

type courseRow struct {
	Code         string    `db:"code"`
	Name         string    `db:"name"`
	Description  string    `db:"description"`
	InstructorID string    `db:"instructor_id"`
	ContentType  string    `db:"content_type"`
	Content      string    `db:"content"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (row courseRow) unmap() course.Course {
	return course.Course{
		Code:         row.Code,
		Name:         row.Name,
		Description:  row.Description,
		InstructorID: row.InstructorID,
		ContentType:  row.ContentType,
		Content:      row.Content,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func mapCourse(crs course.Course) courseRow {
	return courseRow{
		Code:         crs.Code,
		Name:         crs.Name,
		Description:  crs.Description,
		InstructorID: crs.InstructorID,
		ContentType:  crs.ContentType,
		Content:      crs.Content,
		CreatedAt:    crs.CreatedAt.UTC(),
		UpdatedAt:    crs.UpdatedAt.UTC(),
	}
}

var courseOrderColumns = map[string]bool{
	"code":          true,
	"name":          true,
	"instructor_id": true,
	"created_at":    true,
	"updated_at":    true,
}

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sqlx.DB) *courseRepository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) CheckCodeUniqueness(ctx context.Context, code string) error {
	var exists bool
	err := repo.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM course WHERE code = $1)`, code)
	if err != nil {
		return errors.Wrap(err, "checking course uniqueness")
	}
	if exists {
		return course.ErrCourseExists
	}
	return nil
}

func (repo *courseRepository) CreateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	_, err := repo.db.NamedExecContext(ctx,
		`INSERT INTO course (code, name, description, instructor_id, content_type, content, created_at, updated_at)
		 VALUES (:code, :name, :description, :instructor_id, :content_type, :content, :created_at, :updated_at)`,
		mapCourse(crs))
	if err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return crs, nil
}

func (repo *courseRepository) GetCourse(ctx context.Context, code string) (course.Course, error) {
	var row courseRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM course WHERE code = $1`, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return course.Course{}, course.ErrNotFound
		}
		return course.Course{}, errors.Wrap(err, "finding course")
	}
	return row.unmap(), nil
}

func (repo *courseRepository) QueryCourses(ctx context.Context, ordering []core.DBOrdering) ([]course.Course, error) {
	query := `SELECT * FROM course` + orderBy(ordering, courseOrderColumns, "code ASC")

	var rows []courseRow
	if err := repo.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	courses := make([]course.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, row.unmap())
	}
	return courses, nil
}

func (repo *courseRepository) QueryCoursesByCode(ctx context.Context, codes []string) ([]course.Course, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT * FROM course WHERE code IN (?)`, codes)
	if err != nil {
		return nil, errors.Wrap(err, "building course query")
	}

	var rows []courseRow
	if err := repo.db.SelectContext(ctx, &rows, repo.db.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "querying courses by code")
	}
	courses := make([]course.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, row.unmap())
	}
	return courses, nil
}

func (repo *courseRepository) UpdateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	res, err := repo.db.NamedExecContext(ctx,
		`UPDATE course
		 SET name = :name, description = :description, instructor_id = :instructor_id,
		     content_type = :content_type, content = :content, updated_at = :updated_at
		 WHERE code = :code`,
		mapCourse(crs))
	if err != nil {
		return course.Course{}, errors.Wrap(err, "updating course")
	}
	if cnt, err := res.RowsAffected(); err == nil && cnt == 0 {
		return course.Course{}, course.ErrNotFound
	}
	return crs, nil
}

func (repo *courseRepository) SetInstructor(ctx context.Context, instructorID string, codes []string) error {
	if len(codes) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`UPDATE course SET instructor_id = ?, updated_at = ? WHERE code IN (?)`,
		instructorID, time.Now().UTC(), codes)
	if err != nil {
		return errors.Wrap(err, "building instructor update")
	}
	if _, err := repo.db.ExecContext(ctx, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "setting instructor")
	}
	return nil
}

func (repo *courseRepository) DeleteCourse(ctx context.Context, code string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM course WHERE code = $1`, code)
	if err != nil {
		return errors.Wrap(err, "deleting course")
	}
	if cnt, err := res.RowsAffected(); err == nil && cnt == 0 {
		return course.ErrNotFound
	}
	return nil
}
