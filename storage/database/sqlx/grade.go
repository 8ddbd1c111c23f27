package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/grade"
)

type gradeRow struct {
	ID        int       `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

var gradeOrderColumns = map[string]bool{
	"id":         true,
	"name":       true,
	"created_at": true,
	"updated_at": true,
}

type gradeRepository struct {
	db *sqlx.DB
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *sqlx.DB) *gradeRepository {
	return &gradeRepository{db: db}
}

func (repo *gradeRepository) CheckIDUniqueness(ctx context.Context, id int) error {
	var exists bool
	err := repo.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM grade WHERE id = $1)`, id)
	if err != nil {
		return errors.Wrap(err, "checking grade uniqueness")
	}
	if exists {
		return grade.ErrGradeExists
	}
	return nil
}

func (repo *gradeRepository) CreateGrade(ctx context.Context, grd grade.Grade) (grade.Grade, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return grade.Grade{}, errors.Wrap(err, "beginning tx")
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		`INSERT INTO grade (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		grd.ID, grd.Name, grd.CreatedAt.UTC(), grd.UpdatedAt.UTC())
	if err != nil {
		return grade.Grade{}, errors.Wrap(err, "inserting grade")
	}
	for _, teacherID := range grd.TeacherIDs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO grade_teacher (grade_id, teacher_id) VALUES ($1, $2)`, grd.ID, teacherID)
		if err != nil {
			return grade.Grade{}, errors.Wrap(err, "inserting grade teacher")
		}
	}

	if err := tx.Commit(); err != nil {
		return grade.Grade{}, errors.Wrap(err, "committing tx")
	}
	return grd, nil
}

func (repo *gradeRepository) GetGrade(ctx context.Context, id int) (grade.Grade, error) {
	var row gradeRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM grade WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return grade.Grade{}, grade.ErrNotFound
		}
		return grade.Grade{}, errors.Wrap(err, "finding grade")
	}

	teacherIDs, err := repo.teacherIDs(ctx, id)
	if err != nil {
		return grade.Grade{}, err
	}
	return grade.Grade{
		ID:         row.ID,
		Name:       row.Name,
		TeacherIDs: teacherIDs,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}, nil
}

func (repo *gradeRepository) QueryGrades(ctx context.Context, ordering []core.DBOrdering) ([]grade.Grade, error) {
	query := `SELECT * FROM grade` + orderBy(ordering, gradeOrderColumns, "id ASC")

	var rows []gradeRow
	if err := repo.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "querying grades")
	}

	grades := make([]grade.Grade, 0, len(rows))
	for _, row := range rows {
		teacherIDs, err := repo.teacherIDs(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		grades = append(grades, grade.Grade{
			ID:         row.ID,
			Name:       row.Name,
			TeacherIDs: teacherIDs,
			CreatedAt:  row.CreatedAt,
			UpdatedAt:  row.UpdatedAt,
		})
	}
	return grades, nil
}

func (repo *gradeRepository) DeleteGrade(ctx context.Context, id int) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM grade WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting grade")
	}
	if cnt, err := res.RowsAffected(); err == nil && cnt == 0 {
		return grade.ErrNotFound
	}
	return nil
}

func (repo *gradeRepository) teacherIDs(ctx context.Context, gradeID int) ([]string, error) {
	var ids []string
	err := repo.db.SelectContext(ctx, &ids,
		`SELECT teacher_id FROM grade_teacher WHERE grade_id = $1 ORDER BY teacher_id`, gradeID)
	if err != nil {
		return nil, errors.Wrap(err, "querying grade teachers")
	}
	return ids, nil
}
