package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	apperrors "github.com/jrsteele09/internship-portal/internal/errors"
	"github.com/jrsteele09/internship-portal/internships"
)

var _ internships.Repo = (*InternshipRepo)(nil)

type InternshipRepo struct {
	db *sql.DB
}

const internshipColumns = `id, title, mentor, duration, stipend, description, status, skills,
	user_id, username, created_at`

func (r *InternshipRepo) Create(i *internships.Internship) error {
	res, err := r.db.Exec(`INSERT INTO internships (title, mentor, duration, stipend, description,
		status, skills, user_id, username, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		i.Title, i.Mentor, i.Duration, i.Stipend, i.Description,
		string(i.Status), i.Skills, i.UserID, i.Username, toUnix(i.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert internship: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("internship id: %w", err)
	}
	i.ID = id
	return nil
}

func (r *InternshipRepo) Update(i *internships.Internship) error {
	res, err := r.db.Exec(`UPDATE internships SET title = ?, mentor = ?, duration = ?, stipend = ?,
		description = ?, status = ?, skills = ?, user_id = ?, username = ?, created_at = ? WHERE id = ?`,
		i.Title, i.Mentor, i.Duration, i.Stipend, i.Description,
		string(i.Status), i.Skills, i.UserID, i.Username, toUnix(i.CreatedAt), i.ID)
	if err != nil {
		return fmt.Errorf("update internship: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *InternshipRepo) Get(id int64) (*internships.Internship, error) {
	i, err := scanInternship(r.db.QueryRow(`SELECT `+internshipColumns+` FROM internships WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	return i, err
}

func (r *InternshipRepo) List() ([]*internships.Internship, error) {
	rows, err := r.db.Query(`SELECT ` + internshipColumns + ` FROM internships ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query internships: %w", err)
	}
	defer rows.Close()

	var list []*internships.Internship
	for rows.Next() {
		i, err := scanInternship(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return list, nil
}

func scanInternship(s scanner) (*internships.Internship, error) {
	var (
		i       internships.Internship
		status  string
		created int64
	)
	err := s.Scan(&i.ID, &i.Title, &i.Mentor, &i.Duration, &i.Stipend, &i.Description,
		&status, &i.Skills, &i.UserID, &i.Username, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan internship: %w", err)
	}
	i.Status = internships.Status(status)
	i.CreatedAt = fromUnix(created)
	return &i, nil
}
