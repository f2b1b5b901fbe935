package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jrsteele09/internship-portal/applications"
	apperrors "github.com/jrsteele09/internship-portal/internal/errors"
)

var _ applications.Repo = (*ApplicationRepo)(nil)

type ApplicationRepo struct {
	db *sql.DB
}

const applicationColumns = `id, first_name, last_name, address, email, phone_number, college_name,
	department, custom_department, roll_no, course, year_of_study, skills, addskills,
	user_id, i_id, status, resume, id_card, submitted_at`

func (r *ApplicationRepo) Create(a *applications.Application) error {
	res, err := r.db.Exec(`INSERT INTO applications (first_name, last_name, address, email,
		phone_number, college_name, department, custom_department, roll_no, course, year_of_study,
		skills, addskills, user_id, i_id, status, resume, id_card, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.FirstName, a.LastName, a.Address, a.Email, a.PhoneNumber, a.CollegeName,
		a.Department, a.CustomDepartment, a.RollNo, a.Course, a.YearOfStudy,
		a.Skills, a.AddSkills, a.UserID, a.InternshipID, string(a.Status),
		a.Resume, a.IDCard, toUnix(a.SubmittedAt))
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("application id: %w", err)
	}
	a.ID = id
	return nil
}

func (r *ApplicationRepo) Get(id int64) (*applications.Application, error) {
	a, err := scanApplication(r.db.QueryRow(`SELECT `+applicationColumns+` FROM applications WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	return a, err
}

func (r *ApplicationRepo) List() ([]*applications.Application, error) {
	rows, err := r.db.Query(`SELECT ` + applicationColumns + ` FROM applications ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	var list []*applications.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return list, nil
}

func (r *ApplicationRepo) UpdateStatus(id int64, status applications.Status) (*applications.Application, error) {
	if err := applications.ValidateStatus(status); err != nil {
		return nil, err
	}
	res, err := r.db.Exec(`UPDATE applications SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return nil, fmt.Errorf("update application status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, apperrors.ErrNotFound
	}
	return r.Get(id)
}

func scanApplication(s scanner) (*applications.Application, error) {
	var (
		a         applications.Application
		status    string
		submitted int64
	)
	err := s.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Address, &a.Email, &a.PhoneNumber,
		&a.CollegeName, &a.Department, &a.CustomDepartment, &a.RollNo, &a.Course, &a.YearOfStudy,
		&a.Skills, &a.AddSkills, &a.UserID, &a.InternshipID, &status, &a.Resume, &a.IDCard, &submitted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan application: %w", err)
	}
	a.Status = applications.Status(status)
	a.SubmittedAt = fromUnix(submitted)
	return &a, nil
}
