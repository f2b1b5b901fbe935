package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	apperrors "github.com/jrsteele09/internship-portal/internal/errors"
	"github.com/jrsteele09/internship-portal/users"
)

var _ users.UserRepo = (*UserRepo)(nil)

type UserRepo struct {
	db *sql.DB
}

const userColumns = `id, username, email, first_name, password_hash, is_active, is_staff,
	is_superuser, is_verified, date_joined, last_login, otp, otp_expires_at`

func (r *UserRepo) Create(user *users.User) error {
	res, err := r.db.Exec(`INSERT INTO users (username, email, first_name, password_hash,
		is_active, is_staff, is_superuser, is_verified, date_joined, last_login, otp, otp_expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Username, user.Email, user.FirstName, user.PasswordHash,
		user.IsActive, user.IsStaff, user.IsSuperuser, user.IsVerified,
		toUnix(user.DateJoined), toUnix(user.LastLogin), user.OTP, toUnix(user.OTPExpiresAt))
	if err != nil {
		return userWriteError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("user id: %w", err)
	}
	user.ID = id
	return nil
}

func (r *UserRepo) Update(user *users.User) error {
	res, err := r.db.Exec(`UPDATE users SET username = ?, email = ?, first_name = ?, password_hash = ?,
		is_active = ?, is_staff = ?, is_superuser = ?, is_verified = ?, date_joined = ?, last_login = ?,
		otp = ?, otp_expires_at = ? WHERE id = ?`,
		user.Username, user.Email, user.FirstName, user.PasswordHash,
		user.IsActive, user.IsStaff, user.IsSuperuser, user.IsVerified,
		toUnix(user.DateJoined), toUnix(user.LastLogin), user.OTP, toUnix(user.OTPExpiresAt), user.ID)
	if err != nil {
		return userWriteError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) GetByID(id int64) (*users.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *UserRepo) GetByUsername(username string) (*users.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

func (r *UserRepo) GetByEmail(email string) (*users.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *UserRepo) List() ([]*users.User, error) {
	rows, err := r.db.Query(`SELECT ` + userColumns + ` FROM users ORDER BY date_joined DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var list []*users.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return list, nil
}

func (r *UserRepo) getOne(query string, arg any) (*users.User, error) {
	u, err := scanUser(r.db.QueryRow(query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrUserNotFound
	}
	return u, err
}

func scanUser(s scanner) (*users.User, error) {
	var (
		u                             users.User
		joined, lastLogin, otpExpires int64
	)
	err := s.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.PasswordHash,
		&u.IsActive, &u.IsStaff, &u.IsSuperuser, &u.IsVerified,
		&joined, &lastLogin, &u.OTP, &otpExpires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.DateJoined = fromUnix(joined)
	u.LastLogin = fromUnix(lastLogin)
	u.OTPExpiresAt = fromUnix(otpExpires)
	return &u, nil
}

func userWriteError(err error) error {
	switch {
	case isUniqueViolation(err, "users.email"):
		return apperrors.ErrDuplicateEmail
	case isUniqueViolation(err, "users.username"):
		return apperrors.ErrDuplicateUsername
	}
	return fmt.Errorf("write user: %w", err)
}
