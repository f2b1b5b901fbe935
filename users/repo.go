package users

// UserRepo stores portal accounts. Implementations return copies, so callers must
// Update after mutating a user.
type UserRepo interface {
	// Create assigns the next ID; it fails on a duplicate email or username
	Create(user *User) error
	Update(user *User) error
	GetByID(id int64) (*User, error)
	GetByUsername(username string) (*User, error)
	GetByEmail(email string) (*User, error)
	// List returns every user, newest first
	List() ([]*User, error)
}
