package fakeuserrepo

import (
	"sort"
	"strings"
	"sync"

	apperrors "github.com/jrsteele09/internship-portal/internal/errors"
	"github.com/jrsteele09/internship-portal/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	users     map[int64]*users.User
	emailIds  map[string]int64 // email to user id
	usernames map[string]int64 // username to user id
	nextID    int64
	lock      sync.RWMutex
}

func NewFakeUserRepo() users.UserRepo {
	return &FakeUserRepo{
		users:     make(map[int64]*users.User),
		emailIds:  make(map[string]int64),
		usernames: make(map[string]int64),
	}
}

func (ur *FakeUserRepo) Create(user *users.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if _, ok := ur.emailIds[strings.ToLower(user.Email)]; ok {
		return apperrors.ErrDuplicateEmail
	}
	if _, ok := ur.usernames[user.Username]; ok {
		return apperrors.ErrDuplicateUsername
	}

	ur.nextID++
	user.ID = ur.nextID
	ur.store(user)
	return nil
}

func (ur *FakeUserRepo) Update(user *users.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	existing, ok := ur.users[user.ID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	if id, ok := ur.emailIds[strings.ToLower(user.Email)]; ok && id != user.ID {
		return apperrors.ErrDuplicateEmail
	}
	if id, ok := ur.usernames[user.Username]; ok && id != user.ID {
		return apperrors.ErrDuplicateUsername
	}
	delete(ur.emailIds, strings.ToLower(existing.Email))
	delete(ur.usernames, existing.Username)
	ur.store(user)
	return nil
}

func (ur *FakeUserRepo) store(user *users.User) {
	stored := *user
	ur.users[user.ID] = &stored
	ur.emailIds[strings.ToLower(user.Email)] = user.ID
	ur.usernames[user.Username] = user.ID
}

func (ur *FakeUserRepo) GetByEmail(email string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.emailIds[strings.ToLower(email)]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return ur.copyOf(id), nil
}

func (ur *FakeUserRepo) GetByUsername(username string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.usernames[username]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return ur.copyOf(id), nil
}

func (ur *FakeUserRepo) GetByID(id int64) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	if _, ok := ur.users[id]; !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return ur.copyOf(id), nil
}

func (ur *FakeUserRepo) copyOf(id int64) *users.User {
	u := *ur.users[id]
	return &u
}

func (ur *FakeUserRepo) List() ([]*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	userList := make([]*users.User, 0, len(ur.users))
	for id := range ur.users {
		userList = append(userList, ur.copyOf(id))
	}

	sort.Slice(userList, func(i, j int) bool {
		if !userList[i].DateJoined.Equal(userList[j].DateJoined) {
			return userList[i].DateJoined.After(userList[j].DateJoined)
		}
		return userList[i].ID > userList[j].ID
	})
	return userList, nil
}
