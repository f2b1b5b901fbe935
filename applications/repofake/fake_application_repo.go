package fakeapplicationrepo

import (
	"sort"
	"sync"

	"github.com/jrsteele09/internship-portal/applications"
	apperrors "github.com/jrsteele09/internship-portal/internal/errors"
)

var _ applications.Repo = (*FakeApplicationRepo)(nil)

type FakeApplicationRepo struct {
	applications map[int64]applications.Application
	nextID       int64
	lock         sync.RWMutex
}

func NewFakeApplicationRepo() applications.Repo {
	return &FakeApplicationRepo{
		applications: make(map[int64]applications.Application),
	}
}

func (r *FakeApplicationRepo) Create(application *applications.Application) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.nextID++
	application.ID = r.nextID
	r.applications[application.ID] = *application
	return nil
}

func (r *FakeApplicationRepo) Get(id int64) (*applications.Application, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	a, ok := r.applications[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &a, nil
}

func (r *FakeApplicationRepo) List() ([]*applications.Application, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	list := make([]*applications.Application, 0, len(r.applications))
	for _, a := range r.applications {
		list = append(list, &a)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (r *FakeApplicationRepo) UpdateStatus(id int64, status applications.Status) (*applications.Application, error) {
	if err := applications.ValidateStatus(status); err != nil {
		return nil, err
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	a, ok := r.applications[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	a.Status = status
	r.applications[id] = a
	return &a, nil
}
