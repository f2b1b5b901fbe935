package fakeinternshiprepo

import (
	"sort"
	"sync"

	apperrors "github.com/jrsteele09/internship-portal/internal/errors"
	"github.com/jrsteele09/internship-portal/internships"
)

var _ internships.Repo = (*FakeInternshipRepo)(nil)

type FakeInternshipRepo struct {
	postings map[int64]internships.Internship
	nextID   int64
	lock     sync.RWMutex
}

func NewFakeInternshipRepo() internships.Repo {
	return &FakeInternshipRepo{
		postings: make(map[int64]internships.Internship),
	}
}

func (r *FakeInternshipRepo) Create(internship *internships.Internship) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.nextID++
	internship.ID = r.nextID
	r.postings[internship.ID] = *internship
	return nil
}

func (r *FakeInternshipRepo) Update(internship *internships.Internship) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.postings[internship.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.postings[internship.ID] = *internship
	return nil
}

func (r *FakeInternshipRepo) Get(id int64) (*internships.Internship, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	internship, ok := r.postings[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &internship, nil
}

func (r *FakeInternshipRepo) List() ([]*internships.Internship, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	list := make([]*internships.Internship, 0, len(r.postings))
	for _, v := range r.postings {
		list = append(list, &v)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list, nil
}
