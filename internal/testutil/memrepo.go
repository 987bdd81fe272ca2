// Package testutil provides doubles for package tests. MemRepo honors
// the same error contract as the Elasticsearch accessor so handler and
// service tests exercise the full kind-to-status path without a store.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vuongnm/staffdesk/internal/domain"
)

var _ domain.EmployeeRepository = (*MemRepo)(nil)

// MemRepo is an in-memory EmployeeRepository.
type MemRepo struct {
	mu     sync.Mutex
	byID   map[string]domain.Employee
	emails map[string]string // lowercased email -> id
	seq    int               // creation order tiebreak for equal timestamps
	order  map[string]int
}

func NewMemRepo() *MemRepo {
	return &MemRepo{
		byID:   make(map[string]domain.Employee),
		emails: make(map[string]string),
		order:  make(map[string]int),
	}
}

// Len reports how many records are stored.
func (r *MemRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

func (r *MemRepo) List(ctx context.Context) ([]domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Employee, 0, len(r.byID))
	for _, e := range r.byID {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return r.order[out[i].ID] > r.order[out[j].ID]
	})
	return out, nil
}

func (r *MemRepo) Search(ctx context.Context, query string) ([]domain.Employee, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var out []domain.Employee
	for _, e := range all {
		if strings.Contains(strings.ToLower(e.FirstName), q) ||
			strings.Contains(strings.ToLower(e.LastName), q) ||
			strings.Contains(strings.ToLower(e.Email), q) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *MemRepo) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := e
	return &copied, nil
}

func (r *MemRepo) Create(ctx context.Context, in domain.CreateEmployeeInput) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(in.Email)
	if _, taken := r.emails[key]; taken {
		return nil, domain.ErrDuplicateEmail
	}

	now := time.Now().UTC()
	e := domain.Employee{
		ID:             uuid.NewString(),
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		EmployeeType:   in.EmployeeType,
		ProfilePicture: in.ProfilePicture,
		Phone:          in.Phone,
		Position:       in.Position,
		Department:     in.Department,
		JoiningDate:    in.JoiningDate,
		Status:         in.Status,
		Address:        in.Address,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.Salary != nil {
		e.Salary = *in.Salary
	}

	r.seq++
	r.byID[e.ID] = e
	r.emails[key] = e.ID
	r.order[e.ID] = r.seq
	return &e, nil
}

func (r *MemRepo) Update(ctx context.Context, id string, in domain.UpdateEmployeeInput) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	if in.Email != nil && !strings.EqualFold(*in.Email, e.Email) {
		key := strings.ToLower(*in.Email)
		if _, taken := r.emails[key]; taken {
			return nil, domain.ErrDuplicateEmail
		}
		delete(r.emails, strings.ToLower(e.Email))
		r.emails[key] = id
	}

	if in.FirstName != nil {
		e.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		e.LastName = *in.LastName
	}
	if in.Email != nil {
		e.Email = *in.Email
	}
	if in.EmployeeType != nil {
		e.EmployeeType = *in.EmployeeType
	}
	if in.ProfilePicture != nil {
		e.ProfilePicture = *in.ProfilePicture
	}
	if in.Phone != nil {
		e.Phone = *in.Phone
	}
	if in.Position != nil {
		e.Position = *in.Position
	}
	if in.Department != nil {
		e.Department = *in.Department
	}
	if in.JoiningDate != nil {
		e.JoiningDate = *in.JoiningDate
	}
	if in.Salary != nil {
		e.Salary = *in.Salary
	}
	if in.Status != nil {
		e.Status = *in.Status
	}
	if in.Address != nil {
		e.Address = in.Address
	}
	e.UpdatedAt = time.Now().UTC()

	r.byID[id] = e
	return &e, nil
}

func (r *MemRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.emails, strings.ToLower(e.Email))
	delete(r.order, id)
	return nil
}
