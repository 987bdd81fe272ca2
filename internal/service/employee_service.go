package service

import (
	"context"
	"strings"

	"github.com/vuongnm/staffdesk/internal/domain"
	"github.com/vuongnm/staffdesk/internal/validation"
)

// EmployeeService is the use-case layer between the HTTP handlers and
// the accessor: it runs the shared schema checks, then delegates.
type EmployeeService interface {
	List(ctx context.Context) ([]domain.Employee, error)
	Search(ctx context.Context, query string) ([]domain.Employee, error)
	Get(ctx context.Context, id string) (*domain.Employee, error)
	Create(ctx context.Context, in domain.CreateEmployeeInput) (*domain.Employee, error)
	Update(ctx context.Context, id string, in domain.UpdateEmployeeInput) (*domain.Employee, error)
	Delete(ctx context.Context, id string) error
}

type employeeService struct {
	repo domain.EmployeeRepository
}

// NewEmployeeService creates a new EmployeeService instance.
func NewEmployeeService(repo domain.EmployeeRepository) EmployeeService {
	return &employeeService{repo: repo}
}

func (s *employeeService) List(ctx context.Context) ([]domain.Employee, error) {
	return s.repo.List(ctx)
}

func (s *employeeService) Search(ctx context.Context, query string) ([]domain.Employee, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ValidationError("search query is required", map[string]string{
			"query": "is required",
		})
	}
	return s.repo.Search(ctx, query)
}

func (s *employeeService) Get(ctx context.Context, id string) (*domain.Employee, error) {
	if id == "" {
		return nil, domain.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *employeeService) Create(ctx context.Context, in domain.CreateEmployeeInput) (*domain.Employee, error) {
	checked, err := validation.CheckCreate(in)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, checked)
}

func (s *employeeService) Update(ctx context.Context, id string, in domain.UpdateEmployeeInput) (*domain.Employee, error) {
	if id == "" {
		return nil, domain.ErrNotFound
	}
	checked, err := validation.CheckUpdate(in)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, checked)
}

func (s *employeeService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
