package domain

import "context"

// EmployeeRepository defines the interface for employee data access.
// It is the only component that touches the record store.
type EmployeeRepository interface {
	// List returns all records, newest creation time first.
	List(ctx context.Context) ([]Employee, error)
	// Search returns records whose indexed text fields (first name,
	// last name, email) match query, best score first.
	Search(ctx context.Context, query string) ([]Employee, error)
	GetByID(ctx context.Context, id string) (*Employee, error)
	// Create assigns id and timestamps. Fails with ErrDuplicateEmail
	// when the email is already taken, case-insensitively.
	Create(ctx context.Context, in CreateEmployeeInput) (*Employee, error)
	// Update merges only the supplied fields and bumps updatedAt.
	Update(ctx context.Context, id string, in UpdateEmployeeInput) (*Employee, error)
	Delete(ctx context.Context, id string) error
}
