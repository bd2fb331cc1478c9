package employee

import "context"

type EmployeeRepository interface {
	// GetByID returns the employee joined with its role name.
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
}
