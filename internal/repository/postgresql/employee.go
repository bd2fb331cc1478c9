package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/audyningrum27/simtrendi/internal/domain/employee"
	"github.com/audyningrum27/simtrendi/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeSelect = `
	SELECT e.id, e.nip, e.name, e.email, e.password_hash, COALESCE(e.role_id, ''), COALESCE(r.name, '')
	FROM employees e
	LEFT JOIN roles r ON r.id = e.role_id
`

func (e *employeeRepositoryImpl) getOne(ctx context.Context, where string, arg string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	var emp employee.Employee
	err := q.QueryRow(ctx, employeeSelect+where, arg).Scan(
		&emp.ID, &emp.NIP, &emp.Name, &emp.Email, &emp.PasswordHash, &emp.RoleID, &emp.RoleName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("select employee: %w", err)
	}
	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return e.getOne(ctx, " WHERE e.id = $1", id)
}

// GetByEmail implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	return e.getOne(ctx, " WHERE LOWER(e.email) = LOWER($1)", email)
}
