package employee

// Employee is the slice of the employee record the leave workflow consumes.
type Employee struct {
	ID           string
	NIP          string
	Name         string
	Email        string
	PasswordHash *string
	RoleID       string
	RoleName     string
}
