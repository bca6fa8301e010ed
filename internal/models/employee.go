package models

// Employee represents a persisted employee record.
type Employee struct {
	ID           int    `json:"EmpId"`
	Name         string `json:"EmpName"`
	MobileNumber string `json:"MobileNumber"`
	Department   string `json:"department"`
	Salary       int    `json:"salary"`
}

// EmployeeInput is the request body accepted when creating or updating an employee.
// Salary is a pointer so that an absent value can be told apart from zero.
type EmployeeInput struct {
	Name         string `json:"EmpName"      validate:"required"`
	MobileNumber string `json:"MobileNumber" validate:"required"`
	Department   string `json:"department"   validate:"required"`
	Salary       *int   `json:"salary"       validate:"required,gte=0,lte=2147483647"`
}

// ToEmployee builds an Employee from the input. The caller must validate the input first.
func (in EmployeeInput) ToEmployee(identifier int) Employee {
	employee := Employee{
		ID:           identifier,
		Name:         in.Name,
		MobileNumber: in.MobileNumber,
		Department:   in.Department,
	}
	if in.Salary != nil {
		employee.Salary = *in.Salary
	}

	return employee
}
