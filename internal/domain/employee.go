package domain

import "time"

// Employee types accepted by the system. The search UI historically
// offered hyphenated spellings; validation normalizes those to these
// canonical values before the enum check.
const (
	TypeFullTime = "Full Time"
	TypePartTime = "Part Time"
	TypeContract = "Contract"
	TypeIntern   = "Intern"
)

// EmployeeTypes is the canonical enum for Employee.EmployeeType.
var EmployeeTypes = []string{TypeFullTime, TypePartTime, TypeContract, TypeIntern}

// Employment statuses.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
	StatusOnLeave  = "On Leave"
)

// Statuses is the canonical enum for Employee.Status.
var Statuses = []string{StatusActive, StatusInactive, StatusOnLeave}

// Address is the nested postal address on an employee record. When an
// address is supplied at all, every field must be present.
type Address struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	ZipCode string `json:"zipCode" validate:"required"`
	Country string `json:"country" validate:"required"`
}

// Employee represents one document in the employees index.
type Employee struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	EmployeeType   string    `json:"employeeType"`
	ProfilePicture string    `json:"profilePicture"`
	Phone          string    `json:"phone,omitempty"`
	Position       string    `json:"position,omitempty"`
	Department     string    `json:"department,omitempty"`
	JoiningDate    string    `json:"joiningDate,omitempty"`
	Salary         float64   `json:"salary,omitempty"`
	Status         string    `json:"status,omitempty"`
	Address        *Address  `json:"address,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// CreateEmployeeInput carries a full candidate record. The validate
// tags are the single schema shared by request validation and
// persistence; there is no second, divergent copy anywhere.
type CreateEmployeeInput struct {
	FirstName      string   `json:"firstName" validate:"required"`
	LastName       string   `json:"lastName" validate:"required"`
	Email          string   `json:"email" validate:"required,email"`
	EmployeeType   string   `json:"employeeType" validate:"required,employeetype"`
	ProfilePicture string   `json:"profilePicture" validate:"-"`
	Phone          string   `json:"phone" validate:"omitempty"`
	Position       string   `json:"position" validate:"omitempty"`
	Department     string   `json:"department" validate:"omitempty"`
	JoiningDate    string   `json:"joiningDate" validate:"omitempty,datetime=2006-01-02"`
	Salary         *float64 `json:"salary" validate:"omitnil,gte=0"`
	Status         string   `json:"status" validate:"omitempty,employeestatus"`
	Address        *Address `json:"address" validate:"omitnil"`
}

// UpdateEmployeeInput carries a partial record: nil pointers mean "not
// submitted, leave the stored value alone".
type UpdateEmployeeInput struct {
	FirstName      *string  `json:"firstName" validate:"omitnil,min=1"`
	LastName       *string  `json:"lastName" validate:"omitnil,min=1"`
	Email          *string  `json:"email" validate:"omitnil,email"`
	EmployeeType   *string  `json:"employeeType" validate:"omitnil,employeetype"`
	ProfilePicture *string  `json:"profilePicture" validate:"-"`
	Phone          *string  `json:"phone" validate:"omitnil"`
	Position       *string  `json:"position" validate:"omitnil"`
	Department     *string  `json:"department" validate:"omitnil"`
	JoiningDate    *string  `json:"joiningDate" validate:"omitnil,datetime=2006-01-02"`
	Salary         *float64 `json:"salary" validate:"omitnil,gte=0"`
	Status         *string  `json:"status" validate:"omitnil,employeestatus"`
	Address        *Address `json:"address" validate:"omitnil"`
}
