package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vuongnm/staffdesk/internal/domain"
)

// The request schema and the persisted schema are the same struct tags
// on the domain input types; this package is the only interpreter.

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("employeetype", func(fl validator.FieldLevel) bool {
		return isOneOf(fl.Field().String(), domain.EmployeeTypes)
	})
	v.RegisterValidation("employeestatus", func(fl validator.FieldLevel) bool {
		return isOneOf(fl.Field().String(), domain.Statuses)
	})
	return v
}

func isOneOf(val string, set []string) bool {
	for _, s := range set {
		if val == s {
			return true
		}
	}
	return false
}

// typeAliases maps the spellings the richer form historically sent to
// the canonical enum values.
var typeAliases = map[string]string{
	"full-time": domain.TypeFullTime,
	"full time": domain.TypeFullTime,
	"part-time": domain.TypePartTime,
	"part time": domain.TypePartTime,
	"contract":  domain.TypeContract,
	"intern":    domain.TypeIntern,
}

// NormalizeEmployeeType resolves alias spellings to the canonical enum
// value. Unknown input comes back unchanged for validation to reject.
func NormalizeEmployeeType(t string) string {
	if canonical, ok := typeAliases[strings.ToLower(strings.TrimSpace(t))]; ok {
		return canonical
	}
	return strings.TrimSpace(t)
}

// CheckCreate normalizes and validates a full candidate record. The
// returned input has trimmed names, a lowercased email and a canonical
// employee type; the error, when non-nil, is a domain.Error with
// per-field details.
func CheckCreate(in domain.CreateEmployeeInput) (domain.CreateEmployeeInput, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.EmployeeType = NormalizeEmployeeType(in.EmployeeType)
	if in.Status == "" {
		in.Status = domain.StatusActive
	}

	if err := validate.Struct(in); err != nil {
		return in, asDomainError(err)
	}
	return in, nil
}

// CheckUpdate normalizes and validates a partial record; only supplied
// fields are checked.
func CheckUpdate(in domain.UpdateEmployeeInput) (domain.UpdateEmployeeInput, error) {
	if in.FirstName != nil {
		*in.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		*in.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Email != nil {
		*in.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.EmployeeType != nil {
		*in.EmployeeType = NormalizeEmployeeType(*in.EmployeeType)
	}

	if err := validate.Struct(in); err != nil {
		return in, asDomainError(err)
	}
	return in, nil
}

func asDomainError(err error) error {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.WrapError(domain.KindInternal, "validation failed", err)
	}

	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fieldName(fe)] = fieldMessage(fe)
	}
	return domain.ValidationError("employee validation failed", details)
}

// fieldName turns the struct namespace into the wire-level field name,
// e.g. "CreateEmployeeInput.Address.ZipCode" -> "address.zipCode".
func fieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToLower(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, ".")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "employeetype":
		return "must be one of: " + strings.Join(domain.EmployeeTypes, ", ")
	case "employeestatus":
		return "must be one of: " + strings.Join(domain.Statuses, ", ")
	case "gte":
		return "must not be negative"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "min":
		return "must not be empty"
	default:
		return "is invalid"
	}
}
