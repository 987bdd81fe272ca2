package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vuongnm/staffdesk/internal/domain"
	"github.com/vuongnm/staffdesk/internal/service"
	"github.com/vuongnm/staffdesk/internal/upload"
)

type EmployeeHandler struct {
	svc     service.EmployeeService
	uploads *upload.Store
}

func NewEmployeeHandler(svc service.EmployeeService, uploads *upload.Store) *EmployeeHandler {
	return &EmployeeHandler{svc: svc, uploads: uploads}
}

func (h *EmployeeHandler) ListHandler(c echo.Context) error {
	employees, err := h.svc.List(c.Request().Context())
	if err != nil {
		return respondError(c, "Failed to list employees", err)
	}
	return c.JSON(http.StatusOK, employees)
}

func (h *EmployeeHandler) SearchHandler(c echo.Context) error {
	employees, err := h.svc.Search(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		return respondError(c, "Failed to search employees", err)
	}
	return c.JSON(http.StatusOK, employees)
}

func (h *EmployeeHandler) GetHandler(c echo.Context) error {
	emp, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, "Failed to get employee", err)
	}
	return c.JSON(http.StatusOK, emp)
}

func (h *EmployeeHandler) CreateHandler(c echo.Context) error {
	in := domain.CreateEmployeeInput{
		FirstName:    c.FormValue("firstName"),
		LastName:     c.FormValue("lastName"),
		Email:        c.FormValue("email"),
		EmployeeType: c.FormValue("employeeType"),
		Phone:        c.FormValue("phone"),
		Position:     c.FormValue("position"),
		Department:   c.FormValue("department"),
		JoiningDate:  c.FormValue("joiningDate"),
		Status:       c.FormValue("status"),
	}

	if raw := c.FormValue("salary"); raw != "" {
		salary, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return respondError(c, "Failed to create employee",
				domain.ValidationError("employee validation failed", map[string]string{"salary": "must be a number"}))
		}
		in.Salary = &salary
	}

	if raw := c.FormValue("address"); raw != "" {
		addr, err := decodeAddress(raw)
		if err != nil {
			return respondError(c, "Failed to create employee", err)
		}
		in.Address = addr
	}

	// The file is validated and stored before the record write; a
	// rejected upload never reaches the accessor.
	picture, stored, err := h.storePicture(c)
	if err != nil {
		return respondError(c, "Failed to create employee", err)
	}
	if stored {
		in.ProfilePicture = picture
	}

	emp, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return respondError(c, "Failed to create employee", err)
	}
	return c.JSON(http.StatusCreated, emp)
}

func (h *EmployeeHandler) UpdateHandler(c echo.Context) error {
	form, err := c.FormParams()
	if err != nil {
		return respondError(c, "Failed to update employee",
			domain.WrapError(domain.KindValidation, "malformed form body", err))
	}

	in := domain.UpdateEmployeeInput{
		FirstName:    formPtr(form, "firstName"),
		LastName:     formPtr(form, "lastName"),
		Email:        formPtr(form, "email"),
		EmployeeType: formPtr(form, "employeeType"),
		Phone:        formPtr(form, "phone"),
		Position:     formPtr(form, "position"),
		Department:   formPtr(form, "department"),
		JoiningDate:  formPtr(form, "joiningDate"),
		Status:       formPtr(form, "status"),
	}

	if raw := formPtr(form, "salary"); raw != nil && *raw != "" {
		salary, err := strconv.ParseFloat(*raw, 64)
		if err != nil {
			return respondError(c, "Failed to update employee",
				domain.ValidationError("employee validation failed", map[string]string{"salary": "must be a number"}))
		}
		in.Salary = &salary
	}

	if raw := formPtr(form, "address"); raw != nil && *raw != "" {
		addr, err := decodeAddress(*raw)
		if err != nil {
			return respondError(c, "Failed to update employee", err)
		}
		in.Address = addr
	}

	// Only a new upload touches profilePicture; absence leaves the
	// stored reference alone.
	picture, stored, err := h.storePicture(c)
	if err != nil {
		return respondError(c, "Failed to update employee", err)
	}
	if stored {
		in.ProfilePicture = &picture
	}

	emp, err := h.svc.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return respondError(c, "Failed to update employee", err)
	}
	return c.JSON(http.StatusOK, emp)
}

func (h *EmployeeHandler) DeleteHandler(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, "Failed to delete employee", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Employee deleted successfully"})
}

// storePicture pulls the optional profile picture off the request and
// persists it. stored is false when no file was attached at all.
func (h *EmployeeHandler) storePicture(c echo.Context) (path string, stored bool, err error) {
	fh, err := c.FormFile(upload.FieldName)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", false, nil
		}
		return "", false, domain.WrapError(domain.KindValidation, "malformed multipart body", err)
	}

	path, err = h.uploads.Save(fh)
	if err != nil {
		return "", false, err
	}
	return path, true, nil
}

// decodeAddress parses the address form field, which arrives as a JSON
// object string.
func decodeAddress(raw string) (*domain.Address, error) {
	var addr domain.Address
	if err := json.Unmarshal([]byte(raw), &addr); err != nil {
		return nil, domain.ValidationError("employee validation failed", map[string]string{
			"address": "must be a JSON object",
		})
	}
	return &addr, nil
}

func formPtr(form url.Values, key string) *string {
	if !form.Has(key) {
		return nil
	}
	val := form.Get(key)
	return &val
}
