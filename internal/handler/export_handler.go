package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/vuongnm/staffdesk/internal/export"
)

// ExportHandler streams the full roster as an xlsx attachment.
func (h *EmployeeHandler) ExportHandler(c echo.Context) error {
	employees, err := h.svc.List(c.Request().Context())
	if err != nil {
		return respondError(c, "Failed to export employees", err)
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="employees.xlsx"`)

	return export.WriteRoster(c.Response().Writer, employees)
}
