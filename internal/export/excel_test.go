package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vuongnm/staffdesk/internal/domain"
)

func TestWriteRoster(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	employees := []domain.Employee{
		{
			FirstName:    "Ada",
			LastName:     "Lovelace",
			Email:        "ada@example.com",
			EmployeeType: domain.TypeFullTime,
			Position:     "Software Engineer",
			Department:   "Engineering",
			Status:       domain.StatusActive,
			JoiningDate:  "2023-04-17",
			Salary:       95000,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			FirstName:    "Grace",
			LastName:     "Hopper",
			Email:        "grace@example.com",
			EmployeeType: domain.TypePartTime,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRoster(&buf, employees))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Employees")
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per employee")

	assert.Equal(t, "First Name", rows[0][0])
	assert.Equal(t, "Email", rows[0][2])
	assert.Equal(t, "Ada", rows[1][0])
	assert.Equal(t, "ada@example.com", rows[1][2])
	assert.Equal(t, "Grace", rows[2][0])
}

func TestWriteRosterEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRoster(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Employees")
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
}
