package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vuongnm/staffdesk/internal/domain"
	"github.com/vuongnm/staffdesk/internal/service"
	"github.com/vuongnm/staffdesk/internal/testutil"
	"github.com/vuongnm/staffdesk/internal/upload"
)

type testApp struct {
	echo *echo.Echo
	repo *testutil.MemRepo
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	repo := testutil.NewMemRepo()
	uploads, err := upload.NewStore(t.TempDir(), 1024)
	require.NoError(t, err)

	h := NewEmployeeHandler(service.NewEmployeeService(repo), uploads)

	e := echo.New()
	e.GET("/api/employees", h.ListHandler)
	e.GET("/api/employees/search", h.SearchHandler)
	e.GET("/api/employees/:id", h.GetHandler)
	e.POST("/api/employees", h.CreateHandler)
	e.PUT("/api/employees/:id", h.UpdateHandler)
	e.DELETE("/api/employees/:id", h.DeleteHandler)

	return &testApp{echo: e, repo: repo}
}

type filePart struct {
	name        string
	contentType string
	content     []byte
}

func multipartBody(t *testing.T, fields map[string]string, file *filePart) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, upload.FieldName, file.name))
		header.Set("Content-Type", file.contentType)
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(file.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func (a *testApp) request(t *testing.T, method, path string, fields map[string]string, file *filePart) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if fields != nil || file != nil {
		body, contentType := multipartBody(t, fields, file)
		req = httptest.NewRequest(method, path, body)
		req.Header.Set(echo.HeaderContentType, contentType)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) createEmployee(t *testing.T, fields map[string]string) domain.Employee {
	t.Helper()
	rec := a.request(t, http.MethodPost, "/api/employees", fields, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var e domain.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func adaFields() map[string]string {
	return map[string]string{
		"firstName":    "Ada",
		"lastName":     "Lovelace",
		"email":        "ada@example.com",
		"employeeType": "Full Time",
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCreateThenGetReturnsEqualRecord(t *testing.T) {
	app := newTestApp(t)

	created := app.createEmployee(t, adaFields())
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "", created.ProfilePicture)
	assert.False(t, created.CreatedAt.IsZero())

	rec := app.request(t, http.MethodGet, "/api/employees/"+created.ID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched domain.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, created, fetched)
}

func TestCreateDuplicateEmailConflicts(t *testing.T) {
	app := newTestApp(t)
	first := app.createEmployee(t, adaFields())

	dup := adaFields()
	dup["firstName"] = "Augusta"
	dup["email"] = "ADA@Example.com" // uniqueness is case-insensitive

	rec := app.request(t, http.MethodPost, "/api/employees", dup, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The existing record is untouched.
	get := app.request(t, http.MethodGet, "/api/employees/"+first.ID, nil, nil)
	var unchanged domain.Employee
	require.NoError(t, json.Unmarshal(get.Body.Bytes(), &unchanged))
	assert.Equal(t, first, unchanged)
	assert.Equal(t, 1, app.repo.Len())
}

func TestCreateInvalidEmployeeTypeRejected(t *testing.T) {
	app := newTestApp(t)

	fields := adaFields()
	fields["employeeType"] = "Astronaut"

	rec := app.request(t, http.MethodPost, "/api/employees", fields, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Details, "employeeType")
	assert.Equal(t, 0, app.repo.Len(), "store must be unmodified")
}

func TestCreateAcceptsHyphenatedTypeSpelling(t *testing.T) {
	app := newTestApp(t)

	fields := adaFields()
	fields["employeeType"] = "Part-time"

	created := app.createEmployee(t, fields)
	assert.Equal(t, domain.TypePartTime, created.EmployeeType)
}

func TestUpdateChangesOnlySubmittedFields(t *testing.T) {
	app := newTestApp(t)
	created := app.createEmployee(t, adaFields())

	rec := app.request(t, http.MethodPut, "/api/employees/"+created.ID,
		map[string]string{"employeeType": "Part Time"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated domain.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Ada", updated.FirstName)
	assert.Equal(t, "ada@example.com", updated.Email)
	assert.Equal(t, domain.TypePartTime, updated.EmployeeType)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestUpdateUnknownIDNotFound(t *testing.T) {
	app := newTestApp(t)
	rec := app.request(t, http.MethodPut, "/api/employees/no-such-id",
		map[string]string{"firstName": "Nobody"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteThenGetNotFound(t *testing.T) {
	app := newTestApp(t)
	created := app.createEmployee(t, adaFields())

	rec := app.request(t, http.MethodDelete, "/api/employees/"+created.ID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Employee deleted successfully", body["message"])

	assert.Equal(t, http.StatusNotFound,
		app.request(t, http.MethodGet, "/api/employees/"+created.ID, nil, nil).Code)
	assert.Equal(t, http.StatusNotFound,
		app.request(t, http.MethodDelete, "/api/employees/"+created.ID, nil, nil).Code,
		"second delete reports not found")
}

func TestDeleteFreesEmailForReuse(t *testing.T) {
	app := newTestApp(t)
	created := app.createEmployee(t, adaFields())

	require.Equal(t, http.StatusOK,
		app.request(t, http.MethodDelete, "/api/employees/"+created.ID, nil, nil).Code)

	again := app.createEmployee(t, adaFields())
	assert.NotEqual(t, created.ID, again.ID)
}

func TestListNewestFirst(t *testing.T) {
	app := newTestApp(t)
	app.createEmployee(t, adaFields())

	second := adaFields()
	second["firstName"] = "Grace"
	second["lastName"] = "Hopper"
	second["email"] = "grace@example.com"
	app.createEmployee(t, second)

	rec := app.request(t, http.MethodGet, "/api/employees", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []domain.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "Grace", list[0].FirstName)
	assert.Equal(t, "Ada", list[1].FirstName)
}

func TestSearchReturnsOnlyMatches(t *testing.T) {
	app := newTestApp(t)
	app.createEmployee(t, adaFields())

	john := map[string]string{
		"firstName":    "John",
		"lastName":     "Backus",
		"email":        "john@example.com",
		"employeeType": "Intern",
	}
	app.createEmployee(t, john)

	rec := app.request(t, http.MethodGet, "/api/employees/search?query=john", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var hits []domain.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hits))
	require.Len(t, hits, 1)
	assert.Equal(t, "John", hits[0].FirstName)
}

func TestSearchWithoutQueryRejected(t *testing.T) {
	app := newTestApp(t)
	rec := app.request(t, http.MethodGet, "/api/employees/search", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateRejectedUploadPreventsRecordWrite(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, http.MethodPost, "/api/employees", adaFields(), &filePart{
		name:        "anim.gif",
		contentType: "image/gif",
		content:     []byte("GIF89a"),
	})
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Equal(t, 0, app.repo.Len(), "rejected file must not leave a record behind")
}

func TestCreateOversizedUploadRejected(t *testing.T) {
	app := newTestApp(t) // store capped at 1 KiB

	rec := app.request(t, http.MethodPost, "/api/employees", adaFields(), &filePart{
		name:        "big.jpg",
		contentType: "image/jpeg",
		content:     bytes.Repeat([]byte("x"), 2048),
	})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, 0, app.repo.Len())
}

func TestCreateWithPictureStoresReference(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, http.MethodPost, "/api/employees", adaFields(), &filePart{
		name:        "avatar.png",
		contentType: "image/png",
		content:     []byte("png-bytes"),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created domain.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Contains(t, created.ProfilePicture, "/uploads/")
	assert.NotContains(t, created.ProfilePicture, "avatar")
}

func TestUpdateWithoutFileKeepsExistingPicture(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, http.MethodPost, "/api/employees", adaFields(), &filePart{
		name:        "avatar.png",
		contentType: "image/png",
		content:     []byte("png-bytes"),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ProfilePicture)

	update := app.request(t, http.MethodPut, "/api/employees/"+created.ID,
		map[string]string{"position": "Engineer"}, nil)
	require.Equal(t, http.StatusOK, update.Code)

	var updated domain.Employee
	require.NoError(t, json.Unmarshal(update.Body.Bytes(), &updated))
	assert.Equal(t, created.ProfilePicture, updated.ProfilePicture)
	assert.Equal(t, "Engineer", updated.Position)
}

func TestCreateWithRichFieldsPersistsThem(t *testing.T) {
	app := newTestApp(t)

	fields := adaFields()
	fields["phone"] = "+84 90 123 4567"
	fields["position"] = "Software Engineer"
	fields["department"] = "Engineering"
	fields["joiningDate"] = "2023-04-17"
	fields["salary"] = "95000"
	fields["status"] = "Active"
	fields["address"] = `{"street":"12 Main St","city":"Hanoi","state":"HN","zipCode":"100000","country":"Vietnam"}`

	created := app.createEmployee(t, fields)
	assert.Equal(t, 95000.0, created.Salary)
	assert.Equal(t, "2023-04-17", created.JoiningDate)
	require.NotNil(t, created.Address)
	assert.Equal(t, "Hanoi", created.Address.City)
}

func TestCreateMalformedAddressRejected(t *testing.T) {
	app := newTestApp(t)

	fields := adaFields()
	fields["address"] = "not-json"

	rec := app.request(t, http.MethodPost, "/api/employees", fields, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Details, "address")
}
