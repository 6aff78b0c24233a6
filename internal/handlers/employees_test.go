package handlers_test

import (
	"net/url"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
)

var roleColumns = []string{"id", "name", "department", "created_at", "updated_at"}

func TestEmployees_Index(t *testing.T) {
	app, mock := newTestApp(t)
	start := testTime
	roleID := 2
	mock.ExpectQuery("SELECT(.+)FROM employees e(.+)LEFT JOIN roles").
		WillReturnRows(pgxmock.NewRows(append(employeeColumns, "role_name")).
			AddRow(1, &roleID, "Ada Lovelace", "London", &start, testTime, testTime, "Developer"))

	resp, body := get(t, app, "/employees")

	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, body, "<td>Ada Lovelace</td>")
	assert.Contains(t, body, "<td>2025-10-25</td>")
	assert.Contains(t, body, "<td>Developer</td>")
}

// TestEmployees_Create verifies form binding and the 422 re-render.
func TestEmployees_Create(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		app, mock := newTestApp(t)
		mock.ExpectQuery("SELECT EXISTS\\(SELECT 1 FROM roles").WithArgs(2).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectQuery("INSERT INTO employees").
			WithArgs(pgxmock.AnyArg(), "Ada Lovelace", "London", pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(3, testTime, testTime))

		resp, _ := postForm(t, app, "/employees", url.Values{
			"name": {"Ada Lovelace"}, "address": {"London"}, "start_date": {"2012-05-29"}, "role_id": {"2"},
		})

		assert.Equal(t, 302, resp.StatusCode)
		assert.Equal(t, "/employees/3", resp.Header.Get("Location"))
	})

	t.Run("missing start date", func(t *testing.T) {
		app, mock := newTestApp(t)
		mock.ExpectQuery("SELECT id, name, department(.+)FROM roles").
			WillReturnRows(pgxmock.NewRows(roleColumns).AddRow(2, "Developer", "Engineering", testTime, testTime))

		resp, body := postForm(t, app, "/employees", url.Values{"name": {"Ada Lovelace"}, "address": {"London"}})

		assert.Equal(t, 422, resp.StatusCode)
		assert.Contains(t, body, "start_date can&#39;t be blank")
		assert.Contains(t, body, `value="Ada Lovelace"`)
		assert.Contains(t, body, "Developer (Engineering)")
	})
}

// TestEmployees_Delete_Assigned verifies an employee still linked to a
// project is refused with 422.
func TestEmployees_Delete_Assigned(t *testing.T) {
	app, mock := newTestApp(t)
	mock.ExpectExec("DELETE FROM employees WHERE id").WithArgs(3).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	resp, body := postForm(t, app, "/employees/3/delete", url.Values{})

	assert.Equal(t, 422, resp.StatusCode)
	assert.Contains(t, body, "employee is still referenced by other records")
}

func TestEmployees_Show(t *testing.T) {
	app, mock := newTestApp(t)
	start := testTime
	roleID := 2
	mock.ExpectQuery("SELECT id, role_id, name(.+)FROM employees(.+)WHERE id").WithArgs(3).
		WillReturnRows(pgxmock.NewRows(employeeColumns).AddRow(3, &roleID, "Ada Lovelace", "London", &start, testTime, testTime))
	mock.ExpectQuery("SELECT (.+) FROM roles WHERE id").WithArgs(2).
		WillReturnRows(pgxmock.NewRows(roleColumns).AddRow(2, "Developer", "Engineering", testTime, testTime))
	mock.ExpectQuery("SELECT p.id(.+)FROM projects p(.+)JOIN employeeprojects").WithArgs(3).
		WillReturnRows(pgxmock.NewRows(projectColumns).AddRow(5, "gamma", 1, testTime, testTime))
	mock.ExpectQuery("SELECT id, name, employees_count(.+)FROM projects(.+)ORDER BY name").
		WillReturnRows(pgxmock.NewRows(projectColumns).
			AddRow(5, "gamma", 1, testTime, testTime).
			AddRow(6, "delta", 0, testTime, testTime))

	resp, body := get(t, app, "/employees/3")

	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, body, "<h1>Ada Lovelace</h1>")
	assert.Contains(t, body, "<strong>Start date:</strong> 2025-10-25")
	assert.Contains(t, body, `<a href="/roles/2">Developer</a>`)
	assert.Contains(t, body, `<a href="/projects/5">gamma</a>`)
	assert.Contains(t, body, `<option value="6">delta</option>`)
}

func TestEmployees_Edit(t *testing.T) {
	app, mock := newTestApp(t)
	start := testTime
	roleID := 2
	mock.ExpectQuery("SELECT id, role_id, name(.+)FROM employees(.+)WHERE id").WithArgs(3).
		WillReturnRows(pgxmock.NewRows(employeeColumns).AddRow(3, &roleID, "Ada Lovelace", "London", &start, testTime, testTime))
	mock.ExpectQuery("SELECT id, name, department(.+)FROM roles").
		WillReturnRows(pgxmock.NewRows(roleColumns).AddRow(2, "Developer", "Engineering", testTime, testTime))

	resp, body := get(t, app, "/employees/3/edit")

	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, body, "Editing Employee")
	assert.Contains(t, body, `action="/employees/3"`)
	assert.Contains(t, body, `value="2025-10-25"`)
	assert.Contains(t, body, `<option value="2" selected>Developer (Engineering)</option>`)
}

// TestEmployees_Update verifies an edit is saved, and that blanking a
// required field re-renders the edit form with 422 and writes nothing.
func TestEmployees_Update(t *testing.T) {
	expectFind := func(mock pgxmock.PgxPoolIface) {
		start := testTime
		mock.ExpectQuery("SELECT id, role_id, name(.+)FROM employees(.+)WHERE id").WithArgs(3).
			WillReturnRows(pgxmock.NewRows(employeeColumns).AddRow(3, (*int)(nil), "Ada Lovelace", "London", &start, testTime, testTime))
	}

	t.Run("valid", func(t *testing.T) {
		app, mock := newTestApp(t)
		expectFind(mock)
		mock.ExpectQuery("UPDATE employees").
			WithArgs(pgxmock.AnyArg(), "Ada King", "Ockham", pgxmock.AnyArg(), 3).
			WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(testTime))

		resp, _ := postForm(t, app, "/employees/3", url.Values{
			"name": {"Ada King"}, "address": {"Ockham"}, "start_date": {"2012-05-29"},
		})

		assert.Equal(t, 302, resp.StatusCode)
		assert.Equal(t, "/employees/3", resp.Header.Get("Location"))
	})

	t.Run("blank address", func(t *testing.T) {
		app, mock := newTestApp(t)
		expectFind(mock)
		mock.ExpectQuery("SELECT id, name, department(.+)FROM roles").
			WillReturnRows(pgxmock.NewRows(roleColumns))

		resp, body := postForm(t, app, "/employees/3", url.Values{
			"name": {"Ada King"}, "address": {""}, "start_date": {"2012-05-29"},
		})

		assert.Equal(t, 422, resp.StatusCode)
		assert.Contains(t, body, "address can&#39;t be blank")
		assert.Contains(t, body, "Editing Employee")
		assert.Contains(t, body, `value="Ada King"`)
	})
}
