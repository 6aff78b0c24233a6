package handlers_test

import (
	"net/url"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
)

func TestRoles_Show(t *testing.T) {
	app, mock := newTestApp(t)
	start := testTime
	roleID := 1
	mock.ExpectQuery("SELECT (.+) FROM roles WHERE id").WithArgs(1).
		WillReturnRows(pgxmock.NewRows(roleColumns).AddRow(1, "Developer", "Engineering", testTime, testTime))
	mock.ExpectQuery("SELECT (.+) FROM employees(.+)WHERE role_id").WithArgs(1).
		WillReturnRows(pgxmock.NewRows(employeeColumns).AddRow(3, &roleID, "Ada Lovelace", "London", &start, testTime, testTime))

	resp, body := get(t, app, "/roles/1")

	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, body, "<strong>Department:</strong> Engineering")
	assert.Contains(t, body, `<a href="/employees/3">Ada Lovelace</a>`)
}

func TestRoles_Edit(t *testing.T) {
	app, mock := newTestApp(t)
	mock.ExpectQuery("SELECT (.+) FROM roles WHERE id").WithArgs(1).
		WillReturnRows(pgxmock.NewRows(roleColumns).AddRow(1, "Developer", "Engineering", testTime, testTime))

	resp, body := get(t, app, "/roles/1/edit")

	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, body, "Editing Role")
	assert.Contains(t, body, `action="/roles/1"`)
	assert.Contains(t, body, `value="Engineering"`)
}

// TestRoles_Create verifies both outcomes of the role form.
func TestRoles_Create(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		app, mock := newTestApp(t)
		mock.ExpectQuery("INSERT INTO roles").WithArgs("Developer", "Engineering").
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(4, testTime, testTime))

		resp, _ := postForm(t, app, "/roles", url.Values{"name": {"Developer"}, "department": {"Engineering"}})

		assert.Equal(t, 302, resp.StatusCode)
		assert.Equal(t, "/roles/4", resp.Header.Get("Location"))
	})

	t.Run("blank fields", func(t *testing.T) {
		app, _ := newTestApp(t)

		resp, body := postForm(t, app, "/roles", url.Values{})

		assert.Equal(t, 422, resp.StatusCode)
		assert.Contains(t, body, "2 error(s)")
		assert.Contains(t, body, "department can&#39;t be blank")
	})
}

func TestRoles_Delete(t *testing.T) {
	t.Run("unused role", func(t *testing.T) {
		app, mock := newTestApp(t)
		mock.ExpectExec("DELETE FROM roles WHERE id").WithArgs(1).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		resp, _ := postForm(t, app, "/roles/1/delete", url.Values{})

		assert.Equal(t, 302, resp.StatusCode)
		assert.Equal(t, "/roles", resp.Header.Get("Location"))
	})

	t.Run("role in use", func(t *testing.T) {
		app, mock := newTestApp(t)
		mock.ExpectExec("DELETE FROM roles WHERE id").WithArgs(1).
			WillReturnError(&pgconn.PgError{Code: "23503"})

		resp, body := postForm(t, app, "/roles/1/delete", url.Values{})

		assert.Equal(t, 422, resp.StatusCode)
		assert.Contains(t, body, "role is still referenced by other records")
	})
}

func TestRoles_Index(t *testing.T) {
	app, mock := newTestApp(t)
	mock.ExpectQuery("SELECT id, name, department(.+)FROM roles(.+)ORDER BY department, name").
		WillReturnRows(pgxmock.NewRows(roleColumns).
			AddRow(1, "Developer", "Engineering", testTime, testTime).
			AddRow(2, "Recruiter", "People", testTime, testTime))

	resp, body := get(t, app, "/roles")

	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, body, "<td>Developer</td>")
	assert.Contains(t, body, "<td>People</td>")
	assert.Contains(t, body, `action="/roles/2/delete"`)
}

// TestRoles_Update verifies both outcomes of the edit form.
func TestRoles_Update(t *testing.T) {
	expectFind := func(mock pgxmock.PgxPoolIface) {
		mock.ExpectQuery("SELECT (.+) FROM roles WHERE id").WithArgs(1).
			WillReturnRows(pgxmock.NewRows(roleColumns).AddRow(1, "Developer", "Engineering", testTime, testTime))
	}

	t.Run("valid", func(t *testing.T) {
		app, mock := newTestApp(t)
		expectFind(mock)
		mock.ExpectQuery("UPDATE roles").WithArgs("Lead Developer", "Engineering", 1).
			WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(testTime))

		resp, _ := postForm(t, app, "/roles/1", url.Values{"name": {"Lead Developer"}, "department": {"Engineering"}})

		assert.Equal(t, 302, resp.StatusCode)
		assert.Equal(t, "/roles/1", resp.Header.Get("Location"))
	})

	t.Run("blank department", func(t *testing.T) {
		app, mock := newTestApp(t)
		expectFind(mock)

		resp, body := postForm(t, app, "/roles/1", url.Values{"name": {"Lead Developer"}, "department": {""}})

		assert.Equal(t, 422, resp.StatusCode)
		assert.Contains(t, body, "department can&#39;t be blank")
		assert.Contains(t, body, `action="/roles/1"`)
		assert.Contains(t, body, `value="Lead Developer"`)
	})
}
