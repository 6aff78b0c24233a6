package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/avissapr/coursework/internal/apperr"
	"github.com/avissapr/coursework/internal/fabricate"
	"github.com/avissapr/coursework/internal/repository"
	"github.com/avissapr/coursework/internal/validation"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRoleRepository_ListAll verifies roles come back in department/name order.
func TestRoleRepository_ListAll(t *testing.T) {
	mock := newMockDB(t)

	rows := pgxmock.NewRows([]string{"id", "name", "department", "created_at", "updated_at"}).
		AddRow(2, "Designer", "Design", testTime, testTime).
		AddRow(1, "Developer", "Engineering", testTime, testTime)

	mock.ExpectQuery("SELECT id, name, department, created_at, updated_at(.+)FROM roles(.+)ORDER BY department, name").
		WillReturnRows(rows)

	roles, err := repository.NewRoleRepository().ListAll(context.Background())

	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, "Designer", roles[0].Name)
	assert.Equal(t, "Engineering", roles[1].Department)
}

// TestRoleRepository_FindByID verifies lookup by primary key and the
// NotFound classification of a missing row.
//
// Test Cases:
//   - Existing role: Returns role
//   - Missing role: Returns apperr NotFound
//   - Connection failure: Returns apperr IOFailure
func TestRoleRepository_FindByID(t *testing.T) {
	tests := []struct {
		name         string
		mockSetup    func(pgxmock.PgxPoolIface)
		expectedKind apperr.Kind
		expectedErr  bool
	}{
		{
			name: "existing role",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "name", "department", "created_at", "updated_at"}).
					AddRow(1, "Developer", "Engineering", testTime, testTime)
				mock.ExpectQuery("SELECT (.+) FROM roles WHERE id").WithArgs(1).WillReturnRows(rows)
			},
		},
		{
			name: "missing role",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT (.+) FROM roles WHERE id").WithArgs(1).WillReturnError(pgx.ErrNoRows)
			},
			expectedKind: apperr.NotFound,
			expectedErr:  true,
		},
		{
			name: "connection failure",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT (.+) FROM roles WHERE id").WithArgs(1).WillReturnError(errors.New("conn reset"))
			},
			expectedKind: apperr.IOFailure,
			expectedErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockDB(t)
			tt.mockSetup(mock)

			role, err := repository.NewRoleRepository().FindByID(context.Background(), 1)

			if tt.expectedErr {
				require.Error(t, err)
				assert.Nil(t, role)
				assert.Equal(t, tt.expectedKind, apperr.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Developer", role.Name)
		})
	}
}

// TestRoleRepository_Create verifies insert populates the generated columns.
func TestRoleRepository_Create(t *testing.T) {
	mock := newMockDB(t)

	role := fabricate.Role()
	mock.ExpectQuery("INSERT INTO roles").
		WithArgs("Developer", "Engineering").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(7, testTime, testTime))

	err := repository.NewRoleRepository().Create(context.Background(), role)

	require.NoError(t, err)
	assert.Equal(t, 7, role.ID)
	assert.Equal(t, testTime, role.CreatedAt)
}

// TestRoleRepository_Update verifies an update of a missing row is NotFound.
func TestRoleRepository_Update(t *testing.T) {
	mock := newMockDB(t)

	role := fabricate.Role()
	role.ID = 99
	mock.ExpectQuery("UPDATE roles").
		WithArgs("Developer", "Engineering", 99).
		WillReturnError(pgx.ErrNoRows)

	err := repository.NewRoleRepository().Update(context.Background(), role)

	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

// TestRoleRepository_Delete verifies delete outcomes.
//
// Test Cases:
//   - Row removed: no error
//   - No row matched: apperr NotFound
//   - Employees still hold the role: ValidationFailure on "role"
func TestRoleRepository_Delete(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(pgxmock.PgxPoolIface)
		check     func(t *testing.T, err error)
	}{
		{
			name: "row removed",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec("DELETE FROM roles WHERE id").WithArgs(1).
					WillReturnResult(pgxmock.NewResult("DELETE", 1))
			},
			check: func(t *testing.T, err error) { assert.NoError(t, err) },
		},
		{
			name: "no row matched",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec("DELETE FROM roles WHERE id").WithArgs(1).
					WillReturnResult(pgxmock.NewResult("DELETE", 0))
			},
			check: func(t *testing.T, err error) { assert.Equal(t, apperr.NotFound, apperr.KindOf(err)) },
		},
		{
			name: "still referenced",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec("DELETE FROM roles WHERE id").WithArgs(1).
					WillReturnError(&pgconn.PgError{Code: "23503"})
			},
			check: func(t *testing.T, err error) {
				assert.Equal(t, apperr.ValidationFailure, apperr.KindOf(err))
				assert.True(t, apperr.ViolationsOf(err).Has("role", validation.ReasonReferenced))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockDB(t)
			tt.mockSetup(mock)

			tt.check(t, repository.NewRoleRepository().Delete(context.Background(), 1))
		})
	}
}

// TestRoleRepository_Employees verifies the has-many lookup filters on role_id.
func TestRoleRepository_Employees(t *testing.T) {
	mock := newMockDB(t)

	start := fabricate.StartDate
	rows := pgxmock.NewRows([]string{"id", "role_id", "name", "address", "start_date", "created_at", "updated_at"}).
		AddRow(3, intPtr(1), "Ada Lovelace", "London", &start, testTime, testTime)
	mock.ExpectQuery("SELECT (.+) FROM employees(.+)WHERE role_id").WithArgs(1).WillReturnRows(rows)

	employees, err := repository.NewRoleRepository().Employees(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, employees, 1)
	require.NotNil(t, employees[0].RoleID)
	assert.Equal(t, 1, *employees[0].RoleID)
	assert.Equal(t, "2012-05-29", employees[0].StartDateString())
}

// TestRoleRepository_Exists verifies the EXISTS probe.
func TestRoleRepository_Exists(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT EXISTS").WithArgs(5).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repository.NewRoleRepository().Exists(context.Background(), 5)

	require.NoError(t, err)
	assert.False(t, exists)
}
