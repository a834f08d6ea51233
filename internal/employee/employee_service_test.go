package employee_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-leave/internal/auth/password"
	"go-leave/internal/employee"
	employeeerrors "go-leave/internal/employee/errors"
	employeeMock "go-leave/internal/employee/mock"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/spreadsheet"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   employee.Service
	repo      *employeeMock.MockRepository
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	dbRedis, redisMock := redismock.NewClientMock()
	repo := employeeMock.NewMockRepository(ctrl)

	svc := employee.NewService(db, repo, password.Plaintext{}, dbRedis)

	t.Cleanup(func() { db.Close() })

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		redismock: redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func rosterFile(t *testing.T, header []string, rows ...[]string) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	assert.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		r := row
		assert.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}

	buf, err := f.WriteToBuffer()
	assert.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestEmployeeService_GetAll(t *testing.T) {
	ctx := context.Background()
	emps := []employee.Employee{
		{RegistryNo: "1", FullName: "Ali Veli", Secret: "s3cret", Role: "STAFF", ApproverEmail: "mgr@example.com"},
	}

	t.Run("cache miss loads roster and fills cache", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.redismock.ExpectGet(employee.RosterCacheKey).RedisNil()
		deps.repo.EXPECT().FindAll(ctx).Return(emps, nil)

		expected := []employee.EmployeeResponse{{RegistryNo: "1", FullName: "Ali Veli", Role: "STAFF", ApproverEmail: "mgr@example.com"}}
		b, _ := json.Marshal(expected)
		deps.redismock.ExpectSet(employee.RosterCacheKey, string(b), time.Hour).SetVal("OK")

		resp, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		assert.Equal(t, expected, resp)
		assert.NotContains(t, string(b), "s3cret")
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		deps := setupServiceTest(t)

		cached := []employee.EmployeeResponse{{RegistryNo: "9", FullName: "Cached"}}
		b, _ := json.Marshal(cached)
		deps.redismock.ExpectGet(employee.RosterCacheKey).SetVal(string(b))

		resp, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		assert.Equal(t, cached, resp)
	})

	t.Run("repository error", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.redismock.ExpectGet(employee.RosterCacheKey).RedisNil()
		deps.repo.EXPECT().FindAll(ctx).Return(nil, errors.New("db down"))

		_, err := deps.service.GetAll(ctx)

		assert.EqualError(t, err, "db down")
	})
}

func TestEmployeeService_Authenticate(t *testing.T) {
	ctx := context.Background()
	stored := &employee.Employee{RegistryNo: "1", FullName: "Ali Veli", Secret: "1234", Role: "MANAGER"}

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByFullName(ctx, "Ali Veli").Return(stored, nil)

		resp, err := deps.service.Authenticate(ctx, " Ali Veli ", "1234")

		assert.NoError(t, err)
		assert.Equal(t, "MANAGER", resp.Role)
	})

	t.Run("wrong secret", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByFullName(ctx, "Ali Veli").Return(stored, nil)

		_, err := deps.service.Authenticate(ctx, "Ali Veli", "0000")

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidCredentials)
	})

	t.Run("unknown name", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByFullName(ctx, "Nobody").Return(&employee.Employee{}, gorm.ErrRecordNotFound)

		_, err := deps.service.Authenticate(ctx, "Nobody", "1234")

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidCredentials)
	})
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()
	req := employee.CreateEmployeeRequest{
		RegistryNo: "1001",
		FullName:   "Ayşe Kaya",
		Secret:     "pw",
		Role:       "Yönetici",
		Email:      "ayse@example.com",
	}

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByRegistryNo(ctx, "1001").Return(false, nil)
		deps.repo.EXPECT().ExistsByFullName(ctx, "Ayşe Kaya").Return(false, nil)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e *employee.Employee) error {
				assert.Equal(t, "MANAGER", e.Role)
				assert.Equal(t, "pw", e.Secret)
				return nil
			})
		deps.redismock.ExpectDel(employee.RosterCacheKey).SetVal(1)

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, "1001", resp.RegistryNo)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate full name", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByRegistryNo(ctx, "1001").Return(false, nil)
		deps.repo.EXPECT().ExistsByFullName(ctx, "Ayşe Kaya").Return(true, nil)

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrFullNameAlreadyExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate registry number", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByRegistryNo(ctx, "1001").Return(true, nil)

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrRegistryNoAlreadyExists)
	})

	t.Run("invalid role", func(t *testing.T) {
		deps := setupServiceTest(t)
		bad := req
		bad.Role = "intern"

		_, err := deps.service.Create(ctx, bad)

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidRole)
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().DeleteByFullName(ctx, "Ali Veli").Return(nil)
		deps.redismock.ExpectDel(employee.RosterCacheKey).SetVal(1)

		assert.NoError(t, deps.service.Delete(ctx, "Ali Veli"))
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().DeleteByFullName(ctx, "Ghost").Return(gorm.ErrRecordNotFound)

		err := deps.service.Delete(ctx, "Ghost")

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("missing role column inserts nothing", func(t *testing.T) {
		deps := setupServiceTest(t)
		header := []string{"Sicil", "Ad Soyad", "Sifre", "Meslek", "Departman", "Email", "Onayci_Email", "Cep_Telefonu"}
		file := rosterFile(t, header, []string{"1", "Ali Veli", "pw", "Dev", "IT", "a@x.com", "m@x.com", "555"})

		_, err := deps.service.Import(ctx, file)

		assert.ErrorIs(t, err, employeeerrors.ErrMissingColumns)
		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, []string{"Rol"}, appErr.Details)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("existing and repeated registry numbers are skipped", func(t *testing.T) {
		deps := setupServiceTest(t)
		file := rosterFile(t, spreadsheet.RosterColumns,
			[]string{"1", "Ali Veli", "pw", "Dev", "IT", "ali@x.com", "mgr@x.com", "Personel", "555"},
			[]string{"2", "Ayşe Kaya", "pw", "Dev", "IT", "ayse@x.com", "mgr@x.com", "Personel", "556"},
			[]string{"2", "Ayşe Kaya Copy", "pw", "Dev", "IT", "c@x.com", "mgr@x.com", "Personel", "557"},
			[]string{"3", "Can Demir", "pw", "Lead", "IT", "can@x.com", "", "İK", "558"},
		)

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByRegistryNo(ctx, "1").Return(true, nil)
		deps.repo.EXPECT().ExistsByRegistryNo(ctx, "2").Return(false, nil)
		deps.repo.EXPECT().ExistsByFullName(ctx, "Ayşe Kaya").Return(false, nil)
		deps.repo.EXPECT().ExistsByRegistryNo(ctx, "3").Return(false, nil)
		deps.repo.EXPECT().ExistsByFullName(ctx, "Can Demir").Return(false, nil)

		var created []employee.Employee
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e *employee.Employee) error {
				created = append(created, *e)
				return nil
			}).
			Times(2)
		deps.redismock.ExpectDel(employee.RosterCacheKey).SetVal(1)

		result, err := deps.service.Import(ctx, file)

		assert.NoError(t, err)
		assert.Equal(t, 2, result.Inserted)
		assert.Len(t, result.Skipped, 2)
		assert.Equal(t, "1", result.Skipped[0].RegistryNo)
		assert.Equal(t, employee.SkipDuplicateRegistry, result.Skipped[1].Reason)
		assert.Equal(t, 4, result.Skipped[1].Row)
		assert.Equal(t, "HR", created[1].Role)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unreadable workbook", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Import(ctx, bytes.NewReader([]byte("not a zip")))

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidWorkbook)
	})
}
