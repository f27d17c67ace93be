package database

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

// 绑定必须是事务里的第一条语句，业务查询排在其后
func TestWithTenantBindsFirst(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT set_tenant_context`).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE bookings`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := WithTenant(db, 42, func(tx *gorm.DB) error {
		return tx.Exec("UPDATE bookings SET status = 'cancelled' WHERE id = 1").Error
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 租户ID缺失时直接拒绝，连事务都不开
func TestWithTenantNoTenant(t *testing.T) {
	db, mock := newMockDB(t)

	called := false
	err := WithTenant(db, 0, func(tx *gorm.DB) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, ErrNoTenant)
	assert.True(t, IsBindFailure(err))
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 绑定失败必须回滚，业务闭包一次都不执行
func TestWithTenantBindFailureRollsBack(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT set_tenant_context`).
		WithArgs(int64(7)).
		WillReturnError(errors.New("function set_tenant_context does not exist"))
	mock.ExpectRollback()

	called := false
	err := WithTenant(db, 7, func(tx *gorm.DB) error {
		called = true
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBindFailed)
	assert.True(t, IsBindFailure(err))
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 业务闭包出错时整个事务回滚
func TestWithTenantFnErrorRollsBack(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT set_tenant_context`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	wantErr := errors.New("房间不存在")
	err := WithTenant(db, 3, func(tx *gorm.DB) error {
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.False(t, IsBindFailure(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
