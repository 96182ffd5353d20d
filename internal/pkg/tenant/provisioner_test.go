package tenant

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func storeBase(name string) string {
	idx := strings.LastIndex(name, "_")
	return name[:idx]
}

func TestDeriveStoreName(t *testing.T) {
	name := DeriveStoreName("Acme Clinic")
	assert.Regexp(t, regexp.MustCompile(`^tenant_acme_clinic_[0-9]+$`), name)
	assert.True(t, ValidStoreName(name))
}

func TestDeriveStoreNameIgnoresCaseAndPunctuation(t *testing.T) {
	a := DeriveStoreName("Acme Clinic!")
	b := DeriveStoreName("ACME, clinic")
	c := DeriveStoreName("acme   clinic")

	assert.Equal(t, "tenant_acme_clinic", storeBase(a))
	assert.Equal(t, storeBase(a), storeBase(b))
	assert.Equal(t, storeBase(a), storeBase(c))
}

func TestDeriveStoreNameTruncatesLongNames(t *testing.T) {
	name := DeriveStoreName("The Extraordinarily Long Medical Practice Of Doctor Brown")
	base := strings.TrimPrefix(storeBase(name), "tenant_")
	assert.LessOrEqual(t, len(base), storeNameBaseLimit)
	assert.True(t, ValidStoreName(name))
}

func TestDeriveStoreNameIsTimestamped(t *testing.T) {
	a := DeriveStoreName("Acme Clinic")
	time.Sleep(2 * time.Millisecond)
	b := DeriveStoreName("Acme Clinic")

	assert.Equal(t, storeBase(a), storeBase(b))
	assert.NotEqual(t, a, b, "same name at different times must yield different stores")
}

func TestProvisionFailsClosedOnCreateDatabase(t *testing.T) {
	master, mock := newMockDB(t)
	mock.ExpectExec("CREATE DATABASE").WillReturnError(errors.New("database exists"))

	r := NewRegistry(func(string) (*gorm.DB, error) {
		t.Fatal("no tenant connection may be opened when CREATE DATABASE fails")
		return nil, nil
	})
	p := NewProvisioner(master, r, func(name string) string { return "mysql://localhost:3306/" + name })

	_, err := p.Provision("Acme Clinic")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProvisioningFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProvisionRollsBackOnMigrationFailure(t *testing.T) {
	master, mock := newMockDB(t)
	mock.ExpectExec("CREATE DATABASE").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DROP DATABASE IF EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))

	// The tenant connection works but has no expectations queued, so the
	// first catalog migration fails partway through materialization.
	conn, _ := newMockDB(t)
	r := NewRegistry(func(string) (*gorm.DB, error) {
		return conn, nil
	})
	p := NewProvisioner(master, r, func(name string) string { return "mysql://localhost:3306/" + name })

	_, err := p.Provision("Acme Clinic")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProvisioningFailed)
	assert.NoError(t, mock.ExpectationsWereMet(), "a store without its full catalog must be dropped")
}

func TestProvisionRollsBackOnConnectFailure(t *testing.T) {
	master, mock := newMockDB(t)
	mock.ExpectExec("CREATE DATABASE").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DROP DATABASE IF EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))

	r := NewRegistry(func(string) (*gorm.DB, error) {
		return nil, errors.New("dial tcp: connection refused")
	})
	p := NewProvisioner(master, r, func(name string) string { return "mysql://localhost:3306/" + name })

	_, err := p.Provision("Acme Clinic")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProvisioningFailed)
	assert.NoError(t, mock.ExpectationsWereMet(), "the half-created database must be dropped")
}
