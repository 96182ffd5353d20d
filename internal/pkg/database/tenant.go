package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/vertisaas/medisuite/internal/pkg/env"
)

// TenantDSN builds the MySQL DSN for a tenant database. Tenant databases
// live on the same server as the master store unless TENANT_DB_HOST is set.
func TenantDSN(storeName string) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		env.GetEnv("TENANT_DB_USER", env.GetEnv("DB_USER", "")),
		env.GetEnv("TENANT_DB_PASSWORD", env.GetEnv("DB_PASSWORD", "")),
		env.GetEnv("TENANT_DB_HOST", env.GetEnv("DB_HOST", "127.0.0.1")),
		env.GetEnv("TENANT_DB_PORT", env.GetEnv("DB_PORT", "3306")),
		storeName,
	)
}

// TenantURL is the reconstructable connection URL persisted with the account.
// It never includes credentials.
func TenantURL(storeName string) string {
	return fmt.Sprintf("mysql://%s:%s/%s",
		env.GetEnv("TENANT_DB_HOST", env.GetEnv("DB_HOST", "127.0.0.1")),
		env.GetEnv("TENANT_DB_PORT", env.GetEnv("DB_PORT", "3306")),
		storeName,
	)
}

// OpenTenantStore opens a gorm handle to one tenant database. Used as the
// registry's default opener; tests inject their own.
func OpenTenantStore(storeName string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       TenantDSN(storeName),
		DefaultStringSize:         256,
		DisableDatetimePrecision:  true,
		DontSupportRenameIndex:    true,
		DontSupportRenameColumn:   true,
		SkipInitializeWithVersion: false,
	}), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(env.GetEnvInt("TENANT_DB_MAX_IDLE_CONNS", 2))
	sqlDB.SetMaxOpenConns(env.GetEnvInt("TENANT_DB_MAX_OPEN_CONNS", 10))

	return db, nil
}
