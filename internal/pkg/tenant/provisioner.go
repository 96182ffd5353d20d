package tenant

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ErrProvisioningFailed is returned when a tenant store could not be fully
// created. Callers must not persist an account referencing the store.
var ErrProvisioningFailed = errors.New("tenant provisioning failed")

const storeNameBaseLimit = 30

var nonAlnumSpace = regexp.MustCompile(`[^a-z0-9\s]`)
var whitespaceRun = regexp.MustCompile(`\s+`)

// DeriveStoreName derives the tenant database name from a company name:
// lowercased, punctuation stripped, spaces collapsed to underscores,
// truncated, then suffixed with a millisecond timestamp for uniqueness.
func DeriveStoreName(companyName string) string {
	sanitized := strings.ToLower(companyName)
	sanitized = nonAlnumSpace.ReplaceAllString(sanitized, "")
	sanitized = whitespaceRun.ReplaceAllString(strings.TrimSpace(sanitized), "_")
	if len(sanitized) > storeNameBaseLimit {
		sanitized = sanitized[:storeNameBaseLimit]
	}

	return fmt.Sprintf("tenant_%s_%d", sanitized, time.Now().UnixMilli())
}

// StoreInfo describes a freshly provisioned tenant store.
type StoreInfo struct {
	StoreName string
	StoreURL  string
}

// Provisioner turns a signup into a fully materialized, empty tenant store.
type Provisioner struct {
	master   *gorm.DB
	registry *Registry
	urlFor   func(storeName string) string
}

func NewProvisioner(master *gorm.DB, registry *Registry, urlFor func(string) string) *Provisioner {
	return &Provisioner{
		master:   master,
		registry: registry,
		urlFor:   urlFor,
	}
}

// Provision creates the tenant database and materializes every catalog
// entity as an empty table, so reads work before the first insert. Partial
// failure tears the store down again; two signups racing onto the same
// derived name fail closed on the second CREATE DATABASE instead of sharing
// a half-initialized store.
func (p *Provisioner) Provision(companyName string) (*StoreInfo, error) {
	storeName := DeriveStoreName(companyName)

	// Deliberately not IF NOT EXISTS: a name collision must never silently
	// merge two tenants into one store.
	create := fmt.Sprintf("CREATE DATABASE `%s` CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci", storeName)
	if err := p.master.Exec(create).Error; err != nil {
		return nil, fmt.Errorf("%w: create database %s: %v", ErrProvisioningFailed, storeName, err)
	}

	conn, err := p.registry.ConnectionFor(storeName)
	if err != nil {
		p.rollback(storeName)
		return nil, fmt.Errorf("%w: connect to %s: %v", ErrProvisioningFailed, storeName, err)
	}

	for _, entity := range Catalog() {
		if err := conn.AutoMigrate(entity.Model); err != nil {
			p.rollback(storeName)
			return nil, fmt.Errorf("%w: create %s in %s: %v", ErrProvisioningFailed, entity.Name, storeName, err)
		}
	}

	log.Printf("Tenant store created: %s", storeName)

	return &StoreInfo{
		StoreName: storeName,
		StoreURL:  p.urlFor(storeName),
	}, nil
}

// Deprovision tears a store down again when the signup that created it
// cannot be completed, for example when the account insert fails.
func (p *Provisioner) Deprovision(storeName string) {
	p.rollback(storeName)
}

// rollback removes a partially created store. Best effort, the hard
// guarantee is that no account row references it.
func (p *Provisioner) rollback(storeName string) {
	p.registry.Evict(storeName)

	drop := fmt.Sprintf("DROP DATABASE IF EXISTS `%s`", storeName)
	if err := p.master.Exec(drop).Error; err != nil {
		log.Printf("Failed to drop partially provisioned store %s: %v", storeName, err)
	}
}
