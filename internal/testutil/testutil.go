// Package testutil builds in-memory databases and fixtures for package tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/barber-backoffice/internal/db"
	"github.com/BruksfildServices01/barber-backoffice/internal/models"
)

var seq atomic.Int64

func next() int64 { return seq.Add(1) }

// NewDB returns a migrated SQLite database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, dbpkg.Migrate(db))
	return db
}

func Organization(t *testing.T, db *gorm.DB, name string) *models.Organization {
	t.Helper()
	org := &models.Organization{
		Name:     name,
		Slug:     fmt.Sprintf("org-%d", next()),
		Timezone: "America/Sao_Paulo",
	}
	require.NoError(t, db.Create(org).Error)
	return org
}

func Profile(t *testing.T, db *gorm.DB, orgID uint, name, role string) *models.Profile {
	t.Helper()
	p := &models.Profile{
		OrganizationID: orgID,
		FullName:       name,
		Email:          fmt.Sprintf("p%d@example.com", next()),
		PasswordHash:   "x",
		Role:           role,
		IsActive:       true,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func Client(t *testing.T, db *gorm.DB, orgID uint, name string) *models.Client {
	t.Helper()
	c := &models.Client{OrganizationID: orgID, Name: name}
	require.NoError(t, db.Create(c).Error)
	return c
}

func Service(t *testing.T, db *gorm.DB, orgID uint, name string, price string, minutes int) *models.Service {
	t.Helper()
	s := &models.Service{
		OrganizationID:  orgID,
		Name:            name,
		Price:           decimal.RequireFromString(price),
		DurationMinutes: minutes,
		IsActive:        true,
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

func Product(t *testing.T, db *gorm.DB, orgID uint, name string, stock int) *models.Product {
	t.Helper()
	p := &models.Product{
		OrganizationID: orgID,
		Name:           name,
		SalePrice:      decimal.RequireFromString("25.00"),
		StockQuantity:  stock,
		MinStockAlert:  2,
		IsActive:       true,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func Appointment(t *testing.T, db *gorm.DB, orgID, clientID, serviceID, barberID uint, start time.Time, minutes int, status, price string) *models.Appointment {
	t.Helper()
	a := &models.Appointment{
		OrganizationID: orgID,
		ClientID:       clientID,
		ServiceID:      serviceID,
		BarberID:       barberID,
		StartTime:      start.UTC(),
		EndTime:        start.Add(time.Duration(minutes) * time.Minute).UTC(),
		Price:          decimal.RequireFromString(price),
		Status:         status,
	}
	require.NoError(t, db.Create(a).Error)
	return a
}
