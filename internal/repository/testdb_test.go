package repository

import (
	"kzstore-backoffice/internal/model"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Product{},
		&model.User{},
		&model.Order{},
		&model.AbandonedCart{},
		&model.AnalyticsMetric{},
		&model.JobRun{},
	))

	return db
}

// backdate rewrites timestamps directly so gorm's auto-updates do not
// overwrite the fixture times.
func backdate(t *testing.T, db *gorm.DB, value interface{}, columns map[string]interface{}) {
	t.Helper()
	require.NoError(t, db.Model(value).UpdateColumns(columns).Error)
}
