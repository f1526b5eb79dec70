package repository

import (
	"time"

	"gorm.io/gorm"
)

// DateRange bounds a query on created_at (or date, for metric snapshots).
// Either side may be nil for an open bound.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

func (r DateRange) apply(db *gorm.DB, column string) *gorm.DB {
	if r.Start != nil {
		db = db.Where(column+" >= ?", *r.Start)
	}
	if r.End != nil {
		db = db.Where(column+" <= ?", *r.End)
	}
	return db
}
