package infrastructures

import (
	"github.com/safatanc/hotel-audit-core/internal/app/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table, parents before children
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Audit{},
		&models.AuditItem{},
	)
}
