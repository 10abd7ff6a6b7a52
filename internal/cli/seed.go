package cli

import (
	"context"
	"time"

	"github.com/safatanc/hotel-audit-core/internal/app/models"
	"github.com/safatanc/hotel-audit-core/internal/app/services"
	"gorm.io/gorm"
)

type seedUser struct {
	Username string
	Password string
	Role     models.UserRole
	Name     string
	Email    string
}

var seedUsers = []seedUser{
	{"admin", "admin123", models.UserRoleAdmin, "System Administrator", "admin@hotel-audit.com"},
	{"sarah.johnson", "auditor123", models.UserRoleAuditor, "Sarah Johnson", "sarah.johnson@hotel-audit.com"},
	{"mike.chen", "auditor123", models.UserRoleAuditor, "Mike Chen", "mike.chen@hotel-audit.com"},
	{"lisa.thompson", "reviewer123", models.UserRoleReviewer, "Lisa Thompson", "lisa.thompson@hotel-audit.com"},
	{"raj.patel", "corporate123", models.UserRoleCorporate, "Raj Patel", "raj.patel@hotel-audit.com"},
	{"priya.sharma", "hotelgm123", models.UserRoleHotelGM, "Priya Sharma", "priya.sharma@tajpalace.com"},
}

type seedProperty struct {
	Name          string
	Location      string
	Region        string
	Image         string
	Score         int
	NextAuditDays int
	Status        models.ComplianceZone
}

var seedProperties = []seedProperty{
	{"Taj Palace, New Delhi", "New Delhi", "North India", "https://images.unsplash.com/photo-1564501049412-61c2a3083791?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600", 85, 30, models.ComplianceZoneGreen},
	{"Taj Gateway, Mumbai", "Mumbai", "West India", "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600", 78, 15, models.ComplianceZoneAmber},
	{"Taj Coromandel, Chennai", "Chennai", "South India", "https://images.unsplash.com/photo-1578662996442-48f60103fc96?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600", 92, 45, models.ComplianceZoneGreen},
	{"Taj Bengal, Kolkata", "Kolkata", "East India", "https://images.unsplash.com/photo-1568992687947-868a62a9f521?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600", 88, 20, models.ComplianceZoneGreen},
}

// SeedResult reports what Seed inserted. Skipped is set when users already
// existed and nothing was written.
type SeedResult struct {
	Users      int
	Properties int
	Audits     int
	Skipped    bool
}

// Seed inserts the demo users, properties and one in-progress audit into an
// empty database, all in one transaction.
func Seed(ctx context.Context, db *gorm.DB, now time.Time) (*SeedResult, error) {
	result := &SeedResult{}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.User{}).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			result.Skipped = true
			return nil
		}

		usersByName := map[string]*models.User{}
		for _, seed := range seedUsers {
			hashed, err := services.HashPassword(seed.Password)
			if err != nil {
				return err
			}
			user := &models.User{
				Username: seed.Username,
				Password: hashed,
				Role:     seed.Role,
				Name:     seed.Name,
				Email:    seed.Email,
			}
			if err := tx.Create(user).Error; err != nil {
				return err
			}
			usersByName[seed.Username] = user
			result.Users++
		}

		var first *models.Property
		for _, seed := range seedProperties {
			image := seed.Image
			score := seed.Score
			next := now.AddDate(0, 0, seed.NextAuditDays)
			property := &models.Property{
				Name:           seed.Name,
				Location:       seed.Location,
				Region:         seed.Region,
				Image:          &image,
				Status:         seed.Status,
				LastAuditScore: &score,
				NextAuditDate:  &next,
			}
			if err := tx.Create(property).Error; err != nil {
				return err
			}
			if first == nil {
				first = property
			}
			result.Properties++
		}

		overall, cleanliness, branding, operational := 85, 90, 82, 83
		zone := models.ComplianceZoneGreen
		audit := &models.Audit{
			PropertyID:       first.ID,
			AuditorID:        &usersByName["sarah.johnson"].ID,
			ReviewerID:       &usersByName["lisa.thompson"].ID,
			Status:           models.AuditStatusInProgress,
			OverallScore:     &overall,
			CleanlinessScore: &cleanliness,
			BrandingScore:    &branding,
			OperationalScore: &operational,
			ComplianceZone:   &zone,
		}
		if err := tx.Create(audit).Error; err != nil {
			return err
		}
		result.Audits++

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
