package cli

import (
	"fmt"
	"time"

	"github.com/safatanc/hotel-audit-core/internal/app/services"
	"github.com/safatanc/hotel-audit-core/internal/infrastructures"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// openDB is replaced in tests
var openDB = func() (*gorm.DB, error) {
	return infrastructures.OpenDatabase(infrastructures.Config.DATABASE_DRIVER, infrastructures.Config.DATABASE_URL)
}

// RootCmd builds the auditctl command tree
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "auditctl",
		Short: "Hotel audit administration tool",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			infrastructures.LoadConfig()
			infrastructures.ConfigureLogger()
		},
	}

	rootCmd.AddCommand(
		MigrateCmd(),
		SeedCmd(),
		CleanupCmd(),
		RescheduleCmd(),
	)

	return rootCmd
}

func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			if err := infrastructures.AutoMigrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Database schema is up to date")
			return nil
		},
	}
}

func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo users, properties and an audit into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			if err := infrastructures.AutoMigrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			result, err := Seed(cmd.Context(), db, time.Now().UTC())
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}

			out := cmd.OutOrStdout()
			if result.Skipped {
				fmt.Fprintln(out, "Database already contains users, skipping seed")
				return nil
			}
			fmt.Fprintf(out, "Seeded %d users, %d properties, %d audits\n", result.Users, result.Properties, result.Audits)
			return nil
		},
	}
}

func CleanupCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete audits and their items older than the retention period",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("days") && infrastructures.Config != nil && infrastructures.Config.AUDIT_RETENTION_DAYS > 0 {
				days = infrastructures.Config.AUDIT_RETENTION_DAYS
			}

			db, err := openDB()
			if err != nil {
				return err
			}

			result, err := services.NewMaintenanceService(db, nil).CleanupOldData(cmd.Context(), days)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d audit items and %d audits\n", result.DeletedItems, result.DeletedAudits)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", services.DefaultRetentionDays, "retention period in days")

	return cmd
}

func RescheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reschedule",
		Short: "Move overdue next audit dates forward by the audit interval",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}

			result, err := services.NewMaintenanceService(db, nil).UpdatePropertyAuditSchedules(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Rescheduled %d properties to %s\n", result.UpdatedProperties, result.NextAuditDate.Format("2006-01-02"))
			return nil
		},
	}
}
