package deliveries

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/hotel-audit-core/internal/app/errors"
	"github.com/safatanc/hotel-audit-core/internal/app/models"
	"github.com/safatanc/hotel-audit-core/internal/app/pkg"
)

const dateOnlyLayout = "2006-01-02"

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewBadRequestError(fmt.Sprintf("Invalid %s", name))
	}
	return uint(id), nil
}

// parseBody decodes the request body, reporting any decode failure as 400
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errors.NewBadRequestError("Invalid request body")
	}
	return nil
}

func queryInt(c *fiber.Ctx, name string, defaultValue int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewBadRequestError(fmt.Sprintf("Invalid %s", name))
	}
	return value, nil
}

func queryIntPtr(c *fiber.Ctx, name string) (*int, error) {
	if c.Query(name) == "" {
		return nil, nil
	}
	value, err := queryInt(c, name, 0)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

// parseAuditFilter reads the audit query builder criteria from the query
// string. A plain date_to covers the whole day.
func parseAuditFilter(c *fiber.Ctx) (models.AuditFilter, error) {
	var filter models.AuditFilter
	var err error

	if filter.PropertyIDs, err = pkg.ParseUintList(c.Query("property_ids")); err != nil {
		return filter, errors.NewBadRequestError("Invalid property_ids")
	}
	if filter.AuditorIDs, err = pkg.ParseUintList(c.Query("auditor_ids")); err != nil {
		return filter, errors.NewBadRequestError("Invalid auditor_ids")
	}

	for _, raw := range pkg.SplitList(c.Query("status")) {
		status := models.AuditStatus(raw)
		if !status.IsValid() {
			return filter, errors.NewBadRequestError(fmt.Sprintf("Invalid status: %s", raw))
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	for _, raw := range pkg.SplitList(c.Query("compliance_zones")) {
		zone := models.ComplianceZone(raw)
		if !zone.IsValid() {
			return filter, errors.NewBadRequestError(fmt.Sprintf("Invalid compliance zone: %s", raw))
		}
		filter.ComplianceZones = append(filter.ComplianceZones, zone)
	}

	if filter.DateFrom, err = pkg.ParseDate(c.Query("date_from")); err != nil {
		return filter, errors.NewBadRequestError("Invalid date_from")
	}

	dateTo := c.Query("date_to")
	if filter.DateTo, err = pkg.ParseDate(dateTo); err != nil {
		return filter, errors.NewBadRequestError("Invalid date_to")
	}
	if filter.DateTo != nil && len(dateTo) == len(dateOnlyLayout) {
		endOfDay := filter.DateTo.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &endOfDay
	}

	if filter.ScoreMin, err = queryIntPtr(c, "score_min"); err != nil {
		return filter, err
	}
	if filter.ScoreMax, err = queryIntPtr(c, "score_max"); err != nil {
		return filter, err
	}

	return filter, nil
}
