package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/internal/scheduler"
	"github.com/m04kA/SMC-CharterService/internal/usecase/get_day_availability"
	"github.com/m04kA/SMC-CharterService/internal/usecase/normalize_bookings"
	"github.com/m04kA/SMC-CharterService/internal/usecase/reconcile_charter"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// Validate проверяет конфигурацию. Ошибка каталога или таблиц схем - ошибка старта.
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("invalid config: server.http_port must be positive")
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("invalid config: metrics.path must start with /")
	}

	if _, err := c.Availability.Location(); err != nil {
		return fmt.Errorf("invalid config: availability.timezone: %w", err)
	}

	catalog, err := c.SlotCatalog()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := get_day_availability.ValidateCatalog(catalog); err != nil {
		return fmt.Errorf("invalid config: availability.slots: %w", err)
	}

	if err := c.Policy().Validate(); err != nil {
		return fmt.Errorf("invalid config: reconciliation: %w", err)
	}

	if c.Reconciliation.DigestEnabled {
		if err := scheduler.ValidateSchedule(c.Reconciliation.DigestSchedule); err != nil {
			return fmt.Errorf("invalid config: reconciliation.digest_schedule: %w", err)
		}
	}

	variants, years, err := c.SchemaTables()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := normalize_bookings.NewNormalizer(variants, years); err != nil {
		return fmt.Errorf("invalid config: normalizer: %w", err)
	}

	return nil
}

// SlotCatalog каталог слотов из [[availability.slots]]
func (c *Config) SlotCatalog() ([]domain.TimeSlot, error) {
	catalog := make([]domain.TimeSlot, 0, len(c.Availability.Slots))
	for i, s := range c.Availability.Slots {
		start, err := types.NewTimeStringFromString(s.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: availability.slots[%d].start_time: %v", domain.ErrConfiguration, i, err)
		}

		catalog = append(catalog, domain.TimeSlot{
			ID:            s.ID,
			Label:         s.Label,
			StartTime:     start,
			DurationHours: s.DurationHours,
			MinPrice:      s.MinPrice,
		})
	}
	return catalog, nil
}

// Policy пороги сверки из [reconciliation]
func (c *Config) Policy() reconcile_charter.Policy {
	return reconcile_charter.Policy{
		UrgentWithinDays: c.Reconciliation.UrgentWithinDays,
		SoonWithinDays:   c.Reconciliation.SoonWithinDays,
		BalanceDueDays:   c.Reconciliation.BalanceDueDays,
		MismatchEpsilon:  c.Reconciliation.PaymentMismatchEpsilon,
		LookbackDays:     c.Reconciliation.PaymentActionsLookbackDays,
	}
}

// SchemaTables встроенные таблицы вариантов и годов с дополнениями из [normalizer]
func (c *Config) SchemaTables() (map[domain.SchemaVariant]normalize_bookings.FieldMapping, map[int]domain.SchemaVariant, error) {
	variants := normalize_bookings.DefaultVariants()
	for name, v := range c.Normalizer.Variants {
		variants[domain.SchemaVariant(name)] = normalize_bookings.FieldMapping{
			Period:             domain.DataPeriod(v.Period),
			DateFormat:         normalize_bookings.DateFormat(v.DateFormat),
			StartDateFields:    v.StartDateFields,
			EndDateFields:      v.EndDateFields,
			BookedOnFields:     v.BookedOnFields,
			IDFields:           v.IDFields,
			LocatorFields:      v.LocatorFields,
			BoatFields:         v.BoatFields,
			GuestNameFields:    v.GuestNameFields,
			CharterTotalFields: v.CharterTotalFields,
			PaidAmountFields:   v.PaidAmountFields,
			TotalGuestsFields:  v.TotalGuestsFields,
			StatusFields:       v.StatusFields,
			DefaultStatus:      v.DefaultStatus,
		}
	}

	years := normalize_bookings.DefaultYearVariants()
	for key, name := range c.Normalizer.YearVariants {
		year, err := strconv.Atoi(key)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: normalizer.year_variants key %q is not a year", domain.ErrConfiguration, key)
		}
		years[year] = domain.SchemaVariant(name)
	}

	return variants, years, nil
}
