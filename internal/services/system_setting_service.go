package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"garment-backend/internal/cache"
	"garment-backend/internal/logging"
	"garment-backend/internal/models"
	"garment-backend/internal/reconcile"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var (
	ErrSettingNotFound     = errors.New("setting not found")
	ErrInvalidSetting      = errors.New("invalid setting value")
	ErrSettingsUnavailable = errors.New("settings storage is not configured")
)

const salaryRatesCacheKey = cache.SettingsKeyPrefix + "salary"

// SettingStore is the persistence behind SystemSettingService
type SettingStore interface {
	Get(ctx context.Context, key string) (*models.SystemSetting, error)
	List(ctx context.Context) ([]*models.SystemSetting, error)
	Upsert(ctx context.Context, key, value, description string) (*models.SystemSetting, error)
}

type SystemSettingService struct {
	Repo SettingStore
}

// NewSystemSettingService accepts a nil store; built-in defaults are served then
func NewSystemSettingService(repo SettingStore) *SystemSettingService {
	return &SystemSettingService{Repo: repo}
}

var settingDescriptions = map[string]string{
	models.SettingSalaryRates:          "Daily regular and overtime rate per salary section",
	models.SettingSalaryFallbackRate:   "Rates for salary sections missing from salary_rates",
	models.SettingSalarySectionMapping: "Manpower section to salary section mapping",
}

func defaultSettingValue(key string) (string, bool) {
	var v interface{}
	switch key {
	case models.SettingSalaryRates:
		v = reconcile.DefaultRateTable().Rates
	case models.SettingSalaryFallbackRate:
		v = reconcile.DefaultFallbackRate
	case models.SettingSalarySectionMapping:
		v = reconcile.DefaultSectionMapping()
	default:
		return "", false
	}
	b, _ := json.Marshal(v)
	return string(b), true
}

func defaultSetting(key string) (*models.SystemSetting, bool) {
	value, ok := defaultSettingValue(key)
	if !ok {
		return nil, false
	}
	return &models.SystemSetting{
		SettingKey:   key,
		SettingValue: value,
		Description:  settingDescriptions[key],
	}, true
}

func (s *SystemSettingService) GetSetting(ctx context.Context, key string) (*models.SystemSetting, error) {
	if s.Repo != nil {
		setting, err := s.Repo.Get(ctx, key)
		if err == nil {
			return setting, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}
	if setting, ok := defaultSetting(key); ok {
		return setting, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrSettingNotFound, key)
}

// ListSettings returns stored settings plus the defaults of known keys not stored yet
func (s *SystemSettingService) ListSettings(ctx context.Context) ([]*models.SystemSetting, error) {
	settings := []*models.SystemSetting{}
	if s.Repo != nil {
		stored, err := s.Repo.List(ctx)
		if err != nil {
			return nil, err
		}
		settings = append(settings, stored...)
	}

	have := make(map[string]bool, len(settings))
	for _, st := range settings {
		have[st.SettingKey] = true
	}
	for _, key := range []string{models.SettingSalaryFallbackRate, models.SettingSalaryRates, models.SettingSalarySectionMapping} {
		if have[key] {
			continue
		}
		if setting, ok := defaultSetting(key); ok {
			settings = append(settings, setting)
		}
	}
	return settings, nil
}

// UpsertSetting validates and stores a setting, then drops cached rates
func (s *SystemSettingService) UpsertSetting(ctx context.Context, key, value, description string) (*models.SystemSetting, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidSetting)
	}
	if err := validateSetting(key, value); err != nil {
		return nil, err
	}
	if s.Repo == nil {
		return nil, ErrSettingsUnavailable
	}
	if description == "" {
		description = settingDescriptions[key]
	}

	setting, err := s.Repo.Upsert(ctx, key, value, description)
	if err != nil {
		return nil, err
	}
	cache.InvalidateSettingCaches(ctx)
	cache.PreWarmKey(salaryRatesCacheKey, s.encodedSalaryRates, 24*time.Hour)
	return setting, nil
}

func validateSetting(key, value string) error {
	var err error
	switch key {
	case models.SettingSalaryRates:
		var rates map[string]models.SalaryRate
		if err = json.Unmarshal([]byte(value), &rates); err == nil {
			if rates == nil {
				err = errors.New("must be a JSON object")
			}
			for section, r := range rates {
				if r.RegularRate < 0 || r.OvertimeRate < 0 {
					err = fmt.Errorf("negative rate for %s", section)
					break
				}
			}
		}
	case models.SettingSalaryFallbackRate:
		var rate *models.SalaryRate
		if err = json.Unmarshal([]byte(value), &rate); err == nil {
			switch {
			case rate == nil:
				err = errors.New("must be a JSON object")
			case rate.RegularRate < 0 || rate.OvertimeRate < 0:
				err = errors.New("negative rate")
			}
		}
	case models.SettingSalarySectionMapping:
		var mapping map[string]string
		if err = json.Unmarshal([]byte(value), &mapping); err == nil && mapping == nil {
			err = errors.New("must be a JSON object")
		}
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidSetting, key, err)
	}
	return nil
}

// salaryRates is the cached form of the three salary settings
type salaryRates struct {
	Rates    map[string]models.SalaryRate `json:"rates"`
	Fallback models.SalaryRate            `json:"fallback"`
	Mapping  map[string]string            `json:"mapping"`
}

// SalaryRates assembles the rate table and section mapping used by the
// worksheet. Missing or broken settings fall back to built-in defaults.
func (s *SystemSettingService) SalaryRates(ctx context.Context) (reconcile.RateTable, reconcile.SectionMapping, error) {
	if data, ok := cache.GetCached(ctx, salaryRatesCacheKey); ok {
		var cached salaryRates
		if err := json.Unmarshal(data, &cached); err == nil {
			return reconcile.RateTable{Rates: cached.Rates, Fallback: cached.Fallback}, reconcile.SectionMapping(cached.Mapping), nil
		}
	}

	loaded, err := s.loadSalaryRates(ctx)
	if err != nil {
		return reconcile.DefaultRateTable(), reconcile.DefaultSectionMapping(), err
	}
	if data, err := json.Marshal(loaded); err == nil {
		cache.SetCached(ctx, salaryRatesCacheKey, data, 24*time.Hour)
	}
	return reconcile.RateTable{Rates: loaded.Rates, Fallback: loaded.Fallback}, reconcile.SectionMapping(loaded.Mapping), nil
}

func (s *SystemSettingService) encodedSalaryRates(ctx context.Context) ([]byte, error) {
	loaded, err := s.loadSalaryRates(ctx)
	if err != nil {
		return nil, err
	}
	return json.Marshal(loaded)
}

func (s *SystemSettingService) loadSalaryRates(ctx context.Context) (salaryRates, error) {
	out := salaryRates{
		Rates:    reconcile.DefaultRateTable().Rates,
		Fallback: reconcile.DefaultFallbackRate,
		Mapping:  reconcile.DefaultSectionMapping(),
	}
	logger := logging.Named("settings")

	// read reports ok=false for a malformed value, whose partial decode is ignored
	read := func(key string, dest interface{}) (bool, error) {
		setting, err := s.GetSetting(ctx, key)
		if err != nil {
			return false, fmt.Errorf("failed to read %s: %w", key, err)
		}
		if err := json.Unmarshal([]byte(setting.SettingValue), dest); err != nil {
			logger.Warn("ignoring malformed setting", zap.String("key", key), zap.Error(err))
			return false, nil
		}
		return true, nil
	}

	// Stored maps are merged over the defaults, never swapped in whole
	var rates map[string]models.SalaryRate
	ok, err := read(models.SettingSalaryRates, &rates)
	if err != nil {
		return out, err
	}
	if ok {
		for section, rate := range rates {
			out.Rates[section] = rate
		}
	}

	var fallback *models.SalaryRate
	ok, err = read(models.SettingSalaryFallbackRate, &fallback)
	if err != nil {
		return out, err
	}
	if ok && fallback != nil {
		out.Fallback = *fallback
	}

	var mapping map[string]string
	ok, err = read(models.SettingSalarySectionMapping, &mapping)
	if err != nil {
		return out, err
	}
	if ok {
		for from, to := range mapping {
			out.Mapping[from] = to
		}
	}
	return out, nil
}
