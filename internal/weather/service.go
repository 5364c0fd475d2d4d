package weather

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/laiito/weatherApi/internal/cache"
	"github.com/laiito/weatherApi/internal/city"
)

// Answer cache TTLs. Archived weather never changes, so past dates are
// cached for a week; today's and forecast data can still move as providers
// update, and error answers should not pin a bad query for long.
const (
	ShortTTL = 24 * time.Hour
	LongTTL  = 7 * 24 * time.Hour
)

// Cache key prefixes. The final-answer key carries an explicit delimiter
// between date and city so distinct (date, city) pairs can never share a
// key.
const (
	answerKeyPrefix = "wx:"
	cityKeyPrefix   = "city:"
)

// ArchiveClient fetches an archived observation by provider city code.
type ArchiveClient interface {
	Daily(ctx context.Context, cityCode int, date time.Time) (*Observation, error)
}

// DailyClient fetches an observation or forecast by city name.
type DailyClient interface {
	Daily(ctx context.Context, cityName string, date time.Time) (*Observation, error)
}

// ServiceConfig holds the dependencies of the weather service.
type ServiceConfig struct {
	// Archive serves RegimeArchive dates.
	Archive ArchiveClient

	// Recent serves RegimeRecent dates.
	Recent DailyClient

	// Forecast serves RegimeForecast dates.
	Forecast DailyClient

	// Cache stores final answers and resolved city codes.
	Cache cache.Store

	// Cities resolves city names to provider codes.
	Cities *city.Registry

	// Logger for service operations.
	Logger zerolog.Logger

	// Now is overridable in tests; defaults to time.Now.
	Now func() time.Time
}

// Service answers weather queries: it validates input, consults the answer
// cache, dispatches to the regime's provider on a miss and writes the
// outcome back with an outcome-dependent TTL.
type Service struct {
	archive  ArchiveClient
	recent   DailyClient
	forecast DailyClient
	cache    cache.Store
	cities   *city.Registry
	logger   zerolog.Logger
	now      func() time.Time
}

// NewService creates a new weather service.
func NewService(cfg ServiceConfig) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		archive:  cfg.Archive,
		recent:   cfg.Recent,
		forecast: cfg.Forecast,
		cache:    cfg.Cache,
		cities:   cfg.Cities,
		logger:   cfg.Logger,
		now:      now,
	}
}

// Answer resolves one weather query and returns the serialized JSON body.
// Every outcome, including errors, is a well-formed answer; failures never
// propagate to the HTTP layer.
func (s *Service) Answer(ctx context.Context, cityName, rawDate string) string {
	key := answerKeyPrefix + rawDate + ":" + cityName

	if cached, ok := s.cacheGet(ctx, key); ok {
		s.logger.Debug().Str("key", key).Msg("answer served from cache")
		return cached
	}

	answer, ttl := s.resolve(ctx, cityName, rawDate)

	payload, err := json.Marshal(answer)
	if err != nil {
		// Both answer shapes are plain structs; this cannot happen.
		s.logger.Error().Err(err).Msg("marshaling answer")
		payload = []byte(`{"status":"error","error":"no data"}`)
		ttl = ShortTTL
	}

	body := string(payload)
	s.cacheSet(ctx, key, body, ttl)
	return body
}

// resolve runs the full miss path: date validation, city resolution,
// classification, provider dispatch and TTL selection.
func (s *Service) resolve(ctx context.Context, cityName, rawDate string) (any, time.Duration) {
	date, err := time.Parse(DateLayout, rawDate)
	if err != nil {
		return errorAnswer{Status: "error", Error: ErrWrongDate.Error()}, ShortTTL
	}

	cityCode, err := s.cityCode(ctx, cityName)
	if err != nil {
		return errorAnswer{Status: "error", Error: ErrWrongCity.Error()}, ShortTTL
	}

	today := Day(s.now())

	regime, err := Classify(date, today)
	if err != nil {
		return errorAnswer{Status: "error", Error: err.Error()}, ShortTTL
	}

	obs, err := s.fetch(ctx, regime, cityCode, cityName, date)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("city", cityName).
			Str("date", rawDate).
			Stringer("regime", regime).
			Msg("provider fetch failed")
		// Transport and parse failures surface the same as a missing
		// day: the upstream had nothing usable for this query.
		return errorAnswer{Status: "error", Error: ErrNoData.Error()}, ShortTTL
	}

	ttl := ShortTTL
	if Day(date).Before(today) {
		ttl = LongTTL
	}

	return okAnswer{
		Status:   "ok",
		TempMax:  obs.TempMax,
		TempMin:  obs.TempMin,
		Pressure: obs.Pressure,
		Clouds:   obs.Clouds,
	}, ttl
}

// fetch dispatches to the provider client matching the regime.
func (s *Service) fetch(ctx context.Context, regime Regime, cityCode int, cityName string, date time.Time) (*Observation, error) {
	switch regime {
	case RegimeArchive:
		return s.archive.Daily(ctx, cityCode, date)
	case RegimeRecent:
		return s.recent.Daily(ctx, cityName, date)
	default:
		return s.forecast.Daily(ctx, cityName, date)
	}
}

// cityCode resolves a city name through the cache, falling back to the
// registry and writing the code through with a long TTL. Codes never
// change, so a week of staleness is harmless.
func (s *Service) cityCode(ctx context.Context, cityName string) (int, error) {
	if cityName == "" {
		return 0, city.ErrUnknownCity
	}

	key := cityKeyPrefix + cityName
	if cached, ok := s.cacheGet(ctx, key); ok {
		if code, err := strconv.Atoi(cached); err == nil {
			return code, nil
		}
	}

	code, err := s.cities.Resolve(cityName)
	if err != nil {
		return 0, err
	}

	s.cacheSet(ctx, key, strconv.Itoa(code), LongTTL)
	return code, nil
}

// cacheGet treats a failing cache as a miss so a broken store degrades to
// always-fetch instead of failing requests.
func (s *Service) cacheGet(ctx context.Context, key string) (string, bool) {
	value, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
		return "", false
	}
	return value, ok
}

// cacheSet logs and swallows write failures for the same reason.
func (s *Service) cacheSet(ctx context.Context, key, value string, ttl time.Duration) {
	if err := s.cache.Set(ctx, key, value, ttl); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}
