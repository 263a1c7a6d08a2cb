// Package store persists the hourly time series (prices, production,
// weather) and saved simulation runs in a local SQLite database.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"solar-dispatch/internal/dispatch"
	"solar-dispatch/internal/forecast"
	"solar-dispatch/internal/model"
)

// Store wraps the SQLite database. Construct one per process and pass it by
// handle; there is no package-level connection.
type Store struct {
	db *gorm.DB
}

func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	err = db.AutoMigrate(&PriceRow{}, &ProductionRow{}, &WeatherRow{}, &SimulationRun{})
	if err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return &Store{db: db}, nil
}

// PriceRow is one hour of grid buy price. Timestamp is the natural key.
type PriceRow struct {
	Time     time.Time `gorm:"primaryKey"`
	PriceKWh float64
}

// ProductionRow is one hour of measured solar production.
type ProductionRow struct {
	Time          time.Time `gorm:"primaryKey"`
	ProductionKWh float64
	IrradianceWm2 float64
}

// WeatherRow is one hour of observed weather.
type WeatherRow struct {
	Time          time.Time `gorm:"primaryKey"`
	TemperatureC  float64
	CloudCoverPct float64
	HumidityPct   float64
}

// SimulationRun is a persisted simulation, summary stored as an opaque JSON
// blob keyed by run id and creation time.
type SimulationRun struct {
	ID               uuid.UUID `gorm:"primaryKey"`
	CreatedAt        time.Time
	CapacityKWh      float64
	InitialChargeKWh float64
	Summary          []byte
}

// UpsertPrices inserts or replaces price rows.
func (s *Store) UpsertPrices(points []model.PricePoint) error {
	if len(points) == 0 {
		return nil
	}
	rows := make([]PriceRow, len(points))
	for i, p := range points {
		rows[i] = PriceRow{Time: p.Time.UTC(), PriceKWh: p.PriceKWh}
	}
	result := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rows)
	return result.Error
}

// UpsertProduction inserts or replaces production rows.
func (s *Store) UpsertProduction(rows []ProductionRow) error {
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		rows[i].Time = rows[i].Time.UTC()
	}
	result := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rows)
	return result.Error
}

// UpsertWeather inserts or replaces weather rows.
func (s *Store) UpsertWeather(rows []WeatherRow) error {
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		rows[i].Time = rows[i].Time.UTC()
	}
	result := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rows)
	return result.Error
}

// Prices returns the price series in [from, to], ascending.
func (s *Store) Prices(from, to time.Time) ([]model.PricePoint, error) {
	var rows []PriceRow
	result := s.db.Where("time BETWEEN ? AND ?", from.UTC(), to.UTC()).Order("time asc").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	out := make([]model.PricePoint, len(rows))
	for i, r := range rows {
		out[i] = model.PricePoint{Time: r.Time, PriceKWh: r.PriceKWh}
	}
	return out, nil
}

// Production returns the production series in [from, to], ascending.
func (s *Store) Production(from, to time.Time) ([]model.ProductionPoint, error) {
	var rows []ProductionRow
	result := s.db.Where("time BETWEEN ? AND ?", from.UTC(), to.UTC()).Order("time asc").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	out := make([]model.ProductionPoint, len(rows))
	for i, r := range rows {
		out[i] = model.ProductionPoint{Time: r.Time, ProductionKWh: r.ProductionKWh}
	}
	return out, nil
}

// TrainingSamples joins weather and production on timestamp for estimator
// fitting. Hours missing from either table are skipped.
func (s *Store) TrainingSamples(from, to time.Time) ([]forecast.Sample, error) {
	var weather []WeatherRow
	result := s.db.Where("time BETWEEN ? AND ?", from.UTC(), to.UTC()).Order("time asc").Find(&weather)
	if result.Error != nil {
		return nil, result.Error
	}
	var production []ProductionRow
	result = s.db.Where("time BETWEEN ? AND ?", from.UTC(), to.UTC()).Order("time asc").Find(&production)
	if result.Error != nil {
		return nil, result.Error
	}

	prodByTime := make(map[int64]ProductionRow, len(production))
	for _, p := range production {
		prodByTime[p.Time.Unix()] = p
	}

	samples := make([]forecast.Sample, 0, len(weather))
	for _, w := range weather {
		p, ok := prodByTime[w.Time.Unix()]
		if !ok {
			continue
		}
		samples = append(samples, forecast.Sample{
			Features: forecast.Features{
				TemperatureC:  w.TemperatureC,
				CloudCoverPct: w.CloudCoverPct,
				HumidityPct:   w.HumidityPct,
				IrradianceWm2: p.IrradianceWm2,
			},
			ProductionKWh: p.ProductionKWh,
		})
	}
	return samples, nil
}

// SaveRun persists a simulation result and returns the generated run id. The
// result is stored as an opaque JSON blob; traces can be large so callers
// decide what to keep.
func (s *Store) SaveRun(params model.BatteryParams, res *dispatch.Result) (uuid.UUID, error) {
	blob, err := json.Marshal(res)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encode result: %w", err)
	}
	run := SimulationRun{
		ID:               uuid.New(),
		CreatedAt:        time.Now().UTC(),
		CapacityKWh:      params.CapacityKWh,
		InitialChargeKWh: params.InitialChargeKWh,
		Summary:          blob,
	}
	result := s.db.Create(&run)
	if result.Error != nil {
		return uuid.Nil, result.Error
	}
	return run.ID, nil
}

// RecentRuns lists the newest saved runs, up to limit.
func (s *Store) RecentRuns(limit int) ([]SimulationRun, error) {
	if limit <= 0 {
		limit = 10
	}
	var runs []SimulationRun
	result := s.db.Limit(limit).Order("created_at desc").Find(&runs)
	if result.Error != nil {
		return nil, result.Error
	}
	return runs, nil
}

// Run fetches one saved run by id.
func (s *Store) Run(id uuid.UUID) (*SimulationRun, error) {
	var run SimulationRun
	result := s.db.First(&run, "id = ?", id)
	if result.Error != nil {
		return nil, result.Error
	}
	return &run, nil
}

// DecodeRunResult unpacks the stored summary blob.
func DecodeRunResult(run *SimulationRun) (*dispatch.Result, error) {
	var res dispatch.Result
	if err := json.Unmarshal(run.Summary, &res); err != nil {
		return nil, fmt.Errorf("decode run %s: %w", run.ID, err)
	}
	return &res, nil
}
