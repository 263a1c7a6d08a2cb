package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"solar-dispatch/internal/dispatch"
	"solar-dispatch/internal/model"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load battery parameters from a separate YAML file.
	// If both BatteryFile and Battery are provided, Battery overrides BatteryFile.
	BatteryFile string        `yaml:"battery_file"`
	Battery     BatteryConfig `yaml:"battery"`
	Policy      PolicyConfig  `yaml:"policy"`
	Load        LoadConfig    `yaml:"load"`
	Finance     FinanceConfig `yaml:"finance"`
	Weather     WeatherConfig `yaml:"weather"`
	Store       StoreConfig   `yaml:"store"`
}

type BatteryConfig struct {
	Name                string  `yaml:"name"`
	CapacityKWh         float64 `yaml:"capacity_kwh"`
	InitialChargeKWh    float64 `yaml:"initial_charge_kwh"`
	ChargeEfficiency    float64 `yaml:"charge_efficiency"`
	DischargeEfficiency float64 `yaml:"discharge_efficiency"`
	SellPriceFactor     float64 `yaml:"sell_price_factor"`
}

type PolicyConfig struct {
	LookaheadHours       int     `yaml:"lookahead_hours"`
	ReferenceHours       int     `yaml:"reference_hours"`
	ChargePriceCeiling   float64 `yaml:"charge_price_ceiling"`
	DischargePriceFloor  float64 `yaml:"discharge_price_floor"`
	DischargeSOCFraction float64 `yaml:"discharge_soc_fraction"`
	MinSpareKWh          float64 `yaml:"min_spare_kwh"`
	MinChargeKWh         float64 `yaml:"min_charge_kwh"`
}

type LoadConfig struct {
	BaseLoadKWh float64 `yaml:"base_load_kwh"`
}

type FinanceConfig struct {
	Investment    float64 `yaml:"investment"`
	AnnualBenefit float64 `yaml:"annual_benefit"`
	LifetimeYears int     `yaml:"lifetime_years"`
}

type WeatherConfig struct {
	APIKey         string `yaml:"api_key"`
	City           string `yaml:"city"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

// Defaults are the stock values of the reference installation.
func Defaults() Config {
	return Config{
		Battery: BatteryConfig{
			CapacityKWh:         10.0,
			InitialChargeKWh:    5.0,
			ChargeEfficiency:    0.95,
			DischargeEfficiency: 0.95,
			SellPriceFactor:     0.8,
		},
		Load: LoadConfig{BaseLoadKWh: 2.0},
		Finance: FinanceConfig{
			Investment:    15000.0,
			AnnualBenefit: 1200.0,
			LifetimeYears: 25,
		},
		Weather: WeatherConfig{
			City:           "Madrid",
			TimeoutSeconds: 10,
		},
		Store: StoreConfig{Path: "data/solar-dispatch.db"},
	}
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	applyDefaults(c)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate or default it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// If battery_file is set, load it and merge in any explicit overrides from c.Battery.
	if c.BatteryFile != "" {
		batteryPath := c.BatteryFile
		if !filepath.IsAbs(batteryPath) {
			// Prefer interpreting relative paths as relative to the config file
			// directory, but fall back to the provided path if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), batteryPath)
			if _, err := os.Stat(cand); err == nil {
				batteryPath = cand
			}
		}
		loaded, err := loadBatteryFile(batteryPath)
		if err != nil {
			return nil, err
		}
		c.Battery = MergeBattery(loaded, c.Battery)
	}
	return &c, nil
}

func applyDefaults(c *Config) {
	d := Defaults()
	if c.Battery.CapacityKWh == 0 {
		c.Battery = MergeBattery(d.Battery, c.Battery)
	}
	if c.Load.BaseLoadKWh == 0 {
		c.Load = d.Load
	}
	if c.Finance.LifetimeYears == 0 {
		c.Finance.LifetimeYears = d.Finance.LifetimeYears
	}
	if c.Finance.Investment == 0 {
		c.Finance.Investment = d.Finance.Investment
	}
	if c.Finance.AnnualBenefit == 0 {
		c.Finance.AnnualBenefit = d.Finance.AnnualBenefit
	}
	if c.Weather.City == "" {
		c.Weather.City = d.Weather.City
	}
	if c.Weather.TimeoutSeconds == 0 {
		c.Weather.TimeoutSeconds = d.Weather.TimeoutSeconds
	}
	if c.Store.Path == "" {
		c.Store.Path = d.Store.Path
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	// Validate battery params by constructing a model.Battery.
	_, err := model.NewBattery(c.Battery.ToModelParams())
	if err != nil {
		return fmt.Errorf("battery config invalid: %w", err)
	}
	if c.Load.BaseLoadKWh < 0 {
		return errors.New("load.base_load_kwh must be >= 0")
	}
	return nil
}

func (b BatteryConfig) ToModelParams() model.BatteryParams {
	return model.BatteryParams{
		CapacityKWh:         b.CapacityKWh,
		InitialChargeKWh:    b.InitialChargeKWh,
		ChargeEfficiency:    b.ChargeEfficiency,
		DischargeEfficiency: b.DischargeEfficiency,
		SellPriceFactor:     b.SellPriceFactor,
	}
}

// ToPolicy converts the YAML policy section, leaving zero fields to dispatch
// defaults.
func (p PolicyConfig) ToPolicy() dispatch.Policy {
	return dispatch.Policy{
		LookaheadHours:       p.LookaheadHours,
		ReferenceHours:       p.ReferenceHours,
		ChargePriceCeiling:   p.ChargePriceCeiling,
		DischargePriceFloor:  p.DischargePriceFloor,
		DischargeSOCFraction: p.DischargeSOCFraction,
		MinSpareKWh:          p.MinSpareKWh,
		MinChargeKWh:         p.MinChargeKWh,
	}
}

type batteryFileWrapper struct {
	Battery BatteryConfig `yaml:"battery"`
}

func loadBatteryFile(path string) (BatteryConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return BatteryConfig{}, err
	}
	var w batteryFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return BatteryConfig{}, err
	}
	return w.Battery, nil
}

// MergeBattery overlays non-zero fields from override onto base.
func MergeBattery(base, override BatteryConfig) BatteryConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.CapacityKWh != 0 {
		out.CapacityKWh = override.CapacityKWh
	}
	if override.InitialChargeKWh != 0 {
		out.InitialChargeKWh = override.InitialChargeKWh
	}
	if override.ChargeEfficiency != 0 {
		out.ChargeEfficiency = override.ChargeEfficiency
	}
	if override.DischargeEfficiency != 0 {
		out.DischargeEfficiency = override.DischargeEfficiency
	}
	if override.SellPriceFactor != 0 {
		out.SellPriceFactor = override.SellPriceFactor
	}
	return out
}
