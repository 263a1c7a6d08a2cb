package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
battery:
  name: house
  capacity_kwh: 13.5
  initial_charge_kwh: 6.0
  charge_efficiency: 0.92
  discharge_efficiency: 0.93
  sell_price_factor: 0.75
policy:
  lookahead_hours: 12
load:
  base_load_kwh: 1.5
finance:
  investment: 9000
  annual_benefit: 800
  lifetime_years: 20
weather:
  city: Valencia
store:
  path: /tmp/test.db
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "house", c.Battery.Name)
	assert.InDelta(t, 13.5, c.Battery.CapacityKWh, 1e-9)
	assert.Equal(t, 12, c.Policy.LookaheadHours)
	assert.InDelta(t, 1.5, c.Load.BaseLoadKWh, 1e-9)
	assert.InDelta(t, 9000, c.Finance.Investment, 1e-9)
	assert.Equal(t, "Valencia", c.Weather.City)
	assert.Equal(t, "/tmp/test.db", c.Store.Path)
	// Defaults still fill unset sections.
	assert.Equal(t, 10, c.Weather.TimeoutSeconds)
}

func TestLoad_DefaultsWhenEmpty(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "{}\n")

	c, err := Load(path)
	require.NoError(t, err)

	d := Defaults()
	assert.Equal(t, d.Battery, c.Battery)
	assert.Equal(t, d.Load, c.Load)
	assert.Equal(t, d.Finance, c.Finance)
	assert.Equal(t, d.Weather.City, c.Weather.City)
	assert.Equal(t, d.Store.Path, c.Store.Path)
}

func TestLoad_BatteryFileMerge(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "battery.yaml", `
battery:
  name: shed
  capacity_kwh: 20
  initial_charge_kwh: 4
  charge_efficiency: 0.9
  discharge_efficiency: 0.9
  sell_price_factor: 0.7
`)
	// battery_file is relative to the config file directory; the inline
	// capacity overrides the file value.
	path := writeFile(t, dir, "config.yaml", `
battery_file: battery.yaml
battery:
  capacity_kwh: 25
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "shed", c.Battery.Name)
	assert.InDelta(t, 25, c.Battery.CapacityKWh, 1e-9)
	assert.InDelta(t, 4, c.Battery.InitialChargeKWh, 1e-9)
	assert.InDelta(t, 0.9, c.Battery.ChargeEfficiency, 1e-9)
}

func TestLoad_InvalidBattery(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
battery:
  capacity_kwh: 10
  initial_charge_kwh: 5
  charge_efficiency: 1.5
  discharge_efficiency: 0.95
  sell_price_factor: 0.8
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestMergeBattery(t *testing.T) {
	base := Defaults().Battery
	merged := MergeBattery(base, BatteryConfig{CapacityKWh: 15, Name: "garage"})

	assert.Equal(t, "garage", merged.Name)
	assert.InDelta(t, 15, merged.CapacityKWh, 1e-9)
	assert.InDelta(t, base.ChargeEfficiency, merged.ChargeEfficiency, 1e-9)
}

func TestValidate_NegativeLoad(t *testing.T) {
	c := Defaults()
	c.Load.BaseLoadKWh = -1
	assert.Error(t, (&c).Validate())
}
