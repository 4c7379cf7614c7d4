package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/bond-trader/internal/trader"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Example config",
			configPath: "../../config.yaml.example",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationMissingIsNotExist(t *testing.T) {
	_, err := LoadConfiguration(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestLoadConfigurationOverrides(t *testing.T) {
	path := writeConfig(t, `bond:
  redemptionDays: 45
  parValue: 500
  paymentPerDay: 2
solver:
  algorithm: knapsack
  crossCheck: true
input:
  path: data/lots.txt
output:
  path: ""
  format: pretty
logging:
  level: debug
  format: console
`)

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	expected := trader.BondParams{RedemptionDays: 45, ParValue: 500, PaymentPerDay: 2}
	if conf.BondParams() != expected {
		t.Errorf("expected bond params %+v, got %+v", expected, conf.BondParams())
	}
	alg, err := conf.Algorithm()
	if err != nil || alg != trader.KnapsackDP {
		t.Errorf("expected knapsack algorithm, got %v (%v)", alg, err)
	}
	if !conf.Solver.CrossCheck {
		t.Errorf("expected crossCheck enabled")
	}
	if conf.Input.Path != "data/lots.txt" {
		t.Errorf("expected input path override, got %s", conf.Input.Path)
	}
	if conf.Output.Path != "" || conf.Output.Format != "pretty" {
		t.Errorf("unexpected output config %+v", conf.Output)
	}
	if conf.Logging.Level != "debug" || conf.Logging.Format != "console" {
		t.Errorf("unexpected logging config %+v", conf.Logging)
	}
	if err := conf.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadConfigurationDefaults(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader("logging:\n  level: warn\n"))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	d := Defaults()
	if conf.Bond != d.Bond {
		t.Errorf("expected default bond %+v, got %+v", d.Bond, conf.Bond)
	}
	if conf.BondParams() != trader.DefaultBondParams() {
		t.Errorf("default bond config should match trader defaults, got %+v", conf.BondParams())
	}
	if conf.Solver.Algorithm != "auto" {
		t.Errorf("expected auto algorithm, got %s", conf.Solver.Algorithm)
	}
	if conf.Input.Path != d.Input.Path || conf.Output.Path != d.Output.Path || conf.Output.Format != "text" {
		t.Errorf("expected default paths, got input=%+v output=%+v", conf.Input, conf.Output)
	}
	if conf.Logging.Level != "warn" {
		t.Errorf("expected logging level warn, got %s", conf.Logging.Level)
	}
}

func TestLoadConfigurationEnvOverride(t *testing.T) {
	t.Setenv("TRADER_BOND_PARVALUE", "2000")
	t.Setenv("TRADER_SOLVER_ALGORITHM", "subset")

	conf, err := LoadConfigurationFromReader(strings.NewReader("bond:\n  parValue: 1000\n"))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if conf.Bond.ParValue != 2000 {
		t.Errorf("expected env par value 2000, got %d", conf.Bond.ParValue)
	}
	if conf.Solver.Algorithm != "subset" {
		t.Errorf("expected env algorithm subset, got %s", conf.Solver.Algorithm)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Configuration)
		wantErr bool
	}{
		{name: "Defaults", mutate: func(c *Configuration) {}},
		{name: "Unknown algorithm", mutate: func(c *Configuration) { c.Solver.Algorithm = "greedy" }, wantErr: true},
		{name: "Unknown output format", mutate: func(c *Configuration) { c.Output.Format = "xml" }, wantErr: true},
		{name: "Empty input path", mutate: func(c *Configuration) { c.Input.Path = " " }, wantErr: true},
		{name: "Zero par value", mutate: func(c *Configuration) { c.Bond.ParValue = 0 }, wantErr: true},
		{name: "Negative coupon", mutate: func(c *Configuration) { c.Bond.PaymentPerDay = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := Defaults()
			tt.mutate(conf)
			err := conf.Validate()
			if tt.wantErr && err == nil {
				t.Errorf("Validate() expected error but got none")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() unexpected error = %v", err)
			}
		})
	}
}

func TestValidateConfigurationWarnings(t *testing.T) {
	conf := Defaults()
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Fatalf("expected no warnings for defaults, got %v", warnings)
	}

	conf.Output.Path = conf.Input.Path
	conf.Bond.PaymentPerDay = 0
	conf.Solver.CrossCheck = true
	warnings := conf.ValidateConfiguration()
	if len(warnings) != 3 {
		t.Fatalf("expected 3 warnings, got %d: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "overwritten") {
		t.Errorf("unexpected first warning: %s", warnings[0])
	}
}
