// Package config defines the data structures related to configuration and
// includes functions for loading and checking it.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/bond-trader/internal/trader"
	"github.com/iwvelando/bond-trader/pkg/constants"
	"github.com/iwvelando/bond-trader/pkg/validation"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. TRADER_BOND_PARVALUE.
const EnvPrefix = "TRADER"

// Configuration holds all configuration for bond-trader.
type Configuration struct {
	Bond    BondConfig    `yaml:"bond"`
	Solver  SolverConfig  `yaml:"solver"`
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// BondConfig describes the bond all lots are issued for.
type BondConfig struct {
	RedemptionDays int64 `yaml:"redemptionDays"` // days after the last lot day
	ParValue       int64 `yaml:"parValue"`
	PaymentPerDay  int64 `yaml:"paymentPerDay"` // coupon per bond per day
}

// SolverConfig selects the solving algorithm.
type SolverConfig struct {
	Algorithm  string `yaml:"algorithm"` // auto, subset, knapsack
	CrossCheck bool   `yaml:"crossCheck"`
}

// InputConfig locates the lot file.
type InputConfig struct {
	Path string `yaml:"path"`
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Path   string `yaml:"path,omitempty"`   // empty writes to stdout
	Format string `yaml:"format,omitempty"` // text, pretty, csv, yaml
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// Defaults returns the configuration used when no file is present.
func Defaults() *Configuration {
	return &Configuration{
		Bond: BondConfig{
			RedemptionDays: constants.DefaultRedemptionDays,
			ParValue:       constants.DefaultParValue,
			PaymentPerDay:  constants.DefaultPaymentPerDay,
		},
		Solver: SolverConfig{Algorithm: constants.AlgorithmAuto},
		Input:  InputConfig{Path: constants.DefaultInputFile},
		Output: OutputConfig{
			Path:   constants.DefaultOutputFile,
			Format: constants.OutputFormatText,
		},
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("bond.redemptionDays", d.Bond.RedemptionDays)
	v.SetDefault("bond.parValue", d.Bond.ParValue)
	v.SetDefault("bond.paymentPerDay", d.Bond.PaymentPerDay)
	v.SetDefault("solver.algorithm", d.Solver.Algorithm)
	v.SetDefault("solver.crossCheck", d.Solver.CrossCheck)
	v.SetDefault("input.path", d.Input.Path)
	v.SetDefault("output.path", d.Output.Path)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Keys missing from the file keep their defaults.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data: %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return &configuration, nil
}

// BondParams converts the bond section for the solver.
func (c *Configuration) BondParams() trader.BondParams {
	return c.Bond.Params()
}

// Params converts the bond section for the solver.
func (b BondConfig) Params() trader.BondParams {
	return trader.BondParams{
		RedemptionDays: b.RedemptionDays,
		ParValue:       b.ParValue,
		PaymentPerDay:  b.PaymentPerDay,
	}
}

// Algorithm returns the configured solver algorithm.
func (c *Configuration) Algorithm() (trader.Algorithm, error) {
	return c.Solver.Parse()
}

// Parse returns the configured solver algorithm.
func (s SolverConfig) Parse() (trader.Algorithm, error) {
	return trader.ParseAlgorithm(s.Algorithm)
}

// Validate returns an error for settings the program cannot run with.
func (c *Configuration) Validate() error {
	if err := validation.ValidateAlgorithm(c.Solver.Algorithm); err != nil {
		return err
	}
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		return err
	}
	if strings.TrimSpace(c.Input.Path) == "" {
		return fmt.Errorf("input path must not be empty")
	}
	return c.BondParams().Validate()
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Output.Path != "" && c.Output.Path == c.Input.Path {
		warnings = append(warnings, fmt.Sprintf(
			"output path %s is the input path; the lot file will be overwritten", c.Output.Path))
	}
	if c.Bond.PaymentPerDay == 0 {
		warnings = append(warnings, "bond payment per day is 0; profit comes from the redemption discount only")
	}
	if c.Solver.CrossCheck {
		warnings = append(warnings, "cross-check runs subset enumeration, which is exponential in the number of lots")
	}

	return warnings
}
