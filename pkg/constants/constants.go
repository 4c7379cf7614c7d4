// Package constants provides shared constants for the bond-trader application.
package constants

// Bond defaults used when the configuration leaves them out.
const (
	// DefaultRedemptionDays is the number of days between the last lot day and
	// bond redemption.
	DefaultRedemptionDays = 30

	// DefaultParValue is the bond par value in currency units.
	DefaultParValue = 1000

	// DefaultPaymentPerDay is the daily coupon per bond.
	DefaultPaymentPerDay = 1
)

// Output format constants
const (
	// OutputFormatText reproduces the lot file layout: profit, then the lots.
	OutputFormatText = "text"

	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatYAML is a YAML document with the instance summary and result.
	OutputFormatYAML = "yaml"
)

// Solver algorithm names accepted in configuration.
const (
	AlgorithmAuto     = "auto"
	AlgorithmSubset   = "subset"
	AlgorithmKnapsack = "knapsack"
)

// File location constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultInputFile is where the lot file is read from.
	DefaultInputFile = "inputs/trader.txt"

	// DefaultOutputFile is where the text result is written to.
	DefaultOutputFile = "outputs/trader.txt"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for lot files (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultMaxEstimate caps the estimated solver steps the API accepts per
	// request. It keeps subset enumeration to about 21 lots and the knapsack
	// table to about 67M entries.
	DefaultMaxEstimate int64 = 1 << 26
)

// Scale thresholds used for warnings.
const (
	// SubsetWarnLots is the lot count above which subset enumeration may need
	// more memory than a typical host has.
	SubsetWarnLots = 24

	// KnapsackWarnFunds is the budget above which the knapsack tables exceed
	// roughly a gigabyte.
	KnapsackWarnFunds int64 = 64 * 1024 * 1024
)
