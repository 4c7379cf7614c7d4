// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/bond-trader/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatText, constants.OutputFormatPretty,
		constants.OutputFormatCSV, constants.OutputFormatYAML:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s, %s or %s, got %s",
		constants.OutputFormatText, constants.OutputFormatPretty,
		constants.OutputFormatCSV, constants.OutputFormatYAML, format)
}

// ValidateAlgorithm checks if the algorithm name is one of the supported names.
func ValidateAlgorithm(name string) error {
	switch name {
	case "", constants.AlgorithmAuto, constants.AlgorithmSubset, constants.AlgorithmKnapsack:
		return nil
	}
	return fmt.Errorf("expected algorithm of %s, %s or %s, got %s",
		constants.AlgorithmAuto, constants.AlgorithmSubset, constants.AlgorithmKnapsack, name)
}
