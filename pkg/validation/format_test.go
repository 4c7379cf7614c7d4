package validation

import (
	"strings"
	"testing"
)

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		expectErr bool
	}{
		{name: "Valid text format", format: "text"},
		{name: "Valid pretty format", format: "pretty"},
		{name: "Valid csv format", format: "csv"},
		{name: "Valid yaml format", format: "yaml"},
		{name: "Invalid format", format: "json", expectErr: true},
		{name: "Empty format", format: "", expectErr: true},
		{name: "Case sensitive - uppercase", format: "PRETTY", expectErr: true},
		{name: "Case sensitive - CSV uppercase", format: "CSV", expectErr: true},
		{name: "Leading/trailing spaces", format: " text ", expectErr: true},
		{name: "Similar but incorrect format", format: "prettyprint", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)

			if tt.expectErr {
				if err == nil {
					t.Errorf("ValidateOutputFormat(%s) expected error but got none", tt.format)
				}
			} else {
				if err != nil {
					t.Errorf("ValidateOutputFormat(%s) unexpected error = %v", tt.format, err)
				}
			}
		})
	}
}

func TestValidateOutputFormatErrorMessage(t *testing.T) {
	err := ValidateOutputFormat("xml")
	if err == nil {
		t.Fatal("expected error for format xml")
	}
	if !strings.Contains(err.Error(), "xml") {
		t.Errorf("error message should mention the rejected format: %s", err)
	}
}

func TestValidateAlgorithm(t *testing.T) {
	tests := []struct {
		name      string
		algorithm string
		expectErr bool
	}{
		{name: "Empty means auto", algorithm: ""},
		{name: "Auto", algorithm: "auto"},
		{name: "Subset", algorithm: "subset"},
		{name: "Knapsack", algorithm: "knapsack"},
		{name: "Unknown", algorithm: "greedy", expectErr: true},
		{name: "Case sensitive", algorithm: "Knapsack", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAlgorithm(tt.algorithm)
			if tt.expectErr && err == nil {
				t.Errorf("ValidateAlgorithm(%s) expected error but got none", tt.algorithm)
			}
			if !tt.expectErr && err != nil {
				t.Errorf("ValidateAlgorithm(%s) unexpected error = %v", tt.algorithm, err)
			}
		})
	}
}
