package integration

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/bond-trader/internal/batch"
	"github.com/iwvelando/bond-trader/internal/config"
	"github.com/iwvelando/bond-trader/internal/trader"
	"github.com/iwvelando/bond-trader/pkg/constants"
	"github.com/iwvelando/bond-trader/pkg/lotfile"
	"github.com/iwvelando/bond-trader/pkg/output"
	"go.uber.org/zap"
)

const (
	exampleConfig = "../../config.yaml.example"
	sampleInput   = "../../inputs/trader.txt"

	// Buying the two day-2 lots spends 7075 of 8000 for 75 + 60 profit.
	expectedText = "135\n2 alfa-05 101.5 5\n2 gazprom-17 100.0 2\n"
)

func loadExample(t *testing.T) (*config.Configuration, trader.Instance) {
	t.Helper()

	conf, err := config.LoadConfiguration(exampleConfig)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if err := conf.Validate(); err != nil {
		t.Fatalf("example configuration is invalid: %v", err)
	}

	inst, err := lotfile.ReadFile(sampleInput)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	return conf, inst
}

// TestMainIntegrationBaseline runs the example configuration through the same
// steps as the CLI and compares the text output with the known answer.
func TestMainIntegrationBaseline(t *testing.T) {
	conf, inst := loadExample(t)

	alg, err := conf.Algorithm()
	if err != nil {
		t.Fatalf("Algorithm() error = %v", err)
	}

	runner := trader.NewRunner(zap.NewNop(), trader.WithAlgorithm(alg), trader.WithCrossCheck(true))
	res, err := runner.Run(context.Background(), inst, conf.BondParams())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	outPath := filepath.Join(t.TempDir(), "outputs", "trader.txt")
	if err := lotfile.WriteFile(outPath, inst, res); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if string(got) != expectedText {
		t.Fatalf("output mismatch\n got: %q\nwant: %q", got, expectedText)
	}
	if res.Cost != 7075 {
		t.Fatalf("expected cost 7075, got %d", res.Cost)
	}
}

func TestAllAlgorithmsAgreeOnExample(t *testing.T) {
	conf, inst := loadExample(t)

	for _, alg := range []trader.Algorithm{trader.Auto, trader.SubsetEnumeration, trader.KnapsackDP} {
		t.Run(alg.String(), func(t *testing.T) {
			res, err := trader.Solve(inst, conf.BondParams(), alg)
			if err != nil {
				t.Fatalf("Solve() error = %v", err)
			}
			var buf bytes.Buffer
			if err := lotfile.Write(&buf, inst, res); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if buf.String() != expectedText {
				t.Fatalf("output mismatch\n got: %q\nwant: %q", buf.String(), expectedText)
			}
		})
	}
}

func TestOutputFormatsOnExample(t *testing.T) {
	conf, inst := loadExample(t)

	res, err := trader.Solve(inst, conf.BondParams(), trader.Auto)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	tests := map[string][]string{
		constants.OutputFormatText:   {"135\n"},
		constants.OutputFormatPretty: {"--- Selected lots (subset) ---", "Total funds: 8,000", "Profit: 135"},
		constants.OutputFormatCSV:    {"index,day,name", "total,,,,,7075,135"},
		constants.OutputFormatYAML:   {"algorithm: subset", "profit: 135", "name: gazprom-17"},
	}

	for format, fragments := range tests {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := output.Write(&buf, format, inst, conf.BondParams(), res); err != nil {
				t.Fatalf("Write(%s) error = %v", format, err)
			}
			for _, fragment := range fragments {
				if !strings.Contains(buf.String(), fragment) {
					t.Fatalf("%s output missing %q:\n%s", format, fragment, buf.String())
				}
			}
		})
	}
}

func TestBatchWithExample(t *testing.T) {
	conf, _ := loadExample(t)

	broken := filepath.Join(t.TempDir(), "broken.txt")
	if err := os.WriteFile(broken, []byte("3 1 100\n1 a 99.0 1\n"), 0600); err != nil {
		t.Fatalf("failed to write broken input: %v", err)
	}

	items, err := batch.Run(context.Background(), zap.NewNop(), []string{sampleInput, broken}, conf.BondParams(), batch.Options{Limit: 2})
	if err != nil {
		t.Fatalf("batch.Run() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Err != nil || items[0].Result.Profit != 135 {
		t.Fatalf("unexpected first item %+v", items[0])
	}
	if items[1].Err == nil {
		t.Fatal("expected the inconsistent header to be rejected")
	}
}
