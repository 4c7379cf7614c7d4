// Package lotfile reads and writes the plain-text lot format.
//
// Input layout: the first non-blank line holds three integers,
// "total_days lot_count_per_day total_funds"; every following non-blank line
// holds one lot, "day_number name price_percent size".
//
// Output layout: the first line is the profit, followed by the selected lots in
// input order using the same four fields.
package lotfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/iwvelando/bond-trader/internal/trader"
	"github.com/shopspring/decimal"
)

// ErrMalformedInput is returned when a line cannot be parsed.
var ErrMalformedInput = errors.New("lotfile: malformed input")

// ReadFile parses the lot file at path.
func ReadFile(path string) (trader.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return trader.Instance{}, fmt.Errorf("failed to open lot file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	inst, err := Parse(f)
	if err != nil {
		return trader.Instance{}, fmt.Errorf("%s: %w", path, err)
	}
	return inst, nil
}

// Parse reads an instance. It checks syntax only; use trader.Validate for the
// header consistency rules.
func Parse(r io.Reader) (trader.Instance, error) {
	var (
		inst      trader.Instance
		hasHeader bool
		lineNo    int
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if !hasHeader {
			header, err := parseHeader(fields)
			if err != nil {
				return trader.Instance{}, fmt.Errorf("line %d: %w", lineNo, err)
			}
			inst = header
			hasHeader = true
			continue
		}

		lot, err := parseLot(fields)
		if err != nil {
			return trader.Instance{}, fmt.Errorf("line %d: %w", lineNo, err)
		}
		inst.Lots = append(inst.Lots, lot)
	}
	if err := scanner.Err(); err != nil {
		return trader.Instance{}, fmt.Errorf("failed to read lot file: %w", err)
	}
	if !hasHeader {
		return trader.Instance{}, fmt.Errorf("%w: missing header line", ErrMalformedInput)
	}
	return inst, nil
}

func parseHeader(fields []string) (trader.Instance, error) {
	if len(fields) != 3 {
		return trader.Instance{}, fmt.Errorf("%w: header needs 3 fields, got %d", ErrMalformedInput, len(fields))
	}
	totalDays, err := strconv.Atoi(fields[0])
	if err != nil {
		return trader.Instance{}, fmt.Errorf("%w: total_days %q", ErrMalformedInput, fields[0])
	}
	perDay, err := strconv.Atoi(fields[1])
	if err != nil {
		return trader.Instance{}, fmt.Errorf("%w: lot_count_per_day %q", ErrMalformedInput, fields[1])
	}
	funds, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return trader.Instance{}, fmt.Errorf("%w: total_funds %q", ErrMalformedInput, fields[2])
	}
	return trader.Instance{TotalDays: totalDays, LotCountPerDay: perDay, TotalFunds: funds}, nil
}

func parseLot(fields []string) (trader.Lot, error) {
	if len(fields) != 4 {
		return trader.Lot{}, fmt.Errorf("%w: lot needs 4 fields, got %d", ErrMalformedInput, len(fields))
	}
	day, err := strconv.Atoi(fields[0])
	if err != nil {
		return trader.Lot{}, fmt.Errorf("%w: day_number %q", ErrMalformedInput, fields[0])
	}
	price, err := decimal.NewFromString(fields[2])
	if err != nil {
		return trader.Lot{}, fmt.Errorf("%w: price_percent %q", ErrMalformedInput, fields[2])
	}
	size, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return trader.Lot{}, fmt.Errorf("%w: size %q", ErrMalformedInput, fields[3])
	}
	return trader.Lot{Day: day, Name: fields[1], PricePercent: price, Size: size}, nil
}

// Write renders res in the lot file output layout.
func Write(w io.Writer, inst trader.Instance, res trader.Result) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d\n", res.Profit); err != nil {
		return err
	}
	for _, lot := range res.Selected(inst) {
		if _, err := fmt.Fprintf(bw, "%d %s %s %d\n", lot.Day, lot.Name, FormatPrice(lot.PricePercent), lot.Size); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes res to path, creating the parent directory if needed.
func WriteFile(path string, inst trader.Instance, res trader.Result) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := Write(f, inst, res); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return f.Close()
}

// FormatPrice renders a price with at least one decimal place: 95 becomes
// "95.0" and 97.25 stays "97.25".
func FormatPrice(price decimal.Decimal) string {
	if price.Equal(price.Truncate(0)) {
		return price.StringFixed(1)
	}
	return price.String()
}
