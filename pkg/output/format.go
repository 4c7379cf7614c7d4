// Package output provides utilities for formatting and displaying solver results.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/iwvelando/bond-trader/internal/trader"
	"github.com/iwvelando/bond-trader/pkg/constants"
	"github.com/iwvelando/bond-trader/pkg/lotfile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// Row is one selected lot with its profit model values.
type Row struct {
	Index        int    `json:"index" yaml:"index"`
	Day          int    `json:"day" yaml:"day"`
	Name         string `json:"name" yaml:"name"`
	PricePercent string `json:"pricePercent" yaml:"pricePercent"`
	Size         int64  `json:"size" yaml:"size"`
	Cost         int64  `json:"cost" yaml:"cost"`
	Profit       int64  `json:"profit" yaml:"profit"`
}

// Rows lists the selected lots in ascending index order.
func Rows(inst trader.Instance, params trader.BondParams, res trader.Result) []Row {
	indices := append([]int(nil), res.Lots...)
	sort.Ints(indices)

	rows := make([]Row, 0, len(indices))
	for _, idx := range indices {
		lot := inst.Lots[idx]
		profit, cost := trader.ProfitAndCost(lot, params, inst.TotalDays)
		rows = append(rows, Row{
			Index:        idx,
			Day:          lot.Day,
			Name:         lot.Name,
			PricePercent: lotfile.FormatPrice(lot.PricePercent),
			Size:         lot.Size,
			Cost:         cost,
			Profit:       profit,
		})
	}
	return rows
}

// Write renders res in the named format.
func Write(w io.Writer, format string, inst trader.Instance, params trader.BondParams, res trader.Result) error {
	switch format {
	case constants.OutputFormatText:
		return lotfile.Write(w, inst, res)
	case constants.OutputFormatPretty:
		return PrettyFormat(w, inst, params, res)
	case constants.OutputFormatCSV:
		return CsvFormat(w, inst, params, res)
	case constants.OutputFormatYAML:
		return YamlFormat(w, inst, params, res)
	}
	return fmt.Errorf("unsupported output format %s", format)
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, inst trader.Instance, params trader.BondParams, res trader.Result) error {
	p := message.NewPrinter(language.English)

	if _, err := p.Fprintf(w, "--- Selected lots (%s) ---\n", res.Algorithm); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Index | Day | Name | Price %% | Size | Cost | Profit\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "_____ | ___ | ____ | _______ | ____ | ____ | ______\n"); err != nil {
		return err
	}
	for _, row := range Rows(inst, params, res) {
		if _, err := p.Fprintf(w, "%d | %d | %s | %s | %d | %d | %d\n",
			row.Index, row.Day, row.Name, row.PricePercent, row.Size, row.Cost, row.Profit); err != nil {
			return err
		}
	}
	_, err := p.Fprintf(w, "Total funds: %d | Spent: %d | Left: %d | Profit: %d\n",
		inst.TotalFunds, res.Cost, inst.TotalFunds-res.Cost, res.Profit)
	return err
}

// CsvFormat outputs in comma-separated value format. The last row holds the
// totals.
func CsvFormat(w io.Writer, inst trader.Instance, params trader.BondParams, res trader.Result) error {
	cw := csv.NewWriter(w)
	records := [][]string{{"index", "day", "name", "price_percent", "size", "cost", "profit"}}
	for _, row := range Rows(inst, params, res) {
		records = append(records, []string{
			strconv.Itoa(row.Index),
			strconv.Itoa(row.Day),
			row.Name,
			row.PricePercent,
			strconv.FormatInt(row.Size, 10),
			strconv.FormatInt(row.Cost, 10),
			strconv.FormatInt(row.Profit, 10),
		})
	}
	records = append(records, []string{"total", "", "", "", "",
		strconv.FormatInt(res.Cost, 10), strconv.FormatInt(res.Profit, 10)})
	return cw.WriteAll(records)
}

// CsvString returns the CSV representation as a string.
func CsvString(inst trader.Instance, params trader.BondParams, res trader.Result) string {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, inst, params, res); err != nil {
		return ""
	}
	return buf.String()
}

type yamlDocument struct {
	Algorithm  trader.Algorithm  `yaml:"algorithm"`
	Profit     int64             `yaml:"profit"`
	Cost       int64             `yaml:"cost"`
	TotalFunds int64             `yaml:"totalFunds"`
	TotalDays  int               `yaml:"totalDays"`
	Bond       trader.BondParams `yaml:"bond"`
	Lots       []Row             `yaml:"lots"`
}

// YamlFormat outputs the result together with the bond and budget it was
// computed for.
func YamlFormat(w io.Writer, inst trader.Instance, params trader.BondParams, res trader.Result) error {
	doc := yamlDocument{
		Algorithm:  res.Algorithm,
		Profit:     res.Profit,
		Cost:       res.Cost,
		TotalFunds: inst.TotalFunds,
		TotalDays:  inst.TotalDays,
		Bond:       params,
		Lots:       Rows(inst, params, res),
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
