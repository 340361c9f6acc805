package source

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wonny/fundscope/internal/contracts"
	"github.com/wonny/fundscope/pkg/logger"
)

// FundsFile lists fund metadata inside a FileSource directory
const FundsFile = "funds.json"

// Accepted CSV header names (case-insensitive). Exports from fund portals use the Chinese ones.
var (
	dateColumns  = []string{"date", "nav_date", "净值日期"}
	valueColumns = []string{"value", "nav", "unit_nav", "yield", "单位净值", "每万份收益"}
)

// FileSource reads <dir>/<code>.csv (or .json) and <dir>/funds.json
type FileSource struct {
	dir    string
	logger *logger.Logger
}

// NewFileSource creates a file-backed provider rooted at dir
func NewFileSource(dir string, log *logger.Logger) *FileSource {
	return &FileSource{dir: dir, logger: log}
}

// FetchNAVHistory implements contracts.DataProvider
func (s *FileSource) FetchNAVHistory(_ context.Context, code string) (contracts.TimeSeries, error) {
	for _, ext := range []string{".csv", ".json"} {
		path := filepath.Join(s.dir, code+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		ts, err := ReadFile(path)
		if err != nil {
			return contracts.TimeSeries{}, err
		}
		s.logger.WithFields(map[string]interface{}{
			"fund_code":    code,
			"path":         path,
			"observations": ts.Len(),
		}).Debug("NAV history loaded")
		return ts, nil
	}
	return contracts.TimeSeries{}, fmt.Errorf("no nav file for %s in %s: %w", code, s.dir, contracts.ErrFundNotFound)
}

// FetchFundInfo implements contracts.DataProvider.
// A fund with a NAV file but no funds.json entry is reported as a standard fund named by its code.
func (s *FileSource) FetchFundInfo(ctx context.Context, code string) (contracts.FundInfo, error) {
	funds, err := s.readFunds()
	if err != nil {
		return contracts.FundInfo{}, err
	}
	if info, ok := funds[code]; ok {
		return info, nil
	}

	if _, err := s.FetchNAVHistory(ctx, code); err != nil {
		return contracts.FundInfo{}, err
	}
	return contracts.FundInfo{Code: code, Name: code}, nil
}

// Funds lists the entries of funds.json
func (s *FileSource) Funds() ([]contracts.FundInfo, error) {
	funds, err := s.readFunds()
	if err != nil {
		return nil, err
	}
	out := make([]contracts.FundInfo, 0, len(funds))
	for _, f := range funds {
		out = append(out, f)
	}
	return out, nil
}

func (s *FileSource) readFunds() (map[string]contracts.FundInfo, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, FundsFile))
	if errors.Is(err, os.ErrNotExist) {
		return map[string]contracts.FundInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", FundsFile, err)
	}

	var list []contracts.FundInfo
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse %s: %w", FundsFile, err)
	}

	funds := make(map[string]contracts.FundInfo, len(list))
	for _, f := range list {
		funds[f.Code] = f
	}
	return funds, nil
}

// ReadFile loads a series from a .csv or .json file
func ReadFile(path string) (contracts.TimeSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return contracts.TimeSeries{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ReadJSON(f)
	}
	return ReadCSV(f)
}

// ReadCSV parses a headered CSV with a date and a value column.
// Rows may come in any order; blank values are skipped.
func ReadCSV(r io.Reader) (contracts.TimeSeries, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return contracts.TimeSeries{}, fmt.Errorf("read csv header: %w", err)
	}
	dateIdx, valueIdx := findColumn(header, dateColumns), findColumn(header, valueColumns)
	if dateIdx < 0 || valueIdx < 0 {
		return contracts.TimeSeries{}, fmt.Errorf("csv header %v needs a date and a value column: %w", header, contracts.ErrInvalidSeries)
	}

	var obs []contracts.Observation
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return contracts.TimeSeries{}, fmt.Errorf("read csv line %d: %w", line, err)
		}
		if len(record) <= dateIdx || len(record) <= valueIdx {
			return contracts.TimeSeries{}, fmt.Errorf("csv line %d: short record: %w", line, contracts.ErrInvalidSeries)
		}

		raw := strings.TrimSpace(record[valueIdx])
		if raw == "" || raw == "--" {
			continue
		}

		o, err := parseObservation(record[dateIdx], raw)
		if err != nil {
			return contracts.TimeSeries{}, fmt.Errorf("csv line %d: %w", line, err)
		}
		obs = append(obs, o)
	}

	sortObservations(obs)
	return contracts.NewTimeSeries(obs)
}

// jsonObservation keeps the value as a decimal string or number without float rounding
type jsonObservation struct {
	Date  string          `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// ReadJSON parses [{"date":"2025-01-02","value":"1.2345"}, ...]
func ReadJSON(r io.Reader) (contracts.TimeSeries, error) {
	var rows []jsonObservation
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return contracts.TimeSeries{}, fmt.Errorf("decode nav json: %w", err)
	}

	obs := make([]contracts.Observation, 0, len(rows))
	for i, row := range rows {
		d, err := contracts.ParseDate(strings.TrimSpace(row.Date))
		if err != nil {
			return contracts.TimeSeries{}, fmt.Errorf("row %d: %w", i, err)
		}
		obs = append(obs, contracts.Observation{Date: d, Value: row.Value.InexactFloat64()})
	}

	sortObservations(obs)
	return contracts.NewTimeSeries(obs)
}

func parseObservation(rawDate, rawValue string) (contracts.Observation, error) {
	d, err := contracts.ParseDate(strings.TrimSpace(rawDate))
	if err != nil {
		return contracts.Observation{}, err
	}
	v, err := decimal.NewFromString(rawValue)
	if err != nil {
		return contracts.Observation{}, fmt.Errorf("invalid value %q: %w", rawValue, contracts.ErrInvalidSeries)
	}
	return contracts.Observation{Date: d, Value: v.InexactFloat64()}, nil
}

func findColumn(header []string, names []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		for _, n := range names {
			if h == n {
				return i
			}
		}
	}
	return -1
}
