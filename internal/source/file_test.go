package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/fundscope/internal/contracts"
	"github.com/wonny/fundscope/pkg/logger"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestReadCSV(t *testing.T) {
	csvData := "净值日期,单位净值,累计净值\n" +
		"2025-01-03,1.0500,1.5500\n" +
		"2025-01-02,1.1000,1.6000\n" +
		"2025-01-06,,1.6100\n" +
		"2025-1-1,1.0000,1.5000\n"

	ts, err := ReadCSV(strings.NewReader(csvData))
	require.NoError(t, err)

	require.Equal(t, 3, ts.Len())
	assert.Equal(t, "2025-01-01", ts.First().Date.Format(contracts.DateFormat))
	assert.Equal(t, 1.05, ts.Last().Value)
	assert.Equal(t, []float64{1.0, 1.1, 1.05}, ts.Values())
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing value column", "date,close\n2025-01-01,1.0\n"},
		{"bad number", "date,value\n2025-01-01,abc\n"},
		{"bad date", "date,value\n01/02/2025,1.0\n"},
		{"duplicate date", "date,value\n2025-01-01,1.0\n2025-01-01,1.1\n"},
		{"no rows", "date,value\n"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestReadJSON(t *testing.T) {
	data := `[{"date":"2025-01-02","value":"0.6120"},{"date":"2025-01-01","value":0.5}]`

	ts, err := ReadJSON(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.612}, ts.Values())
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "110011.csv", "date,value\n2025-01-01,1.0\n2025-01-02,1.1\n")
	writeFile(t, dir, "000198.json", `[{"date":"2025-01-01","value":"0.5"}]`)
	writeFile(t, dir, "999999.csv", "date,value\n2025-01-01,1.0\n")
	writeFile(t, dir, FundsFile, `[
		{"code":"110011","name":"Growth Mixed","type":"混合型"},
		{"code":"000198","name":"Cash Plus","type":"货币型","is_money_fund":true}
	]`)

	src := NewFileSource(dir, logger.Nop())
	ctx := context.Background()

	ts, err := src.FetchNAVHistory(ctx, "110011")
	require.NoError(t, err)
	assert.Equal(t, 2, ts.Len())

	ts, err = src.FetchNAVHistory(ctx, "000198")
	require.NoError(t, err)
	assert.Equal(t, 1, ts.Len())

	info, err := src.FetchFundInfo(ctx, "000198")
	require.NoError(t, err)
	assert.Equal(t, contracts.FundKindMoney, info.Kind())

	// NAV file without metadata
	info, err = src.FetchFundInfo(ctx, "999999")
	require.NoError(t, err)
	assert.Equal(t, contracts.FundKindStandard, info.Kind())
	assert.Equal(t, "999999", info.Name)

	_, err = src.FetchNAVHistory(ctx, "123456")
	assert.ErrorIs(t, err, contracts.ErrFundNotFound)
	_, err = src.FetchFundInfo(ctx, "123456")
	assert.ErrorIs(t, err, contracts.ErrFundNotFound)

	funds, err := src.Funds()
	require.NoError(t, err)
	assert.Len(t, funds, 2)
}

func TestFileSource_NoFundsFile(t *testing.T) {
	src := NewFileSource(t.TempDir(), logger.Nop())

	funds, err := src.Funds()
	require.NoError(t, err)
	assert.Empty(t, funds)
}
