package importer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/text/encoding/charmap"
)

func TestParseGenericLayout(t *testing.T) {
	csv := strings.Join([]string{
		"Date,Description,Amount",
		"2026-03-01,Salary,2500.00",
		"2026-03-02,Groceries,-58.74",
		"2026-03-03,Coffee,0.00",
		",,",
		"Total,,2441.26",
	}, "\n")

	rows, err := parse(strings.NewReader(csv))

	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, Row{
		Date:        time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		Description: "Salary",
		Amount:      250000,
	}, rows[0])
	assert.Equal(t, Row{
		Date:        time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		Description: "Groceries",
		Amount:      -5874,
	}, rows[1])
}

func TestParseSplitLayoutSemicolons(t *testing.T) {
	csv := strings.Join([]string{
		"Some Bank Statement Export;;;",
		"Date;Description;Debit;Credit",
		"02.03.2026;COMPRA SUPERMERCADO;58,74;",
		"05.03.2026;TRANSFERENCIA RECEBIDA;;1.250,00",
	}, "\n")

	rows, err := parse(strings.NewReader(csv))

	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, int64(-5874), rows[0].Amount)
	assert.Equal(t, "COMPRA SUPERMERCADO", rows[0].Description)
	assert.Equal(t, int64(125000), rows[1].Amount)
	assert.Equal(t, time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC), rows[1].Date)
}

func TestParseHeaderNotOnFirstLine(t *testing.T) {
	csv := strings.Join([]string{
		"Account,PT50 0000 0000 0000 0000 0,",
		"Period,2026-03-01 to 2026-03-31,",
		"Date,Description,Amount",
		"2026-03-10,Rent,-900.00",
	}, "\n")

	rows, err := parse(strings.NewReader(csv))

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(-90000), rows[0].Amount)
}

func TestParseUnknownLayout(t *testing.T) {
	csv := "Foo,Bar\n1,2\n"

	_, err := parse(strings.NewReader(csv))

	assert.ErrorContains(t, err, "no matching statement layout")
}

func TestParseBadAmountReportsRow(t *testing.T) {
	csv := strings.Join([]string{
		"Date,Description,Amount",
		"2026-03-01,OK,10.00",
		"2026-03-02,Broken,abc",
	}, "\n")

	_, err := parse(strings.NewReader(csv))

	assert.ErrorContains(t, err, "row 3")
}

func TestParseWindows1252Input(t *testing.T) {
	csv := strings.Join([]string{
		"Date;Description;Amount",
		"01.03.2026;CAFÉ SÃO JOÃO;-2,50",
	}, "\n")

	raw, err := charmap.Windows1252.NewEncoder().String(csv)
	require.NoError(t, err)

	rows, err := parse(strings.NewReader(raw))

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "CAFÉ SÃO JOÃO", rows[0].Description)
	assert.Equal(t, int64(-250), rows[0].Amount)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"2500.00", 250000},
		{"-58.74", -5874},
		{"1,234.56", 123456},
		{"1.234,56", 123456},
		{"-588,74", -58874},
		{"€ 12,30", 1230},
		{"$99", 9900},
		{"0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAmountInvalid(t *testing.T) {
	_, err := parseAmount("not money")

	assert.Error(t, err)
}

func TestSniffDelimiter(t *testing.T) {
	assert.Equal(t, ';', sniffDelimiter([]byte("a;b;c\n1;2;3")))
	assert.Equal(t, ',', sniffDelimiter([]byte("a,b,c\n1,2,3")))
	assert.Equal(t, ',', sniffDelimiter([]byte("a,b;c")))
}
