package enhanced

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, out string, delimiter rune) [][]string {
	t.Helper()
	r := csv.NewReader(strings.NewReader(out))
	r.Comma = delimiter
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2, "one header row and one value row")
	return records
}

func TestToCSVRows(t *testing.T) {
	e := NewWithOptions(quietOptions(), "CsvError", "bad row",
		static("count", 3, "nested", map[string]int{"a": 1}, "missing", nil, "list", []string{"x", "y"}))

	out, err := e.ToCSV(WithQuotes(false))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "name,message,stack,count,nested,missing,list\n"))
	assert.True(t, strings.HasSuffix(out, "\n"))

	records := readCSV(t, out, ',')
	assert.Equal(t, []string{"name", "message", "stack", "count", "nested", "missing", "list"}, records[0])
	assert.Equal(t, "CsvError", records[1][0])
	assert.Equal(t, "bad row", records[1][1])
	assert.Equal(t, e.Stack(), records[1][2], "multi-line stack survives quoting")
	assert.Equal(t, "3", records[1][3])
	assert.Equal(t, `{"a":1}`, records[1][4])
	assert.Equal(t, "", records[1][5])
	assert.Equal(t, `["x","y"]`, records[1][6])
}

func TestToCSVQuotesTextOnly(t *testing.T) {
	e := NewWithOptions(quietOptions(), "Q", "m", static("n", 1, "ok", true, "label", "x", "gone", nil))

	out, err := e.ToCSV(WithQuotes(true))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `"name","message","stack","n","ok","label","gone"`+"\n"))
	assert.True(t, strings.HasSuffix(out, `,1,true,"x",`+"\n"), "numbers and booleans stay bare, nil stays empty")
}

func TestToCSVQuotedKeepsErrorCodeBare(t *testing.T) {
	e := networkError(t, quietOptions())

	out, err := e.ToCSV(WithQuotes(true))
	require.NoError(t, err)
	assert.Contains(t, out, ",5432,")
	assert.NotContains(t, out, `"5432"`)
	assert.Contains(t, out, `"EE"`)
}

func TestToCSVDefaultsFromOptions(t *testing.T) {
	opts := quietOptions()
	opts.CSVDelimiter = ";"
	opts.CSVQuoted = true
	e := NewWithOptions(opts, "D", "m")

	out, err := e.ToCSV()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `"name";"message";"stack"`))

	out, err = e.ToCSV(WithDelimiter("\t"), WithQuotes(false), WithDelimiter(""))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "name\tmessage\tstack\n"))
}

func TestCSVCell(t *testing.T) {
	tests := []struct {
		name  string
		opts  csvOptions
		in    string
		force bool
		want  string
	}{
		{"plain", csvOptions{delimiter: ","}, "abc", false, "abc"},
		{"forced", csvOptions{delimiter: ","}, "abc", true, `"abc"`},
		{"delimiter", csvOptions{delimiter: ","}, "a,b", false, `"a,b"`},
		{"multi-char delimiter", csvOptions{delimiter: "||"}, "a||b", false, `"a||b"`},
		{"single char of multi-char delimiter", csvOptions{delimiter: "||"}, "a|b", false, "a|b"},
		{"quote", csvOptions{delimiter: ","}, `say "hi"`, false, `"say ""hi"""`},
		{"newline", csvOptions{delimiter: ","}, "a\nb", false, "\"a\nb\""},
		{"carriage return", csvOptions{delimiter: ","}, "a\rb", false, "\"a\rb\""},
		{"leading space", csvOptions{delimiter: ","}, " a", false, `" a"`},
		{"trailing space", csvOptions{delimiter: ","}, "a ", false, `"a "`},
		{"empty", csvOptions{delimiter: ","}, "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.cell(tt.in, tt.force))
		})
	}
}
