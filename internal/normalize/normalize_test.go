package normalize

import (
	"io"
	"testing"

	"sheetops/domain/table"
	"sheetops/internal"
	"sheetops/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = internal.NewLoggerTo(io.Discard, internal.LogLevelError)

func statesMapper(t *testing.T) *FuzzyMapper {
	t.Helper()
	m, err := NewFuzzyMapper(USStates(), DefaultCutoff, nil, quiet)
	require.NoError(t, err)
	return m
}

func TestTokenSortRatio(t *testing.T) {
	assert.Equal(t, 100, TokenSortRatio("Minnesota", "MINNESOTA"))
	assert.Equal(t, 100, TokenSortRatio("York, New", "NEW YORK"))
	assert.Equal(t, 95, TokenSortRatio("Minnesotta", "MINNESOTA"))
	assert.Equal(t, 78, TokenSortRatio("AlaBAMMazzz", "ALABAMA"))
	assert.Equal(t, 0, TokenSortRatio("", ""))
	assert.Equal(t, 0, Ratio("", "abc"))
}

func TestMatchStates(t *testing.T) {
	m := statesMapper(t)

	tests := []struct {
		input string
		code  string
		ok    bool
	}{
		{"Minnesotta", "MN", true},
		{"texas", "TX", true},
		{"WashingtON", "WA", true},
		{"Pennsylvana", "PA", true},
		{"AlaBAMMazzz", "", false},
		{"Zzzzyx", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, score, ok := m.Match(tt.input)
			assert.Equal(t, tt.ok, ok, "score %d", score)
			assert.Equal(t, tt.code, c.Code)
			if ok {
				assert.GreaterOrEqual(t, score, m.Cutoff())
			}
		})
	}
}

func TestMatchExactScoresHundred(t *testing.T) {
	m := statesMapper(t)
	for _, c := range USStates() {
		got, score, ok := m.Match(c.Name)
		require.True(t, ok, c.Name)
		assert.Equal(t, 100, score, c.Name)
		assert.Equal(t, c.Code, got.Code, c.Name)
	}
}

func TestMatchTieGoesToFirstCandidate(t *testing.T) {
	constant := func(a, b string) int { return 90 }
	m, err := NewFuzzyMapper([]Candidate{{"ONE", "1"}, {"TWO", "2"}}, 80, constant, quiet)
	require.NoError(t, err)
	c, _, ok := m.Match("anything")
	require.True(t, ok)
	assert.Equal(t, "1", c.Code)

	_, err = NewFuzzyMapper(nil, 80, nil, quiet)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	_, err = NewFuzzyMapper(USStates(), 101, nil, quiet)
	assert.Error(t, err)
}

func compData(t *testing.T) *table.RowSet {
	t.Helper()
	schema, err := table.NewSchema(
		table.Column{Name: "name"},
		table.Column{Name: "state"},
		table.Column{Name: "Jan", Type: table.ColumnNumeric},
	)
	require.NoError(t, err)
	rs, err := table.New(schema, []table.Record{
		{table.NewString("Kulas Inc"), table.NewString("Minnesotta"), table.NewNumeric(10)},
		{table.NewString("Barton LLC"), table.NewString("Zzzzyx"), table.NewMissing()},
		{table.NewString("Total"), table.NewMissing(), table.NewNumeric(10)},
		{table.NewString("Jerde"), table.NewString("Minnesotta"), table.NewNumeric(5)},
	})
	require.NoError(t, err)
	return rs
}

func TestMapColumn(t *testing.T) {
	rs := compData(t)
	out, report, err := statesMapper(t).MapColumn(rs, "state", "abbrev", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "state", "abbrev", "Jan"}, out.Names())
	assert.Equal(t, MapReport{Matched: 2, Unmatched: 1, Missing: 1}, report)

	codes, err := out.Column("abbrev")
	require.NoError(t, err)
	assert.Equal(t, "MN", codes[0].String())
	assert.True(t, codes[1].IsMissing())
	assert.True(t, codes[2].IsMissing())
	assert.Equal(t, "MN", codes[3].String())

	assert.Equal(t, []string{"name", "state", "Jan"}, rs.Names(), "input untouched")

	_, _, err = statesMapper(t).MapColumn(rs, "province", "abbrev", -1)
	assert.Equal(t, errors.CodeColumnNotFound, errors.GetCode(err))
}

func TestFillMissingIsIdempotent(t *testing.T) {
	rs := compData(t)
	once, err := FillMissing(rs, "state", table.NewString("UNKNOWN"))
	require.NoError(t, err)
	twice, err := FillMissing(once, "state", table.NewString("UNKNOWN"))
	require.NoError(t, err)

	a, _ := once.Column("state")
	b, _ := twice.Column("state")
	require.Len(t, b, len(a))
	for i := range a {
		assert.False(t, a[i].IsMissing())
		assert.True(t, a[i].Equal(b[i]))
	}
	v, _ := once.Get(0, "state")
	assert.Equal(t, "Minnesotta", v.String(), "present cells untouched")

	orig, _ := rs.Get(2, "state")
	assert.True(t, orig.IsMissing())
}

func TestFillMissingRejectsWrongType(t *testing.T) {
	rs := compData(t)
	_, err := FillMissing(rs, "Jan", table.NewString("zero"))
	assert.Equal(t, errors.CodeTypeMismatch, errors.GetCode(err))
	_, err = FillMissing(rs, "Feb", table.NewNumeric(0))
	assert.Equal(t, errors.CodeColumnNotFound, errors.GetCode(err))
	_, err = FillMissing(rs, "Jan", table.NewMissing())
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	cat, err := rs.AsCategory("name", table.NewCategorySet("Kulas Inc", "Barton LLC", "Total", "Jerde"))
	require.NoError(t, err)
	_, err = FillMissing(cat, "name", table.NewString("gold"))
	assert.Equal(t, errors.CodeTypeMismatch, errors.GetCode(err))
}

func TestFillMissingAll(t *testing.T) {
	out, err := FillMissingAll(compData(t), 0)
	require.NoError(t, err)
	v, _ := out.Get(1, "Jan")
	assert.Equal(t, "0", v.String())
	s, _ := out.Get(2, "state")
	assert.True(t, s.IsMissing(), "string columns are left alone")
}
