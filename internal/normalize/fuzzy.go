package normalize

import (
	"fmt"

	"sheetops/domain/core"
	"sheetops/domain/table"
	"sheetops/internal"
	"sheetops/internal/errors"
)

// Candidate is one canonical name and the code it maps to
type Candidate struct {
	Name string
	Code string
}

// DefaultCutoff is the minimum score a match needs
const DefaultCutoff = 80

// FuzzyMapper maps free-text values onto a fixed candidate list
type FuzzyMapper struct {
	candidates []Candidate
	scorer     Scorer
	cutoff     int
	logger     *internal.Logger
}

// NewFuzzyMapper builds a mapper. A nil scorer uses TokenSortRatio.
func NewFuzzyMapper(candidates []Candidate, cutoff int, scorer Scorer, logger *internal.Logger) (*FuzzyMapper, error) {
	if len(candidates) == 0 {
		return nil, errors.InvalidInput("fuzzy mapper needs at least one candidate")
	}
	if cutoff < 0 || cutoff > 100 {
		return nil, errors.InvalidInput(fmt.Sprintf("cutoff %d outside 0..100", cutoff))
	}
	if scorer == nil {
		scorer = TokenSortRatio
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &FuzzyMapper{
		candidates: append([]Candidate(nil), candidates...),
		scorer:     scorer,
		cutoff:     cutoff,
		logger:     logger.With("Normalizer"),
	}, nil
}

// Cutoff returns the minimum accepted score
func (m *FuzzyMapper) Cutoff() int {
	return m.cutoff
}

// Match returns the best-scoring candidate at or above the cutoff. On equal
// scores the earlier candidate wins.
func (m *FuzzyMapper) Match(input string) (Candidate, int, bool) {
	best, bestScore := -1, -1
	for i, c := range m.candidates {
		score := m.scorer(input, c.Name)
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 || bestScore < m.cutoff {
		return Candidate{}, bestScore, false
	}
	return m.candidates[best], bestScore, true
}

// MapReport counts the outcome of a MapColumn call
type MapReport struct {
	Matched   int
	Unmatched int
	Missing   int
}

// MapColumn inserts column dst at position pos holding the matched code of
// each src cell, or missing when nothing clears the cutoff. Missing src cells
// stay missing. A negative pos appends.
func (m *FuzzyMapper) MapColumn(rs *table.RowSet, src, dst string, pos int) (*table.RowSet, MapReport, error) {
	var report MapReport
	if _, ok := rs.Schema().Index(src); !ok {
		return nil, report, errors.ColumnNotFound(src, core.NewColumnNotFoundError(src))
	}

	cache := make(map[string]table.Value)
	code := func(r table.Row) table.Value {
		v := r.Get(src)
		if v.IsMissing() {
			report.Missing++
			return table.NewMissing()
		}
		text := v.String()
		if hit, ok := cache[text]; ok {
			if hit.IsMissing() {
				report.Unmatched++
			} else {
				report.Matched++
			}
			return hit
		}
		out := table.NewMissing()
		if c, score, ok := m.Match(text); ok {
			out = table.NewString(c.Code)
			report.Matched++
			m.logger.Trace("%q -> %s (%d)", text, c.Code, score)
		} else {
			report.Unmatched++
			m.logger.Debug("no match for %q (best score %d < %d)", text, score, m.cutoff)
		}
		cache[text] = out
		return out
	}

	col := table.Column{Name: dst, Type: table.ColumnString}
	if pos < 0 {
		pos = rs.Schema().Len()
	}
	out, err := rs.InsertColumn(pos, col, code)
	if err != nil {
		return nil, report, errors.Wrap(err, "map column "+src)
	}
	m.logger.Info("mapped %s -> %s: %d matched, %d unmatched, %d missing",
		src, dst, report.Matched, report.Unmatched, report.Missing)
	return out, report, nil
}
