package app

import (
	"context"

	"sheetops/adapters/coercer"
	"sheetops/domain/table"
	"sheetops/internal"
	"sheetops/internal/config"
	"sheetops/internal/errors"
	"sheetops/internal/normalize"
	"sheetops/internal/present"
	"sheetops/ports"
)

// DTypesService cleans a customer export whose numbers arrive as formatted
// text, first column by column and then in a single load
type DTypesService struct {
	source   ports.TableSource
	renderer *present.Renderer
	config   *config.Config
	logger   *internal.Logger
}

// DTypesReport holds every intermediate result of a run
type DTypesReport struct {
	Raw       *table.RowSet
	Concat    *table.RowSet // 2016 and 2017 joined as text
	Cleaned   *table.RowSet
	Coercions []coercer.Coercion
	OnePass   *table.RowSet
}

const (
	startDateCol = "Start_Date"
	janUnitsCol  = "Jan Units"
)

// NewDTypesService creates a data types service
func NewDTypesService(source ports.TableSource, cfg *config.Config, renderer *present.Renderer, logger *internal.Logger) *DTypesService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DTypesService{source: source, renderer: renderer, config: cfg, logger: logger}
}

// typeConverters are the per-column conversions for the customer export
func typeConverters() map[string]table.Converter {
	return map[string]table.Converter{
		"Customer Number": coercer.Integer(),
		"2016":            coercer.Currency(),
		"2017":            coercer.Currency(),
		"Percent Growth":  coercer.Percent(),
		janUnitsCol:       coercer.Numeric(),
		"Active":          coercer.YesNo(),
	}
}

// Run executes the walkthrough
func (s *DTypesService) Run(ctx context.Context) (*DTypesReport, error) {
	runner := NewStageRunner("DTypes", s.logger)
	report := &DTypesReport{}
	path := s.config.Data.Path(s.config.Data.TypesFile)

	err := runner.Run(ctx, "raw load", func() error {
		rs, err := s.source.LoadFile(ctx, path, ports.ReadOptions{})
		if err != nil {
			return err
		}
		report.Raw = rs
		if err := s.renderer.Print("Raw", rs); err != nil {
			return err
		}
		if err := s.renderer.PrintDTypes("Raw column types", rs); err != nil {
			return err
		}

		// text columns concatenate instead of adding
		report.Concat, err = rs.WithColumn(table.Column{Name: "2016 + 2017", Type: table.ColumnString}, func(r table.Row) table.Value {
			return table.NewString(r.Get("2016").String() + r.Get("2017").String())
		})
		if err != nil {
			return errors.Wrap(err, "concatenate")
		}
		sel, err := report.Concat.Select("2016", "2017", "2016 + 2017")
		if err != nil {
			return err
		}
		return s.renderer.Print("Text addition", sel)
	})
	if err != nil {
		return nil, err
	}

	err = runner.Run(ctx, "clean columns", func() error {
		rs := report.Raw
		convs := typeConverters()
		for _, col := range []string{"Customer Number", "2016", "2017", "Percent Growth", "Active", janUnitsCol} {
			next, c, err := coercer.Apply(rs, col, convs[col])
			if err != nil {
				return errors.Wrap(err, "convert "+col)
			}
			if c.Coerced > 0 {
				s.logger.Warn("%s: %d cells did not convert and are now missing", col, c.Coerced)
			}
			report.Coercions = append(report.Coercions, c)
			rs = next
		}
		cleaned, err := finishTypes(rs)
		if err != nil {
			return err
		}
		report.Cleaned = cleaned
		if err := s.renderer.Print("Cleaned", cleaned); err != nil {
			return err
		}
		return s.renderer.PrintDTypes("Cleaned column types", cleaned)
	})
	if err != nil {
		return nil, err
	}

	err = runner.Run(ctx, "one pass", func() error {
		rs, err := s.source.LoadFile(ctx, path, ports.ReadOptions{Converters: typeConverters()})
		if err != nil {
			return err
		}
		if report.OnePass, err = finishTypes(rs); err != nil {
			return err
		}
		return s.renderer.PrintDTypes("Converted on load", report.OnePass)
	})
	if err != nil {
		return nil, err
	}

	return report, nil
}

// finishTypes fills unconvertible unit counts with zero and assembles the
// start date from its parts
func finishTypes(rs *table.RowSet) (*table.RowSet, error) {
	filled, err := normalize.FillMissing(rs, janUnitsCol, table.NewNumeric(0))
	if err != nil {
		return nil, err
	}
	out, _, err := coercer.DateFromParts(filled, startDateCol, "Year", "Month", "Day")
	if err != nil {
		return nil, errors.WithCode(errors.CodeColumnNotFound, err)
	}
	return out, nil
}
