package app

import (
	"context"
	"fmt"

	"sheetops/domain/core"
	"sheetops/domain/table"
	"sheetops/internal"
	"sheetops/internal/aggregate"
	"sheetops/internal/config"
	"sheetops/internal/errors"
	"sheetops/internal/normalize"
	"sheetops/internal/present"
	"sheetops/ports"
)

// ExcelTasksService adds quarter totals to the address book, normalises state
// names to postal codes and reports sales per state
type ExcelTasksService struct {
	source   ports.TableSource
	renderer *present.Renderer
	config   *config.Config
	logger   *internal.Logger
}

// ExcelTasksReport holds every intermediate result of a run
type ExcelTasksReport struct {
	Accounts   *table.RowSet // with the Total column
	Jan        aggregate.Summary
	WithTotals *table.RowSet
	Mapped     *table.RowSet
	Mapping    normalize.MapReport
	ByState    *table.RowSet // numeric sums per state code
	Final      *table.RowSet // money formatted, with a Total row
}

var quarterCols = []string{"Jan", "Feb", "Mar"}

const (
	totalCol  = "Total"
	stateCol  = "state"
	abbrevCol = "abbrev"
	abbrevPos = 6
)

// NewExcelTasksService creates an excel tasks service
func NewExcelTasksService(source ports.TableSource, cfg *config.Config, renderer *present.Renderer, logger *internal.Logger) *ExcelTasksService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ExcelTasksService{source: source, renderer: renderer, config: cfg, logger: logger}
}

// Run executes the walkthrough
func (s *ExcelTasksService) Run(ctx context.Context) (*ExcelTasksReport, error) {
	runner := NewStageRunner("ExcelTasks", s.logger)
	report := &ExcelTasksReport{}
	sumCols := append(append([]string(nil), quarterCols...), totalCol)
	money := present.MoneyCells(present.NewMoneyFormatter(s.config.Display.CurrencySymbol))

	err := runner.Run(ctx, "quarter totals", func() error {
		rs, err := s.source.LoadFile(ctx, s.config.Data.Path(s.config.Data.CompFile), ports.ReadOptions{})
		if err != nil {
			return err
		}
		if report.Accounts, err = addTotal(rs); err != nil {
			return err
		}
		if err := s.renderer.Print("Accounts", report.Accounts.Head(s.config.Display.Rows)); err != nil {
			return err
		}
		if report.Jan, err = aggregate.Summarize(report.Accounts, "Jan"); err != nil {
			return err
		}
		j := report.Jan
		return s.renderer.Printf("Jan: sum %s, mean %s, min %s, max %s\n\n",
			present.Money(j.Sum), present.Money(j.Mean), present.Money(j.Min), present.Money(j.Max))
	})
	if err != nil {
		return nil, err
	}

	err = runner.Run(ctx, "totals row", func() error {
		var err error
		if report.WithTotals, err = aggregate.WithTotals(report.Accounts, "", sumCols...); err != nil {
			return err
		}
		return s.renderer.Print("With totals", report.WithTotals.Tail(s.config.Display.Rows))
	})
	if err != nil {
		return nil, err
	}

	err = runner.Run(ctx, "map states", func() error {
		mapper, err := normalize.NewFuzzyMapper(normalize.USStates(), s.config.Fuzzy.Cutoff, normalize.TokenSortRatio, s.logger)
		if err != nil {
			return err
		}
		pos := abbrevPos
		if n := report.Accounts.Schema().Len(); pos > n {
			pos = n
		}
		if report.Mapped, report.Mapping, err = mapper.MapColumn(report.Accounts, stateCol, abbrevCol, pos); err != nil {
			return err
		}
		if report.Mapping.Unmatched > 0 {
			s.logger.Warn("%d state names had no code at cutoff %d", report.Mapping.Unmatched, mapper.Cutoff())
		}
		return s.renderer.Print("State codes", report.Mapped.Head(s.config.Display.Rows))
	})
	if err != nil {
		return nil, err
	}

	err = runner.Run(ctx, "sales by state", func() error {
		g, err := aggregate.GroupBy(report.Mapped, abbrevCol, sumCols...)
		if err != nil {
			return err
		}
		if report.ByState, err = g.Sorted().Sum(); err != nil {
			return err
		}
		totals, err := aggregate.Totals(report.ByState, abbrevCol, sumCols...)
		if err != nil {
			return err
		}

		formatted, err := present.FormatColumns(report.ByState, money, sumCols...)
		if err != nil {
			return err
		}
		formattedTotals, err := present.FormatColumns(totals, money, sumCols...)
		if err != nil {
			return err
		}
		if report.Final, err = formatted.Concat(formattedTotals); err != nil {
			return errors.Wrap(err, "append totals")
		}
		return s.renderer.Print(fmt.Sprintf("Sales by state (%d states)", report.ByState.Len()), report.Final)
	})
	if err != nil {
		return nil, err
	}

	return report, nil
}

// addTotal sums the quarter columns; a missing month makes the total missing
func addTotal(rs *table.RowSet) (*table.RowSet, error) {
	for _, c := range quarterCols {
		col, ok := rs.Schema().Column(c)
		if !ok {
			return nil, errors.ColumnNotFound(c, core.NewColumnNotFoundError(c))
		}
		if col.Type != table.ColumnNumeric {
			return nil, errors.TypeMismatch(fmt.Sprintf("%s is %s, not numeric", c, col.Type), core.ErrNotNumeric)
		}
	}
	out, err := rs.WithColumn(table.Column{Name: totalCol, Type: table.ColumnNumeric}, func(r table.Row) table.Value {
		var sum float64
		for _, c := range quarterCols {
			f, ok := r.Get(c).Float()
			if !ok {
				return table.NewMissing()
			}
			sum += f
		}
		return table.NewNumeric(sum)
	})
	if err != nil {
		return nil, errors.Wrap(err, "add total")
	}
	return out, nil
}
