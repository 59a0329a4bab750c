package app

import (
	"context"
	"fmt"
	"time"

	"sheetops/adapters/coercer"
	"sheetops/domain/table"
	"sheetops/internal"
	"sheetops/internal/config"
	"sheetops/internal/dataset"
	"sheetops/internal/errors"
	"sheetops/internal/present"
	"sheetops/ports"
)

// FilterService demonstrates row selection, date ranges, sorting and
// de-duplication on a year of sales
type FilterService struct {
	source   ports.TableSource
	renderer *present.Renderer
	config   *config.Config
	logger   *internal.Logger
}

// FilterRequest parameterises the selections. Zero fields take the values
// used by the sample data.
type FilterRequest struct {
	Account   float64
	Accounts  []float64
	Names     []string
	MinQty    float64
	SKUPrefix string
	Part      string
	BulkQty   float64
	Since     []string // date bounds, in any layout the coercer reads
	From, To  string   // inclusive; To covers the whole period it names
	Month     string
}

// DefaultFilterRequest returns the selections the walkthrough prints
func DefaultFilterRequest() FilterRequest {
	return FilterRequest{
		Account:   307599,
		Accounts:  []float64{714466, 218895},
		Names:     []string{"Kulas Inc", "Barton LLC"},
		MinQty:    22,
		SKUPrefix: "B1",
		Part:      "B1-531",
		BulkQty:   40,
		Since:     []string{"2014-09-05", "2014-03", "Oct-2014", "10-10-2014", "20140905"},
		From:      "2014-Jan-1",
		To:        "2014-Feb-1",
		Month:     "2014-Dec",
	}
}

// Selection is one labelled filter result
type Selection struct {
	Label string
	Rows  *table.RowSet
}

// FilterReport holds every selection of a run
type FilterReport struct {
	Sales      *table.RowSet
	Selections []Selection
	ByDate     *table.RowSet
	Bulk       *table.RowSet
	Names      []table.Value
	Customers  *table.RowSet
	FirstCols  *table.RowSet
}

// Selection returns the result recorded under label
func (r *FilterReport) Selection(label string) (*table.RowSet, bool) {
	for _, s := range r.Selections {
		if s.Label == label {
			return s.Rows, true
		}
	}
	return nil, false
}

// NewFilterService creates a filter service
func NewFilterService(source ports.TableSource, cfg *config.Config, renderer *present.Renderer, logger *internal.Logger) *FilterService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &FilterService{source: source, renderer: renderer, config: cfg, logger: logger}
}

// Run executes the walkthrough
func (s *FilterService) Run(ctx context.Context, req FilterRequest) (*FilterReport, error) {
	runner := NewStageRunner("Filter", s.logger)
	report := &FilterReport{}

	err := runner.Run(ctx, "load sales", func() error {
		rs, err := s.source.LoadFile(ctx, s.config.Data.Path(s.config.Data.SalesFile), ports.ReadOptions{
			Converters: map[string]table.Converter{dateCol: coercer.Timestamp()},
		})
		if err != nil {
			return err
		}
		report.Sales = rs
		return s.renderer.PrintDTypes("Column types", rs)
	})
	if err != nil {
		return nil, err
	}

	err = runner.Run(ctx, "filter rows", func() error {
		accounts := make([]table.Value, len(req.Accounts))
		for i, a := range req.Accounts {
			accounts[i] = table.NewNumeric(a)
		}
		names := make([]table.Value, len(req.Names))
		for i, n := range req.Names {
			names[i] = table.NewString(n)
		}

		selections := []struct {
			label string
			pred  dataset.Predicate
		}{
			{fmt.Sprintf("account number == %v", req.Account), dataset.Eq(accountCol, table.NewNumeric(req.Account))},
			{fmt.Sprintf("quantity > %v", req.MinQty), dataset.Greater("quantity", req.MinQty)},
			{fmt.Sprintf("sku starts with %s", req.SKUPrefix), dataset.HasPrefix("sku", req.SKUPrefix)},
			{fmt.Sprintf("sku starts with %s and quantity > %v", req.SKUPrefix, req.MinQty),
				dataset.And(dataset.HasPrefix("sku", req.SKUPrefix), dataset.Greater("quantity", req.MinQty))},
			{fmt.Sprintf("account number in %v", req.Accounts), dataset.In(accountCol, accounts...)},
			{fmt.Sprintf("name in %v", req.Names), dataset.In(nameCol, names...)},
		}
		for _, sel := range selections {
			if err := s.selectRows(report, sel.label, sel.pred); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = runner.Run(ctx, "date ranges", func() error {
		var err error
		if report.ByDate, err = report.Sales.SortBy(table.Asc(dateCol)); err != nil {
			return err
		}
		if err := s.renderer.Print("Sorted by date", report.ByDate.Head(s.config.Display.Rows)); err != nil {
			return err
		}
		for _, bound := range req.Since {
			from, _, err := parseBound(bound)
			if err != nil {
				return err
			}
			if err := s.selectRows(report, "date >= "+bound, dataset.Since(dateCol, from)); err != nil {
				return err
			}
		}
		if req.Month != "" {
			from, to, err := parseBound(req.Month)
			if err != nil {
				return err
			}
			if err := s.selectRows(report, "date in "+req.Month, dataset.Between(dateCol, from, to)); err != nil {
				return err
			}
		}
		if req.From == "" || req.To == "" {
			return nil
		}
		from, _, err := parseBound(req.From)
		if err != nil {
			return err
		}
		_, to, err := parseBound(req.To)
		if err != nil {
			return err
		}
		return s.selectRows(report, fmt.Sprintf("%s <= date <= %s", req.From, req.To), dataset.Between(dateCol, from, to))
	})
	if err != nil {
		return nil, err
	}

	err = runner.Run(ctx, "bulk part orders", func() error {
		bulk := report.Sales.Filter(dataset.And(dataset.Contains("sku", req.Part), dataset.Greater("quantity", req.BulkQty)))
		var err error
		if report.Bulk, err = bulk.SortBy(table.Desc("quantity"), table.Asc(nameCol)); err != nil {
			return err
		}
		return s.renderer.Print(fmt.Sprintf("sku contains %s and quantity > %v", req.Part, req.BulkQty), report.Bulk)
	})
	if err != nil {
		return nil, err
	}

	err = runner.Run(ctx, "customers", func() error {
		var err error
		if report.Names, err = report.Sales.Unique(nameCol); err != nil {
			return err
		}
		if err := s.renderer.Printf("%d distinct customer names\n\n", len(report.Names)); err != nil {
			return err
		}
		if report.Customers, err = report.Sales.DropDuplicates(accountCol, nameCol); err != nil {
			return err
		}
		if report.FirstCols, err = report.Customers.SelectIndex(0, 1); err != nil {
			return err
		}
		return s.renderer.Print("Customers", report.FirstCols.Head(s.config.Display.Rows))
	})
	if err != nil {
		return nil, err
	}

	return report, nil
}

func (s *FilterService) selectRows(report *FilterReport, label string, pred dataset.Predicate) error {
	rows := report.Sales.Filter(pred)
	report.Selections = append(report.Selections, Selection{Label: label, Rows: rows})
	s.logger.Debug("%s: %d of %d rows", label, rows.Len(), report.Sales.Len())
	return s.renderer.Print(fmt.Sprintf("%s (%d rows)", label, rows.Len()), rows.Head(s.config.Display.Rows))
}

// parseBound returns the first and last instant of the period raw names
func parseBound(raw string) (time.Time, time.Time, error) {
	start, end, ok := coercer.ParsePeriod(raw)
	if !ok {
		return time.Time{}, time.Time{}, errors.InvalidInput(fmt.Sprintf("unrecognised date bound %q", raw))
	}
	return start, end, nil
}
