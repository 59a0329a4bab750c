package app

import (
	"context"
	"fmt"

	"sheetops/adapters/coercer"
	"sheetops/domain/table"
	"sheetops/internal"
	"sheetops/internal/aggregate"
	"sheetops/internal/config"
	"sheetops/internal/dataset"
	"sheetops/internal/errors"
	"sheetops/internal/normalize"
	"sheetops/internal/present"
	"sheetops/ports"
)

// CombineService merges monthly sales files with customer status and
// summarises sales per status
type CombineService struct {
	source   ports.TableSource
	merger   *dataset.Merger
	renderer *present.Renderer
	config   *config.Config
	logger   *internal.Logger
}

// CombineRequest selects the account shown after the join. Zero picks the
// first account in the combined sales.
type CombineRequest struct {
	Account float64
}

// CombineReport holds every intermediate result of a run
type CombineReport struct {
	Files      []string
	Sales      *table.RowSet
	Summary    *table.RowSet
	Join       *dataset.JoinResult
	Account    *table.RowSet
	Status     *table.RowSet // joined, filled, categorical and sorted by status
	StatusInfo aggregate.CategoricalSummary
	Means      *table.RowSet
	Spread     *table.RowSet // sum, mean and std per status
	Customers  *table.RowSet
	Counts     *table.RowSet
}

const (
	statusCol  = "status"
	accountCol = "account number"
	nameCol    = "name"
	dateCol    = "date"
)

// NewCombineService creates a combine service
func NewCombineService(source ports.TableSource, cfg *config.Config, renderer *present.Renderer, logger *internal.Logger) *CombineService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &CombineService{
		source:   source,
		merger:   dataset.NewMerger(dataset.DefaultMergeConfig(), logger),
		renderer: renderer,
		config:   cfg,
		logger:   logger,
	}
}

// Run executes the walkthrough
func (s *CombineService) Run(ctx context.Context, req CombineRequest) (*CombineReport, error) {
	runner := NewStageRunner("Combine", s.logger)
	report := &CombineReport{}
	cats := table.NewCategorySet(s.config.Category.Order...)

	err := runner.Run(ctx, "load sales", func() error {
		rs, files, err := s.source.LoadPattern(ctx, s.config.Data.Path(s.config.Data.SalesPattern), ports.ReadOptions{})
		if err != nil {
			return err
		}
		report.Files = files
		if rs, _, err = coercer.ToTimestamp(rs, dateCol); err != nil {
			return errors.Wrap(err, "parse dates")
		}
		report.Sales = rs
		if report.Summary, err = aggregate.Describe(rs); err != nil {
			return err
		}
		if err := s.renderer.Print(fmt.Sprintf("Combined %d files", len(files)), report.Summary); err != nil {
			return err
		}
		return s.renderer.Print("", rs.Head(s.config.Display.Rows))
	})
	if err != nil {
		return nil, err
	}

	err = runner.Run(ctx, "join status", func() error {
		status, err := s.source.LoadFile(ctx, s.config.Data.Path(s.config.Data.StatusFile), ports.ReadOptions{})
		if err != nil {
			return err
		}
		if report.Join, err = s.merger.LeftJoin(ctx, report.Sales, status); err != nil {
			return err
		}

		account := table.NewNumeric(req.Account)
		if req.Account == 0 && report.Sales.Len() > 0 {
			account = report.Sales.Row(0).Get(accountCol)
		}
		report.Account = report.Join.RowSet.Filter(dataset.Eq(accountCol, account))
		return s.renderer.Print(fmt.Sprintf("Account %s", account), report.Account.Head(s.config.Display.Rows))
	})
	if err != nil {
		return nil, err
	}

	err = runner.Run(ctx, "categorise status", func() error {
		filled, err := normalize.FillMissing(report.Join.RowSet, statusCol, table.NewString(s.config.Category.Default))
		if err != nil {
			return err
		}
		categorised, err := filled.AsCategory(statusCol, cats)
		if err != nil {
			return errors.TypeMismatch("status values outside "+fmt.Sprint(cats.Values()), err)
		}
		if err := s.renderer.PrintDTypes("Column types", categorised); err != nil {
			return err
		}
		if report.Status, err = categorised.SortBy(table.Asc(statusCol)); err != nil {
			return err
		}
		return s.renderer.Print("Sorted by status", report.Status.Head(s.config.Display.Rows))
	})
	if err != nil {
		return nil, err
	}

	err = runner.Run(ctx, "summarise", func() error {
		var err error
		if report.StatusInfo, err = aggregate.DescribeCategorical(report.Status, statusCol); err != nil {
			return err
		}
		info, err := report.StatusInfo.RowSet()
		if err != nil {
			return err
		}
		if err := s.renderer.Print("Status", info); err != nil {
			return err
		}

		g, err := aggregate.GroupBy(report.Status, statusCol, "quantity", "unit price", "ext price")
		if err != nil {
			return err
		}
		if report.Means, err = g.Sorted().Mean(); err != nil {
			return err
		}
		if err := s.renderer.Print("Mean by status", report.Means); err != nil {
			return err
		}

		if report.Spread, err = g.Sorted().Agg(aggregate.Sum, aggregate.Mean, aggregate.Std); err != nil {
			return err
		}
		return s.renderer.Print("Sum, mean and std by status", report.Spread)
	})
	if err != nil {
		return nil, err
	}

	err = runner.Run(ctx, "count customers", func() error {
		var err error
		if report.Customers, err = report.Status.DropDuplicates(accountCol, nameCol); err != nil {
			return err
		}
		if report.Counts, err = aggregate.CountBy(report.Customers, statusCol, nameCol); err != nil {
			return err
		}
		return s.renderer.Print("Customers by status", report.Counts)
	})
	if err != nil {
		return nil, err
	}

	return report, nil
}
