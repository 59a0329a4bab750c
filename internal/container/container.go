package container

import (
	"fmt"
	"io"

	"sheetops/adapters/excel"
	"sheetops/app"
	"sheetops/internal"
	"sheetops/internal/config"
	"sheetops/internal/dataset"
	"sheetops/internal/present"
	"sheetops/ports"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	Source   ports.TableSource
	Renderer *present.Renderer

	// Walkthroughs
	Combine    *app.CombineService
	ExcelTasks *app.ExcelTasksService
	Filter     *app.FilterService
	DTypes     *app.DTypesService
}

// New wires every service against cfg, printing to out
func New(cfg *config.Config, out io.Writer) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))
	excelConfig := excel.DefaultExcelConfig()
	excelConfig.Sheet = cfg.Data.SheetName

	c := &Container{
		Config:   cfg,
		Logger:   logger,
		Source:   dataset.NewLoader(excelConfig, logger),
		Renderer: present.NewRenderer(out, cfg.Display.Rows),
	}
	c.Combine = app.NewCombineService(c.Source, cfg, c.Renderer, logger)
	c.ExcelTasks = app.NewExcelTasksService(c.Source, cfg, c.Renderer, logger)
	c.Filter = app.NewFilterService(c.Source, cfg, c.Renderer, logger)
	c.DTypes = app.NewDTypesService(c.Source, cfg, c.Renderer, logger)

	logger.Debug("container ready: data dir %s", cfg.Data.Dir)
	return c, nil
}
