package main

import (
	"fmt"
	"os"

	"sheetops/app"
	"sheetops/internal/config"
	"sheetops/internal/container"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	var dataDir string
	var logLevel string
	var c *container.Container

	rootCmd := &cobra.Command{
		Use:   "sheetops",
		Short: "Spreadsheet walkthroughs: combine, clean, filter and summarise sales workbooks",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dataDir != "" {
				cfg.Data.Dir = dataDir
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			c, err = container.New(cfg, cmd.OutOrStdout())
			return err
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding the input workbooks (overrides DATA_DIR)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "ERROR, WARN, INFO, DEBUG or TRACE (overrides LOG_LEVEL)")

	rootCmd.AddCommand(
		newCombineCmd(&c),
		newTasksCmd(&c),
		newFilterCmd(&c),
		newDTypesCmd(&c),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCombineCmd(c **container.Container) *cobra.Command {
	var account float64

	cmd := &cobra.Command{
		Use:   "combine",
		Short: "Combine monthly sales files and summarise them by customer status",
		Long: `Load every file matching SALES_PATTERN, join customer status from STATUS_FILE,
fill unknown statuses with DEFAULT_STATUS and summarise sales per status.

Example: sheetops combine --account 737550`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := (*c).Combine.Run(cmd.Context(), app.CombineRequest{Account: account})
			return err
		},
	}

	cmd.Flags().Float64Var(&account, "account", 0, "account number to show after the join (default: first account)")

	return cmd
}

func newTasksCmd(c **container.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "Quarter totals, state codes and sales per state from COMP_FILE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := (*c).ExcelTasks.Run(cmd.Context())
			return err
		},
	}
}

func newFilterCmd(c **container.Container) *cobra.Command {
	req := app.DefaultFilterRequest()

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Row selections, date ranges and de-duplication on SALES_FILE",
		Long: `Run a fixed set of selections against a year of sales.

Example: sheetops filter --account 218895 --since 2014-06 --from 2014-02-01 --to 2014-02-28`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := (*c).Filter.Run(cmd.Context(), req)
			return err
		},
	}

	cmd.Flags().Float64Var(&req.Account, "account", req.Account, "account number to select")
	cmd.Flags().Float64SliceVar(&req.Accounts, "accounts", req.Accounts, "account numbers for the membership filter")
	cmd.Flags().StringSliceVar(&req.Names, "names", req.Names, "customer names for the membership filter")
	cmd.Flags().Float64Var(&req.MinQty, "min-qty", req.MinQty, "quantity threshold")
	cmd.Flags().StringVar(&req.SKUPrefix, "sku-prefix", req.SKUPrefix, "sku prefix")
	cmd.Flags().StringVar(&req.Part, "part", req.Part, "part number fragment for the bulk order filter")
	cmd.Flags().Float64Var(&req.BulkQty, "bulk-qty", req.BulkQty, "quantity threshold for bulk orders")
	cmd.Flags().StringSliceVar(&req.Since, "since", req.Since, "lower date bounds")
	cmd.Flags().StringVar(&req.From, "from", req.From, "start of the date range")
	cmd.Flags().StringVar(&req.To, "to", req.To, "end of the date range")
	cmd.Flags().StringVar(&req.Month, "month", req.Month, "month to select, e.g. 2014-Dec")

	return cmd
}

func newDTypesCmd(c **container.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "dtypes",
		Short: "Convert the formatted text columns of TYPES_FILE to numbers, booleans and dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := (*c).DTypes.Run(cmd.Context())
			return err
		},
	}
}
