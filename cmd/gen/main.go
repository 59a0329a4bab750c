package main

import (
	"flag"
	"fmt"
	"os"

	"sheetops/internal/testkit"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	defaultDir := os.Getenv("DATA_DIR")
	if defaultDir == "" {
		defaultDir = "."
	}
	out := flag.String("out", defaultDir, "output directory")
	rows := flag.Int("rows", testkit.DefaultSalesConfig().RowsPerMonth, "orders per month")
	year := flag.Int("year", testkit.DefaultSalesConfig().Year, "sales year")
	seed := flag.Int64("seed", 42, "RNG seed (deterministic)")
	flag.Parse()

	if *rows <= 0 {
		fmt.Fprintln(os.Stderr, "rows must be > 0")
		os.Exit(2)
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "error creating output directory:", err)
		os.Exit(1)
	}

	kit, err := testkit.NewTestKit(*out, testkit.SalesGeneratorConfig{RowsPerMonth: *rows, Year: *year, Seed: *seed})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error generating sample data:", err)
		os.Exit(1)
	}

	for _, f := range kit.Files {
		fmt.Println(f)
	}
	fmt.Printf("Wrote %d files to %s\n", len(kit.Files), kit.Dir)
}
