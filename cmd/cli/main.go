package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"dqlens/adapters/excel"
	"dqlens/app"
	"dqlens/domain/dataset"
	"dqlens/domain/quality"
	"dqlens/domain/quality/catalog"
	"dqlens/internal/cleaner"
	"dqlens/internal/export"
	"dqlens/internal/inference"
	"dqlens/internal/testkit"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dqlens",
		Short: "Data quality scoring for tabular datasets",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newCleanCmd(),
		newCatalogCmd(),
		newGenerateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var catalogPath string
	var format string
	var seed int64
	var sampleSize int

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Score a CSV or Excel file and print the quality report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(catalogPath)
			if err != nil {
				return err
			}

			ds, err := excel.NewDataReader(args[0]).Read()
			if err != nil {
				return err
			}

			sampling := inference.DefaultSampling()
			sampling.Seed = seed
			if sampleSize > 0 {
				sampling.Size = sampleSize
			}

			analyzer := app.NewAnalyzer(cat, quality.DefaultWeights(), sampling)
			report, err := analyzer.Analyze(context.Background(), ds)
			if err != nil {
				return err
			}

			return printReport(report, format)
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "path to a rule catalog JSON file (default: embedded catalog)")
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or markdown")
	cmd.Flags().Int64Var(&seed, "seed", 42, "sampling seed")
	cmd.Flags().IntVar(&sampleSize, "sample-size", 0, "override the type inference sample size")
	return cmd
}

func newCleanCmd() *cobra.Command {
	var aggressive bool
	var output string

	cmd := &cobra.Command{
		Use:   "clean [file]",
		Short: "Run the auto-clean pipeline and write the cleaned data as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := excel.NewDataReader(args[0]).Read()
			if err != nil {
				return err
			}

			c := cleaner.New(ds).AutoClean(aggressive)
			cleaned, err := c.Result()
			if err != nil {
				return err
			}

			if output != "" {
				if err := writeCSV(output, cleaned); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "cleaned data written to %s\n", output)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(c.CleaningReport())
		},
	}

	cmd.Flags().BoolVar(&aggressive, "aggressive", false, "also drop half-empty and constant columns")
	cmd.Flags().StringVarP(&output, "output", "o", "", "path for the cleaned CSV file")
	return cmd
}

func newCatalogCmd() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the active rule catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(catalogPath)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cat)
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "path to a rule catalog JSON file (default: embedded catalog)")
	return cmd
}

func newGenerateCmd() *cobra.Command {
	var rows int
	var seed int64
	var clean bool
	var output string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic customer dataset with injected quality defects",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := testkit.DefaultCustomerConfig()
			if clean {
				config = testkit.CleanCustomerConfig()
			}
			config.RowCount = rows
			config.Seed = seed

			ds, err := testkit.NewCustomerDataGenerator(config).Generate()
			if err != nil {
				return err
			}
			if err := writeCSV(output, ds); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", ds.RowCount(), output)
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 200, "number of base rows to generate")
	cmd.Flags().Int64Var(&seed, "seed", 42, "generation seed")
	cmd.Flags().BoolVar(&clean, "clean", false, "generate without injected defects")
	cmd.Flags().StringVarP(&output, "output", "o", "customers.csv", "output CSV path")
	return cmd
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path != "" {
		return catalog.Load(path)
	}
	return catalog.Default()
}

func printReport(report *quality.Report, format string) error {
	switch format {
	case "markdown":
		fmt.Print(export.Markdown(report))
		return nil
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	default:
		return fmt.Errorf("unknown format %q (use json or markdown)", format)
	}
}

func writeCSV(path string, ds *dataset.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(ds.ColumnNames()); err != nil {
		return err
	}
	columns := ds.Columns()
	for i := 0; i < ds.RowCount(); i++ {
		record := make([]string, len(columns))
		for j, col := range columns {
			if !col.Values[i].Absent {
				record[j] = col.Values[i].Raw
			}
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
