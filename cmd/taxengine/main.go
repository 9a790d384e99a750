package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/finbook/taxengine/internal/calculation"
	"github.com/finbook/taxengine/internal/config"
	"github.com/finbook/taxengine/internal/domain"
	"github.com/finbook/taxengine/internal/output"
)

var (
	inputFile string
	verbose   bool
)

func main() {
	root := &cobra.Command{
		Use:          "taxengine",
		Short:        "Personal tax banding engine",
		SilenceUsage: true,
	}

	calculate := &cobra.Command{
		Use:   "calculate",
		Short: "Run a full valuation and tax pass over an analysis input file",
		RunE:  runCalculate,
	}
	calculate.Flags().StringVarP(&inputFile, "input", "i", "", "analysis input YAML file (required)")
	_ = calculate.MarkFlagRequired("input")
	calculate.Flags().BoolVarP(&verbose, "verbose", "v", false, "log engine detail to stderr")
	root.AddCommand(calculate)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCalculate(cmd *cobra.Command, args []string) error {
	parser := config.NewInputParser()
	input, err := parser.LoadFromFile(inputFile)
	if err != nil {
		return err
	}

	analysis, err := buildAnalysis(input)
	if err != nil {
		return err
	}
	if verbose {
		analysis.SetLogger(calculation.WriterLogger{W: cmd.ErrOrStderr()})
	}

	date := input.ValuationDate
	if date.IsZero() {
		if input.TaxYear != nil {
			date = input.TaxYear.FiscalEnd()
		} else {
			date = time.Now().UTC()
		}
	}
	if err := analysis.ValueAssets(date); err != nil {
		return err
	}
	if err := analysis.CalculateTax(); err != nil {
		return err
	}

	rw := &output.ReportWriter{W: cmd.OutOrStdout()}
	return rw.Write(analysis)
}

func buildAnalysis(input *config.AnalysisInput) (*calculation.Analysis, error) {
	totals := domain.NewSummarySet()
	for _, t := range input.Totals {
		totals.Set(domain.Category(t.Category), t.Amount, t.PrevAmount)
	}

	analysis := calculation.NewAnalysis(input.TaxYear, input.BirthDate, totals)
	for _, e := range input.ChargeableEvents {
		ev, err := calculation.NewChargeableEvent(e.Date, e.Description, e.Amount, e.EmbeddedTaxCredit, e.QualifyingYears)
		if err != nil {
			return nil, err
		}
		analysis.Register().Add(ev)
	}
	for _, asset := range input.Assets {
		analysis.AddHolding(asset)
	}
	return analysis, nil
}
