package output

import (
	"fmt"
	"io"

	"github.com/finbook/taxengine/internal/calculation"
	"github.com/finbook/taxengine/internal/domain"
)

// ReportWriter renders the tax detail tree of a completed analysis: the
// allowance lines, each stream total with its indented leaves, the overall
// total and the reconciliation against tax already paid.
type ReportWriter struct {
	W io.Writer
}

var streamOrder = []domain.Category{
	domain.CatTaxDueSalary,
	domain.CatTaxDueRental,
	domain.CatTaxDueInterest,
	domain.CatTaxDueDividend,
	domain.CatTaxDueTaxableGains,
	domain.CatTaxDueCapitalGains,
}

// Write renders the report. The analysis must be TAXED; anything earlier
// produces a short notice instead of a partial tree.
func (rw *ReportWriter) Write(a *calculation.Analysis) error {
	if a.State() != calculation.StateTaxed {
		_, err := fmt.Fprintf(rw.W, "no tax computation available (state %s)\n", a.State())
		return err
	}

	buckets := a.Buckets()
	fmt.Fprintf(rw.W, "TAX COMPUTATION\n")
	fmt.Fprintf(rw.W, "===============\n")

	if b := buckets.Lookup(domain.CatOriginalAllowance); b != nil {
		fmt.Fprintf(rw.W, "Allowance:          %s\n", FormatCurrency(b.Amount))
	}
	if b := buckets.Lookup(domain.CatAdjustedAllowance); b != nil && a.HasReducedAllow {
		fmt.Fprintf(rw.W, "Adjusted allowance: %s\n", FormatCurrency(b.Amount))
	}
	if a.ComputedAge > 0 {
		fmt.Fprintf(rw.W, "Age at year end:    %d\n", a.ComputedAge)
	}
	fmt.Fprintln(rw.W)

	for _, stream := range streamOrder {
		tb := buckets.Lookup(stream)
		if tb == nil {
			continue
		}
		fmt.Fprintf(rw.W, "%-36s %12s  tax %12s\n", string(stream), FormatCurrency(tb.Amount), FormatCurrency(tb.Taxation))
		for _, c := range buckets.Categories() {
			leaf := buckets.Lookup(c)
			if leaf == nil || leaf.Parent != tb {
				continue
			}
			if leaf.HasRate {
				fmt.Fprintf(rw.W, "  %-34s %12s  at %s = %s\n",
					string(c), FormatCurrency(leaf.Amount), FormatRate(leaf.Rate), FormatCurrency(leaf.Taxation))
			} else {
				fmt.Fprintf(rw.W, "  %-34s %12s\n", string(c), FormatCurrency(leaf.Amount))
			}
		}
	}

	fmt.Fprintln(rw.W)
	fmt.Fprintf(rw.W, "Total tax due: %s\n", FormatCurrency(a.TotalTaxDue))
	if b := buckets.Lookup(domain.CatTaxProfit); b != nil && b.Amount.IsPositive() {
		fmt.Fprintf(rw.W, "Overpaid:      %s\n", FormatCurrency(b.Amount))
	}
	if b := buckets.Lookup(domain.CatTaxLoss); b != nil && b.Amount.IsPositive() {
		fmt.Fprintf(rw.W, "Outstanding:   %s\n", FormatCurrency(b.Amount))
	}
	if a.HasGainsSlices {
		fmt.Fprintf(rw.W, "Top-slicing relief applied to chargeable gains.\n")
	}
	return nil
}
