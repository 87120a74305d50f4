package report

import (
	"fmt"
	"io"
)

// RenderConsole writes the report as a plain-text summary, the final output
// of a non-serving run.
func RenderConsole(w io.Writer, rep *Report) {
	fmt.Fprintln(w, "============================================================")
	fmt.Fprintln(w, "  EVALUATION RESULTS")
	fmt.Fprintln(w, "============================================================")
	for _, row := range rep.Table {
		fmt.Fprintf(w, "  %-20s %s\n", row.Metric+":", row.Value)
	}

	fmt.Fprintln(w, "------------------------------------------------------------")
	fmt.Fprintln(w, "  P&L COMPONENTS (% of premium invested)")
	fmt.Fprintf(w, "  %-20s %.2f%%\n", "Option Payoff:", rep.Components.PayoffPct)
	fmt.Fprintf(w, "  %-20s %.2f%%\n", "Hedging P&L:", rep.Components.HedgingPct)
	fmt.Fprintf(w, "  %-20s %.2f%%\n", "Net Return:", rep.Components.NetPct)

	if len(rep.Expiries) > 0 {
		fmt.Fprintln(w, "------------------------------------------------------------")
		fmt.Fprintln(w, "  BY DAYS TO EXPIRY")
		fmt.Fprintf(w, "  %8s %10s %12s %10s\n", "days", "episodes", "mean return", "win rate")
		for _, g := range rep.Expiries {
			fmt.Fprintf(w, "  %8d %10d %11.2f%% %9.2f%%\n", g.Days, g.Episodes, g.MeanReturnPct, g.WinRatePct)
		}
	}

	fmt.Fprintln(w, "------------------------------------------------------------")
	fmt.Fprintln(w, "  PERFORMANCE VS OPTIMAL")
	fmt.Fprintf(w, "  %-20s %.2f%%\n", "Model Mean:", rep.Summary.MeanReturn*100)
	fmt.Fprintf(w, "  %-20s %.2f%%\n", "Optimal Max Mean:", rep.Summary.MeanOptimalMax*100)
	fmt.Fprintf(w, "  %-20s %.2f%%\n", "Optimal Min Mean:", rep.Summary.MeanOptimalMin*100)
	if rep.Summary.CaptureRatio != nil {
		fmt.Fprintf(w, "  Model captures %.2f%% of the optimal-max return\n", *rep.Summary.CaptureRatio)
	}
	fmt.Fprintln(w, "============================================================")
}
