package tracefit

import (
	"fmt"
	"io"
)

// Report writers print the fitted shape parameters in the layout
// consumed by template-generation tooling: one figure of merit per
// line, four significant digits, scientific notation.

// WriteTESReport prints TES shape parameters together with the
// baseline current and the peak-current-over-energy ratio obtained
// from the trace source.
func WriteTESReport(w io.Writer, title string, res *Result, i0, peakOverE float64) {
	if title == "" {
		title = "Trace"
	}
	fmt.Fprintf(w, "# %s shape parameters (to generate templates)\n", title)
	fmt.Fprintf(w, "I0\t\t%.4e microampere\n", i0)
	fmt.Fprintf(w, "IversusE\t%.4e microampere/eV\n", peakOverE)
	fmt.Fprintf(w, "riseTime\t%.4e us\n", res.RiseTime())
	fmt.Fprintf(w, "fallTime\t%.4e us\n", res.FallTime())
	fmt.Fprintf(w, "Offset  \t%.4e us\n", res.Offset())
}

// WriteFETReport prints FET shape parameters. A zero recovery rate has
// no finite reciprocal; its recovery time is reported as "none".
func WriteFETReport(w io.Writer, title string, res *Result) {
	if title == "" {
		title = "Trace"
	}
	fmt.Fprintf(w, "# %s shape parameters (to generate templates)\n", title)
	fmt.Fprintf(w, "decayRate   \t%.4e/us => decayTime\t%.4e us\n",
		res.DecayRate(), 1/res.DecayRate())
	if res.RecoveryRate() == 0 {
		fmt.Fprintf(w, "recoveryRate\t%.4e/us => recoveryTime\tnone\n", res.RecoveryRate())
	} else {
		fmt.Fprintf(w, "recoveryRate\t%.4e/us => recoveryTime\t%.4e us\n",
			res.RecoveryRate(), 1/res.RecoveryRate())
	}
	fmt.Fprintf(w, "Offset      \t%.4e us\n", res.Offset())
}
