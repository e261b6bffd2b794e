package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/Iron-Ham/oxdebate/internal/errors"
	"github.com/Iron-Ham/oxdebate/internal/orchestrator"
	"github.com/Iron-Ham/oxdebate/internal/tui/styles"
)

// PrintError writes a styled error line to w, followed by any remediation
// hint and a note when a re-run is likely to succeed.
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, styles.ErrorMsg.Render("Error:")+" "+err.Error())
	if hint := errors.HintFor(err); hint != "" {
		fmt.Fprintln(w, styles.Muted.Render("Hint: "+hint))
	}
	if errors.IsRetryable(err) {
		fmt.Fprintln(w, styles.Muted.Render("This looks transient; running the command again may succeed."))
	}
}

func printWarning(w io.Writer, msg string) {
	fmt.Fprintln(w, styles.WarningMsg.Render("Warning:")+" "+msg)
}

func printSummary(w io.Writer, result *orchestrator.Result, outputDir string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.SuccessMsg.Render(fmt.Sprintf("Debate generated in %s", result.Duration.Round(100*time.Millisecond))))
	fmt.Fprintln(w, styles.Muted.Render("Motion: "+result.Motion))
	fmt.Fprintln(w, styles.Muted.Render("Output directory: "+outputDir))
	for _, f := range result.Files {
		fmt.Fprintln(w, "  "+f)
	}
}
