package fuzztests

import (
	"context"
	"testing"
	"time"

	"bwqlint/internal/diag"
	"bwqlint/internal/driver"
)

// lintTimeout is the maximum time allowed for linting a single input.
// If linting takes longer, it indicates a potential infinite loop.
const lintTimeout = 5 * time.Second

// FuzzLintPipeline runs the whole pipeline and checks the fatal contract:
// a failed lex or parse yields exactly one diagnostic and no tree.
func FuzzLintPipeline(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		done := make(chan *driver.Report, 1)
		go func() {
			done <- driver.Lint(context.Background(), "fuzz.bwq", string(input), driver.Options{})
		}()

		var rep *driver.Report
		select {
		case rep = <-done:
		case <-time.After(lintTimeout):
			t.Fatalf("lint hang on input %q", input)
		}

		if rep.Fatal != nil {
			if rep.Root != nil {
				t.Fatalf("fatal %s but a tree was built", rep.Fatal.Code.ID())
			}
			if len(rep.Diagnostics) != 1 {
				t.Fatalf("fatal run reported %d diagnostics", len(rep.Diagnostics))
			}
			return
		}
		if rep.Root == nil {
			t.Fatalf("no tree and no fatal diagnostic")
		}
		for _, d := range rep.Diagnostics {
			if d.Code == diag.IntRulePanic {
				t.Fatalf("rule %s panicked: %s", d.Rule, d.Message)
			}
		}
	})
}
