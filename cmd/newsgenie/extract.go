package main

import (
	"fmt"

	"github.com/fwojciec/newsgenie"
	"github.com/fwojciec/newsgenie/digest"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	deps.Digest.Concurrency = c.Concurrency

	results := deps.Digest.ExtractAll(deps.Ctx, c.URLs, func(e digest.ProgressEvent) {
		if e.Type == digest.ProgressFailed {
			fmt.Fprintf(deps.Stderr, "[%d/%d] failed %s: %s\n", e.Completed, e.Total, e.URL, newsgenie.ErrorMessage(e.Error))
		}
	})

	var failed int
	for _, r := range results {
		fmt.Fprintf(deps.Stdout, "== %s\n", r.URL)
		switch {
		case r.Err != nil:
			failed++
			fmt.Fprintf(deps.Stdout, "error: %s\n\n", newsgenie.ErrorMessage(r.Err))
		case r.Text == "":
			fmt.Fprint(deps.Stdout, "(no content)\n\n")
		default:
			fmt.Fprintf(deps.Stdout, "%s\n\n", r.Text)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d URLs failed", failed, len(results))
	}
	return nil
}
