package main

import (
	"fmt"

	"github.com/fwojciec/newsgenie"
)

// Run executes the summarize command.
func (c *SummarizeCmd) Run(deps *Dependencies) error {
	if deps.Summarizer == nil {
		fmt.Fprintln(deps.Stderr, "Set OPENAI_API_KEY or GEMINI_API_KEY to enable summaries.")
		return newsgenie.Errorf(newsgenie.EINVALID, "no summarization provider configured")
	}

	summary, err := deps.Summarizer.SummarizeArticle(deps.Ctx, newsgenie.SummarizeRequest{
		URL:     c.URL,
		Content: c.Content,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsgenie.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, summary.Summary)
	return nil
}
