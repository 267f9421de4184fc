package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seqops/cliacase/internal/caselist"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <case_list.csv>",
		Short: "Validate the case-number sequence of a case list",
		Long: `Walk the whole case list and report records whose case numbers are
malformed, out of sequence, or switch project codes. Read-only: the
file is never modified.`,
		Args: cobra.ExactArgs(1),
		RunE: runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]

	issues, err := caselist.Check(path)
	if err != nil {
		return err
	}

	if len(issues) == 0 {
		fmt.Println(successStyle.Render("OK:"), path)
		return nil
	}

	for _, issue := range issues {
		fmt.Println(warnStyle.Render(issue.String()))
	}
	return fmt.Errorf("%d problem(s) found in %s", len(issues), path)
}
