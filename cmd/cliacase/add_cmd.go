package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seqops/cliacase/internal/caselist"
	"github.com/seqops/cliacase/internal/logging"
	"github.com/seqops/cliacase/internal/runname"
	"github.com/seqops/cliacase/internal/samplekey"
)

var (
	ocpMode bool
	dryRun  bool
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <run_directory> <case_list.csv>",
		Short: "Append a new case record for a sequencing run",
		Long: `Append one new record to the case-list CSV for the given run.

The record is "case_number,sample_1,...,sample_n,run_name". The case
number continues the sequence found on the last line of the file. A
backup named ".<file>.bak" is written next to the case list before it
is modified; each run overwrites the previous backup.`,
		Args: cobra.ExactArgs(2),
		RunE: runAdd,
	}

	cmd.Flags().BoolVar(&ocpMode, "ocp", false, "derive samples with the OCP cohort rule instead of the MSN prefix")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the new record without touching the case list")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	runDir, caseListPath := args[0], args[1]

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Close()

	if !dryRun {
		bakPath, err := caselist.Backup(caseListPath)
		if err != nil {
			return fmt.Errorf("failed to back up case list: %w", err)
		}
		logger.Debug("add", "backup written", logging.F("path", bakPath))
	}

	name, matched := runname.Extract(runDir)
	if !matched {
		logger.Warn("add", "atypical run name, using full dirname as run name",
			logging.F("run_dir", runDir))
	}

	if ocpMode {
		logger.Info("add", "OCP cohort sample derivation selected")
	}

	samples, err := samplekey.Collect(runDir, ocpMode, cfg.SampleOptions())
	if err != nil {
		return fmt.Errorf("failed to collect sample identifiers: %w", err)
	}
	if len(samples) == 0 {
		return fmt.Errorf("no sample identifiers found for run %s; case list not modified", runDir)
	}
	logger.Debug("add", "samples collected", logging.F("count", len(samples)))

	nextCase, err := caselist.NextCaseNumber(caseListPath)
	if err != nil {
		return err
	}

	record := caselist.Record(nextCase, samples, name)

	if dryRun {
		fmt.Printf("%s\n%s\n", warnStyle.Render("Dry run, case list not modified. Would add:"), record)
		return nil
	}

	fmt.Printf("%s\n%s\n", successStyle.Render("Adding new entry to case list file:"), record)
	if err := caselist.Append(caseListPath, record); err != nil {
		return err
	}

	logger.Info("add", "case record appended",
		logging.F("case", nextCase),
		logging.F("run", name),
		logging.F("samples", len(samples)))
	return nil
}
