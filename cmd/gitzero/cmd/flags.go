package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

type flagsT struct {
	mine struct {
		Bits      int
		Workers   int
		BatchSize int
		Timeout   time.Duration
		DryRun    bool
	}
	repo struct {
		Path string
		Rev  string
	}
	root struct {
		logLevel string
		cpuProf  bool
	}
}

var params = flagsT{}

func addBitsFlag(cmd *cobra.Command) string {
	const bits = "bits"
	cmd.Flags().IntVarP(&params.mine.Bits, bits, "b", 16,
		"Requested number of leading zero bits in the commit id")
	return bits
}

func addWorkersFlag(cmd *cobra.Command) string {
	const workers = "workers"
	cmd.Flags().IntVar(&params.mine.Workers, workers, 0,
		"Number of parallel search workers (0 means all logical CPUs)")
	return workers
}

func addBatchSizeFlag(cmd *cobra.Command) string {
	const batchSize = "batch-size"
	cmd.Flags().IntVar(&params.mine.BatchSize, batchSize, 0,
		"Attempts per worker between cancellation checks (0 means the built-in default)")
	return batchSize
}

func addTimeoutFlag(cmd *cobra.Command) string {
	const timeout = "timeout"
	cmd.Flags().DurationVar(&params.mine.Timeout, timeout, 0,
		"Give up after this duration (0 means no limit)")
	return timeout
}

func addDryRunFlag(cmd *cobra.Command) string {
	const dryRun = "dry-run"
	cmd.Flags().BoolVar(&params.mine.DryRun, dryRun, false,
		"Search only: do not write the object or move the branch")
	return dryRun
}

func addRepoFlag(cmd *cobra.Command) string {
	const repo = "repo"
	cmd.Flags().StringVar(&params.repo.Path, repo, ".",
		"Path inside the git repository to operate on")
	return repo
}

func addRevFlag(cmd *cobra.Command) string {
	const rev = "rev"
	cmd.Flags().StringVar(&params.repo.Rev, rev, "HEAD",
		"Revision of the commit to work on")
	return rev
}
