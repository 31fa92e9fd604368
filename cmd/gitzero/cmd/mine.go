package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/docker/go-units"
	"github.com/oneconcern/gitzero/pkg/dlogger"
	"github.com/oneconcern/gitzero/pkg/errors"
	"github.com/oneconcern/gitzero/pkg/gitobj"
	"github.com/oneconcern/gitzero/pkg/gitrepo"
	"github.com/oneconcern/gitzero/pkg/mine"
	"github.com/oneconcern/gitzero/pkg/mine/status"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// mineCmd represents the mine command
var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Rewrite a commit so its id meets a leading-zero-bit target",
	Long: `Searches for a nonce header making the selected commit's id carry at
least the requested number of leading zero bits, then writes the winning
object into the repository and soft-resets the current branch onto it.

The search runs one striding worker per logical CPU unless configured
otherwise. Interrupting (SIGINT/SIGTERM) or exceeding --timeout stops the
search without touching the repository.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger, err := dlogger.GetLogger(params.root.logLevel)
		if err != nil {
			wrapFatalln("get logger", err)
			return
		}

		// rejected up front: a long search must not complete before we
		// refuse to write its result
		if params.repo.Rev != "HEAD" && !params.mine.DryRun {
			wrapFatalWithCodef(1, "only HEAD can be rewritten in place; use --dry-run for %s", params.repo.Rev)
			return
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if params.mine.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, params.mine.Timeout)
			defer cancel()
		}

		repo, err := gitrepo.Open(params.repo.Path, gitrepo.Logger(logger))
		if err != nil {
			wrapFatalln("open repository", err)
			return
		}

		id, err := repo.ResolveCommit(ctx, params.repo.Rev)
		if err != nil {
			wrapFatalln("resolve "+params.repo.Rev, err)
			return
		}
		if id.Matches(params.mine.Bits) {
			infoLogger.Printf("%s already has %d leading zero bits", id, id.LeadingZeroBits())
			return
		}

		body, err := repo.ReadCommit(ctx, id)
		if err != nil {
			wrapFatalln("read commit", err)
			return
		}
		commit, err := gitobj.ParseCommit(body)
		if err != nil {
			wrapFatalln("parse commit", err)
			return
		}
		tpl, err := gitobj.NewTemplate(commit)
		if err != nil {
			wrapFatalln("build candidate template", err)
			return
		}

		opts := []mine.Option{
			mine.Logger(logger),
			mine.BatchSize(params.mine.BatchSize),
		}
		if params.mine.Workers > 0 {
			opts = append(opts, mine.Workers(params.mine.Workers))
		}
		miner := mine.New(opts...)

		res, err := miner.Search(ctx, tpl, params.mine.Bits)
		if errors.Is(err, status.ErrCancelled) {
			wrapFatalWithCodef(2, "search cancelled after %d attempts", miner.Attempts())
			return
		}
		if err != nil {
			wrapFatalln("search", err)
			return
		}

		obj, newID, err := mine.Apply(tpl, res)
		if err != nil {
			wrapFatalln("apply result", err)
			return
		}
		logger.Info("final object",
			zap.Stringer("id", newID),
			zap.String("size", units.HumanSize(float64(len(obj)))),
			zap.Uint64("attempts", miner.Attempts()),
		)

		if params.mine.DryRun {
			infoLogger.Printf("%s %d %d (dry-run)", newID, res.Bits, res.Nonce)
			return
		}
		if err := repo.WriteCommit(ctx, obj, newID); err != nil {
			wrapFatalln("write object", err)
			return
		}
		if err := repo.ResetSoft(ctx, newID); err != nil {
			wrapFatalln("reset branch", err)
			return
		}
		infoLogger.Printf("%s %d %d", newID, res.Bits, res.Nonce)
	},
}

func init() {
	rootCmd.AddCommand(mineCmd)

	addBitsFlag(mineCmd)
	addWorkersFlag(mineCmd)
	addBatchSizeFlag(mineCmd)
	addTimeoutFlag(mineCmd)
	addDryRunFlag(mineCmd)
	addRepoFlag(mineCmd)
	addRevFlag(mineCmd)
}
