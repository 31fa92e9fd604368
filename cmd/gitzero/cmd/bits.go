package cmd

import (
	"context"

	"github.com/oneconcern/gitzero/pkg/gitrepo"
	"github.com/spf13/cobra"
)

// bitsCmd reports the proof-of-work already carried by a commit
var bitsCmd = &cobra.Command{
	Use:   "bits [revision]",
	Short: "Show the leading zero bits of a commit id",
	Long: `Prints the object id of the given revision (HEAD by default) and the
number of leading zero bits it carries.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rev := "HEAD"
		if len(args) == 1 {
			rev = args[0]
		}

		repo, err := gitrepo.Open(params.repo.Path)
		if err != nil {
			wrapFatalln("open repository", err)
			return
		}
		id, err := repo.ResolveCommit(context.Background(), rev)
		if err != nil {
			wrapFatalln("resolve "+rev, err)
			return
		}
		infoLogger.Printf("%s %d", id, id.LeadingZeroBits())
	},
}

func init() {
	rootCmd.AddCommand(bitsCmd)
	addRepoFlag(bitsCmd)
}
