package cmd

import (
	"fmt"
	"log"
	"os"
	"runtime/pprof"

	"github.com/spf13/viper"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gitzero",
	Short: "Gitzero rewrites commits so their ids carry leading zero bits",
	Long: `Gitzero searches for a nonce header that gives a git commit an object id
with a caller-specified number of leading zero bits, a proof-of-work over
the commit's store representation.

The winning commit is written back as a regular loose object and the
current branch is soft-reset onto it, so any standard git reader accepts
the result.
`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if params.root.cpuProf {
			f, err := os.Create("cpu.prof")
			if err != nil {
				log.Fatal(err)
			}
			_ = pprof.StartCPUProfile(f)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if params.root.cpuProf {
			pprof.StopCPUProfile()
		}
	},
}

var config *CLIConfig

// used to patch over calls to os.Exit() during test
var logFatalln = log.Fatalln
var logFatalf = log.Fatalf
var osExit = os.Exit

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)

	fls := rootCmd.PersistentFlags()
	fls.StringVar(&params.root.logLevel, "loglevel", "", "The logging level (debug, info, none)")
	fls.BoolVar(&params.root.cpuProf, "cpuprof", false, "Toggle runtime profiling")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("workers", 0)
	viper.SetDefault("logLevel", "info")
	if os.Getenv("GITZERO_CONFIG") != "" {
		viper.SetConfigFile(os.Getenv("GITZERO_CONFIG"))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.gitzero")
		viper.AddConfigPath("/etc/gitzero")
		viper.SetConfigName("gitzero")
	}

	viper.AutomaticEnv() // read in environment variables that match
	// If a config file is found, read it in.
	_ = viper.ReadInConfig()

	var err error
	config, err = newConfig()
	if err != nil {
		logFatalln(err)
	}
	config.setMinerParams(&params)
}
