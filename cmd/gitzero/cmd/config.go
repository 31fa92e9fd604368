package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// CLIConfig describes the CLI configuration persisted in gitzero.yaml.
type CLIConfig struct {
	// need to keep names of fields the same as the serialized names..
	Workers  int    `json:"workers" yaml:"workers"`   // Default worker count (0 means all logical CPUs)
	LogLevel string `json:"logLevel" yaml:"logLevel"` // Default logging level
}

func newConfig() (*CLIConfig, error) {
	var config CLIConfig
	err := viper.Unmarshal(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *CLIConfig) setMinerParams(flags *flagsT) {
	if flags.mine.Workers == 0 {
		flags.mine.Workers = c.Workers
	}
	if flags.root.logLevel == "" {
		flags.root.logLevel = c.LogLevel
	}
}

// configCmd represents the config related commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Commands to manage the gitzero config",
	Long: `Commands to manage the gitzero CLI config: the common set of flags that
do not change across runs, analogous to "git config ...".`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	Run: func(cmd *cobra.Command, args []string) {
		out, err := yaml.Marshal(config)
		if err != nil {
			wrapFatalln("serialize config", err)
			return
		}
		logStdOut("%s", out)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
}
