package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Firemoon777/Vela-Vocabulary/vocabstore"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configFlag   = "config"
	logLevelFlag = "log-level"
	inputFlag    = "input"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "vocabtrie",
	Short: "Build and inspect prefix trie vocabularies",
	Long: `vocabtrie builds the binary prefix trie vocabulary used for word lookup
on constrained devices, and inspects existing vocabulary files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		_ = viper.BindPFlag(logLevelFlag, cmd.Flags().Lookup(logLevelFlag))
		logger.New(viper.GetString(logLevelFlag))
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.SetOut(os.Stdout)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, configFlag, "c", "", "config file (yaml or json)")
	rootCmd.PersistentFlags().String(logLevelFlag, "INFO", "log level (DEBUG, INFO, WARN, ERROR, NOOP)")

	rootCmd.AddCommand(
		buildCmd,
		lookupCmd,
		dumpCmd,
	)
}

// initConfig reads in the config file and environment variables if set.
func initConfig() {
	viper.SetEnvPrefix("VOCABTRIE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile == "" {
		return
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "could not read config:", err)
		os.Exit(1)
	}
}

func newStore() *vocabstore.Store {
	return vocabstore.NewStore(logger.Sugar.WithServiceName("vocabtrie"), afero.NewOsFs())
}

func main() {
	err := rootCmd.Execute()
	logger.OnExit()
	if err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
