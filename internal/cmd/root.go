package cmd

import (
	"strings"

	"github.com/Iron-Ham/oxdebate/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is stamped at build time with -ldflags "-X ...cmd.Version=...".
var Version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "oxdebate",
	Short: "Generate an Oxford-style debate as six MP3 files",
	Long: `oxdebate writes an Oxford-style debate on a motion with a hosted
language model, then voices each of the six speeches with a text-to-speech
API: an opening, a rebuttal and a closing for each side.

Run without a subcommand to generate a debate on the default motion.`,
	Args:          cobra.NoArgs,
	RunE:          runGenerate,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Version = Version

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/oxdebate/config.yaml or ./config/config.yaml)")

	addGenerateFlags(rootCmd)
}

func initConfig() {
	// .env is optional; values already in the environment win
	_ = godotenv.Load()

	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		for _, p := range config.SearchPaths() {
			viper.AddConfigPath(p)
		}
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("OXDEBATE")
	// Replace dots with underscores for nested keys in env vars
	// e.g., OXDEBATE_LLM_MODEL for llm.model
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
