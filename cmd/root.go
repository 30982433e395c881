package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "klare",
	Short: "KLARE method progression tracker",
	Long:  "Klare tracks your journey through the five phases of the KLARE method and tells you which modules are unlocked.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (default .klare.yaml)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides KLARE_DB env var)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".klare")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("KLARE")
	viper.AutomaticEnv()

	// Missing config file is fine; env vars and defaults still apply.
	_ = viper.ReadInConfig()
}

// resolveDBPath returns the database path from the --db flag, or empty to
// fall back to config and the default XDG path.
func resolveDBPath(cmd *cobra.Command) string {
	p, _ := cmd.Flags().GetString("db")
	return p
}
