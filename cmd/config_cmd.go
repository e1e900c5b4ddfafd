package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		shown := *cfg
		shown.ScrapingBee.Key = redact(shown.ScrapingBee.Key)
		shown.Store.DatabaseURL = redactDSN(shown.Store.DatabaseURL)

		out, err := yaml.Marshal(shown)
		if err != nil {
			return eris.Wrap(err, "marshal config")
		}
		_, err = os.Stdout.Write(out)
		return err
	},
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + "****"
}

// redactDSN hides credentials embedded in a connection string while keeping
// local file paths readable.
func redactDSN(dsn string) string {
	if dsn == "" {
		return ""
	}
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if len(dsn) > len(prefix) && dsn[:len(prefix)] == prefix {
			return prefix + "****"
		}
	}
	return dsn
}

func init() {
	rootCmd.AddCommand(configCmd)
}
