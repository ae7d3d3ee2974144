package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// configKeys maps config file keys to their fields.
var configKeys = map[string]func(*CLIConfig) *string{
	"api_url":     func(c *CLIConfig) *string { return &c.APIURL },
	"app_token":   func(c *CLIConfig) *string { return &c.AppToken },
	"export_dir":  func(c *CLIConfig) *string { return &c.ExportDir },
	"db_path":     func(c *CLIConfig) *string { return &c.DBPath },
	"species_url": func(c *CLIConfig) *string { return &c.SpeciesURL },
}

func configKeyNames() []string {
	names := make([]string, 0, len(configKeys))
	for k := range configKeys {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
	}
	cmd.AddCommand(newConfigShowCmd(), newConfigSetCmd())
	return cmd
}

type effectiveConfig struct {
	APIURL     string `json:"api_url"`
	AppToken   string `json:"app_token"`
	ExportDir  string `json:"export_dir"`
	DBPath     string `json:"db_path"`
	SpeciesURL string `json:"species_url"`
	File       string `json:"file"`
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}
			eff := effectiveConfig{
				APIURL:     getAPIURL(),
				AppToken:   maskToken(getAppToken()),
				ExportDir:  getExportDir(),
				DBPath:     getDBPath(),
				SpeciesURL: getSpeciesURL(),
				File:       path,
			}
			if eff.DBPath == "" {
				eff.DBPath = "(default)"
			}

			out := cmd.OutOrStdout()
			if isJSON() {
				return printJSON(out, eff)
			}
			fmt.Fprintf(out, "Config file:  %s\n", eff.File)
			fmt.Fprintf(out, "API URL:      %s\n", eff.APIURL)
			fmt.Fprintf(out, "App token:    %s\n", eff.AppToken)
			fmt.Fprintf(out, "Export dir:   %s\n", eff.ExportDir)
			fmt.Fprintf(out, "Database:     %s\n", eff.DBPath)
			fmt.Fprintf(out, "Species URL:  %s\n", eff.SpeciesURL)
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a setting in the config file",
		Long:  "Store a setting in the config file. Keys: " + strings.Join(configKeyNames(), ", ") + ".",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, ok := configKeys[args[0]]
			if !ok {
				return fmt.Errorf("unknown key %q (%s)", args[0], strings.Join(configKeyNames(), "|"))
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			*field(&cfg) = args[1]
			if err := saveConfig(cfg); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Set %s.\n", args[0])
			return nil
		},
	}
}

// maskToken hides all but the last four characters of a token.
func maskToken(s string) string {
	if s == "" {
		return "(none)"
	}
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}
