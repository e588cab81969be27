package commands

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/contentapi/internal/constants"
	"github.com/fivetwenty-io/contentapi/pkg/contentapi"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

const apiKeyKey = "api-key"

// Config represents the CLI configuration. YAML keys match the flag names
// so viper resolves file values and flags under the same key.
type Config struct {
	API       string `json:"api,omitempty"        yaml:"api,omitempty"`
	APIKey    string `json:"api_key,omitempty"    yaml:"api-key,omitempty"`
	Output    string `json:"output,omitempty"     yaml:"output,omitempty"`
	Cache     string `json:"cache,omitempty"      yaml:"cache,omitempty"`
	NATSURL   string `json:"nats_url,omitempty"   yaml:"nats-url,omitempty"`
	RedisAddr string `json:"redis_addr,omitempty" yaml:"redis-addr,omitempty"`
	Retries   int    `json:"retries,omitempty"    yaml:"retries,omitempty"`
}

// configKey describes one settable configuration value.
type configKey struct {
	set   func(config *Config, value string) error
	unset func(config *Config)
}

var configKeys = map[string]configKey{
	"api": stringKey(func(c *Config) *string { return &c.API }),
	apiKeyKey: {
		set: func(c *Config, v string) error {
			if strings.TrimSpace(v) == "" {
				return constants.ErrEmptyAPIKey
			}

			c.APIKey = v

			return nil
		},
		unset: func(c *Config) { c.APIKey = "" },
	},
	"output": {
		set: func(c *Config, v string) error {
			if _, err := parseOutputFormat(v); err != nil {
				return err
			}

			c.Output = v

			return nil
		},
		unset: func(c *Config) { c.Output = "" },
	},
	"cache": {
		set: func(c *Config, v string) error {
			if _, err := contentapi.ParseCacheType(v); err != nil {
				return fmt.Errorf("%w: %q", constants.ErrInvalidCacheType, v)
			}

			c.Cache = v

			return nil
		},
		unset: func(c *Config) { c.Cache = "" },
	},
	"nats-url":   stringKey(func(c *Config) *string { return &c.NATSURL }),
	"redis-addr": stringKey(func(c *Config) *string { return &c.RedisAddr }),
	"retries": {
		set: func(c *Config, v string) error {
			retries, err := strconv.Atoi(v)
			if err != nil || retries < 0 {
				return fmt.Errorf("%w: %q", constants.ErrInvalidRetries, v)
			}

			c.Retries = retries

			return nil
		},
		unset: func(c *Config) { c.Retries = 0 },
	},
}

// stringKey is a configKey for a free-form string field.
func stringKey(field func(*Config) *string) configKey {
	return configKey{
		set: func(c *Config, v string) error {
			*field(c) = v

			return nil
		},
		unset: func(c *Config) { *field(c) = "" },
	}
}

func lookupConfigKey(key string) (configKey, error) {
	entry, ok := configKeys[key]
	if !ok {
		return configKey{}, fmt.Errorf("%w: %s (valid keys: %s)", constants.ErrUnknownConfigKey, key, strings.Join(configKeyNames(), ", "))
	}

	return entry, nil
}

func configKeyNames() []string {
	names := make([]string, 0, len(configKeys))
	for name := range configKeys {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage the content API CLI configuration stored in ~/.contentapi/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigSetKeyCommand())
	cmd.AddCommand(newConfigUnsetCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration after flags, environment and config file are merged",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.APIKey = maskSecret(config.APIKey)

			return render(cmd.OutOrStdout(), config, func(w io.Writer) error {
				return displayConfigTable(w, config)
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Valid keys: " + strings.Join(configKeyNames(), ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			entry, err := lookupConfigKey(key)
			if err != nil {
				return err
			}

			persister, err := newDefaultConfigPersister()
			if err != nil {
				return err
			}

			err = persister.Update(func(config *Config) error {
				return entry.set(config, value)
			})
			if err != nil {
				return err
			}

			if key == apiKeyKey {
				value = maskSecret(value)
			}

			return outputConfigUpdateResult(cmd.OutOrStdout(), "Set", key, value)
		},
	}
}

func newConfigSetKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-key [KEY]",
		Short: "Store the API key",
		Long:  "Store the API key. Without an argument the key is read from the terminal without echo.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var key string

			if len(args) == 1 {
				key = args[0]
			} else {
				var err error

				key, err = promptAPIKey(cmd.ErrOrStderr())
				if err != nil {
					return err
				}
			}

			persister, err := newDefaultConfigPersister()
			if err != nil {
				return err
			}

			err = persister.Update(func(config *Config) error {
				return configKeys[apiKeyKey].set(config, key)
			})
			if err != nil {
				return err
			}

			return outputConfigUpdateResult(cmd.OutOrStdout(), "Set", apiKeyKey, maskSecret(key))
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value from the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			entry, err := lookupConfigKey(key)
			if err != nil {
				return err
			}

			persister, err := newDefaultConfigPersister()
			if err != nil {
				return err
			}

			err = persister.Update(func(config *Config) error {
				entry.unset(config)

				return nil
			})
			if err != nil {
				return err
			}

			return outputConfigUpdateResult(cmd.OutOrStdout(), "Unset", key, "")
		},
	}
}

func newConfigClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear configuration",
		Long:  "Remove the config file and every value stored in it",
		RunE: func(cmd *cobra.Command, args []string) error {
			persister, err := newDefaultConfigPersister()
			if err != nil {
				return err
			}

			if err := persister.Remove(); err != nil {
				return err
			}

			return outputConfigUpdateResult(cmd.OutOrStdout(), "Cleared", "all configuration", "")
		},
	}
}

// loadConfig returns the effective configuration as viper resolves it.
func loadConfig() *Config {
	return &Config{
		API:       viper.GetString("api"),
		APIKey:    viper.GetString(apiKeyKey),
		Output:    viper.GetString("output"),
		Cache:     viper.GetString("cache"),
		NATSURL:   viper.GetString("nats-url"),
		RedisAddr: viper.GetString("redis-addr"),
		Retries:   viper.GetInt("retries"),
	}
}

func promptAPIKey(prompt io.Writer) (string, error) {
	fd := int(os.Stdin.Fd()) //nolint:gosec // file descriptors fit in int
	if !term.IsTerminal(fd) {
		return "", constants.ErrNotATerminal
	}

	_, _ = fmt.Fprint(prompt, "API key: ")

	key, err := term.ReadPassword(fd)

	_, _ = fmt.Fprintln(prompt)

	if err != nil {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}

	return strings.TrimSpace(string(key)), nil
}

func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}

	return constants.MaskedSecret
}

func displayConfigTable(w io.Writer, config *Config) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	_ = table.Append("API", formatConfigValue(config.API))
	_ = table.Append("API Key", formatConfigValue(config.APIKey))
	_ = table.Append("Output", formatConfigValue(config.Output))
	_ = table.Append("Cache", formatConfigValue(config.Cache))
	_ = table.Append("NATS URL", formatConfigValue(config.NATSURL))
	_ = table.Append("Redis Address", formatConfigValue(config.RedisAddr))
	_ = table.Append("Retries", strconv.Itoa(config.Retries))

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func formatConfigValue(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

func outputConfigUpdateResult(w io.Writer, action, key, value string) error {
	result := map[string]string{
		"action": action,
		"key":    key,
	}

	if value != "" {
		result["value"] = value
	}

	return render(w, result, func(w io.Writer) error {
		if value == "" {
			_, err := fmt.Fprintf(w, "%s %s\n", action, key)

			return err
		}

		_, err := fmt.Fprintf(w, "%s %s = %s\n", action, key, value)

		return err
	})
}
