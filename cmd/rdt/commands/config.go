package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fivetwenty-io/reddit-client/internal/constants"
	"github.com/fivetwenty-io/reddit-client/pkg/reddit"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration file.
type Config struct {
	Output         string                    `json:"output,omitempty"          yaml:"output,omitempty"`
	CurrentProfile string                    `json:"current_profile,omitempty" yaml:"current_profile,omitempty"`
	Profiles       map[string]*ProfileConfig `json:"profiles,omitempty"        yaml:"profiles,omitempty"`
	Cache          *reddit.CacheConfig       `json:"cache,omitempty"           yaml:"cache,omitempty"`
}

// ProfileConfig holds the app credentials and session of one Reddit account.
// Passwords are never stored.
type ProfileConfig struct {
	ClientID       string     `json:"client_id,omitempty"        yaml:"client_id,omitempty"`
	ClientSecret   string     `json:"client_secret,omitempty"    yaml:"client_secret,omitempty"`
	Username       string     `json:"username,omitempty"         yaml:"username,omitempty"`
	DeviceID       string     `json:"device_id,omitempty"        yaml:"device_id,omitempty"`
	UserAgent      string     `json:"user_agent,omitempty"       yaml:"user_agent,omitempty"`
	BaseURL        string     `json:"base_url,omitempty"         yaml:"base_url,omitempty"`
	TokenURL       string     `json:"token_url,omitempty"        yaml:"token_url,omitempty"`
	Token          string     `json:"token,omitempty"            yaml:"token,omitempty"`
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty" yaml:"token_expires_at,omitempty"`
	RefreshToken   string     `json:"refresh_token,omitempty"    yaml:"refresh_token,omitempty"`
	LastRefreshed  *time.Time `json:"last_refreshed,omitempty"   yaml:"last_refreshed,omitempty"`
}

// profileKeys are the settable per-profile keys.
var profileKeys = map[string]func(p *ProfileConfig, value string){
	"client_id":     func(p *ProfileConfig, v string) { p.ClientID = v },
	"client_secret": func(p *ProfileConfig, v string) { p.ClientSecret = v },
	"username":      func(p *ProfileConfig, v string) { p.Username = v },
	"device_id":     func(p *ProfileConfig, v string) { p.DeviceID = v },
	"user_agent":    func(p *ProfileConfig, v string) { p.UserAgent = v },
	"base_url":      func(p *ProfileConfig, v string) { p.BaseURL = v },
	"token_url":     func(p *ProfileConfig, v string) { p.TokenURL = v },
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage rdt configuration including profiles and settings",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the CLI configuration. Secrets and tokens are masked in table output.",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			switch format := outputFormat(); format {
			case OutputFormatJSON, OutputFormatYAML:
				return renderOutput(cmd.OutOrStdout(), format, config, nil, nil)
			default:
				return displayConfigTable(cmd.OutOrStdout(), config)
			}
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long: `Set a configuration value. Global keys: output, current_profile.
Profile keys (applied to the active profile): client_id, client_secret,
username, device_id, user_agent, base_url, token_url.`,
		Args: cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			err = setConfigValue(config, activeProfileName(config), args[0], args[1])
			if err != nil {
				return err
			}

			err = saveConfig(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value (global or from the active profile)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			err = setConfigValue(config, activeProfileName(config), args[0], "")
			if err != nil {
				return err
			}

			err = saveConfig(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", args[0])

			return nil
		},
	}
}

// setConfigValue sets a global key or a key of the named profile. An empty
// value clears it.
func setConfigValue(config *Config, profileName, key, value string) error {
	switch key {
	case "output":
		config.Output = value

		return nil
	case "current_profile":
		config.CurrentProfile = value

		return nil
	}

	setter, ok := profileKeys[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}

	setter(config.profile(profileName, true), value)

	return nil
}

// profile returns the named profile, creating it when create is set.
func (c *Config) profile(name string, create bool) *ProfileConfig {
	if c.Profiles == nil {
		c.Profiles = make(map[string]*ProfileConfig)
	}

	profile, ok := c.Profiles[name]
	if !ok && create {
		profile = &ProfileConfig{}
		c.Profiles[name] = profile
	}

	return profile
}

// activeProfileName resolves --profile, then RDT_PROFILE, then the configured
// current profile.
func activeProfileName(config *Config) string {
	if name := viper.GetString("profile"); name != "" {
		return name
	}

	if config.CurrentProfile != "" {
		return config.CurrentProfile
	}

	return DefaultProfile
}

// configFilePath returns the file the configuration is read from and saved to.
func configFilePath() (string, error) {
	if file := viper.ConfigFileUsed(); file != "" {
		return file, nil
	}

	if file := viper.GetString("config"); file != "" {
		return file, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".rdt", "config.yml"), nil
}

func loadConfig() (*Config, error) {
	path, err := configFilePath()
	if err != nil {
		return nil, err
	}

	return loadConfigFile(path)
}

func saveConfig(config *Config) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}

	return saveConfigFile(path, config)
}

// loadConfigFile reads the configuration at path. A missing file yields an
// empty configuration.
func loadConfigFile(path string) (*Config, error) {
	config := &Config{Profiles: make(map[string]*ProfileConfig)}

	// #nosec G304 -- path is the user's own config file
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if config.Profiles == nil {
		config.Profiles = make(map[string]*ProfileConfig)
	}

	return config, nil
}

func saveConfigFile(path string, config *Config) error {
	err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// displayConfigTable displays configuration in a table format.
func displayConfigTable(w io.Writer, config *Config) error {
	global := tablewriter.NewWriter(w)
	global.Header("Property", "Value")
	_ = global.Append([]string{"Output", formatValue(config.Output)})
	_ = global.Append([]string{"Current Profile", formatValue(config.CurrentProfile)})

	if config.Cache != nil {
		_ = global.Append([]string{"Cache", string(config.Cache.Type)})
	}

	_, _ = io.WriteString(w, "Global Configuration:\n")

	err := global.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	if len(config.Profiles) == 0 {
		_, _ = io.WriteString(w, "\nNo profiles configured. Use 'rdt login' to add one.\n")

		return nil
	}

	_, _ = io.WriteString(w, "\nProfiles:\n")

	profiles := tablewriter.NewWriter(w)
	profiles.Header("Profile", "Username", "Client ID", "Client Secret", "Token", "Expires", "Current")

	names := make([]string, 0, len(config.Profiles))
	for name := range config.Profiles {
		names = append(names, name)
	}

	sort.Strings(names)

	current := activeProfileName(config)

	for _, name := range names {
		_ = profiles.Append(buildProfileRow(name, config.Profiles[name], name == current))
	}

	err = profiles.Render()
	if err != nil {
		return fmt.Errorf("failed to render profile table: %w", err)
	}

	return nil
}

func buildProfileRow(name string, profile *ProfileConfig, isCurrent bool) []string {
	expires := "-"
	if profile.TokenExpiresAt != nil {
		expires = profile.TokenExpiresAt.Local().Format(constants.TimeFormat)
	}

	current := ""
	if isCurrent {
		current = constants.CheckMarkSymbol
	}

	return []string{
		name,
		formatValue(profile.Username),
		formatValue(profile.ClientID),
		maskSecret(profile.ClientSecret),
		maskSecret(profile.Token),
		expires,
		current,
	}
}
