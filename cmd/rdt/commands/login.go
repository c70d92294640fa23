package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fivetwenty-io/reddit-client/internal/auth"
	"github.com/fivetwenty-io/reddit-client/internal/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

type loginOptions struct {
	clientID     string
	clientSecret string
	username     string
	password     string
	refreshToken string
	deviceID     string
	userAgent    string
}

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	opts := &loginOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to Reddit",
		Long: `Obtain an OAuth2 token and store it in the active profile.

With --username the password grant of a "script" app is used and the password
is prompted for unless given. With --refresh-token the refresh grant is used.
Otherwise an application-only token is requested (installed client grant when
--device-id is set). Passwords are never written to the configuration file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.clientID, "client-id", "", "OAuth2 client ID of the Reddit app")
	cmd.Flags().StringVar(&opts.clientSecret, "client-secret", "", "OAuth2 client secret of the Reddit app")
	cmd.Flags().StringVarP(&opts.username, "username", "u", "", "Reddit username")
	cmd.Flags().StringVarP(&opts.password, "password", "p", "", "Reddit password")
	cmd.Flags().StringVar(&opts.refreshToken, "refresh-token", "", "previously authorized refresh token")
	cmd.Flags().StringVar(&opts.deviceID, "device-id", "", "device ID for installed apps")
	cmd.Flags().StringVar(&opts.userAgent, "user-agent", "", "User-Agent sent to Reddit")

	return cmd
}

func runLogin(cmd *cobra.Command, opts *loginOptions) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}

	name := activeProfileName(config)
	profile := config.profile(name, true)
	mergeLoginOptions(profile, opts)

	if profile.ClientID == "" {
		return fmt.Errorf("%w (use --client-id or 'rdt config set client_id')", ErrClientIDRequired)
	}

	password := opts.password
	if password == "" {
		password = viper.GetString("password")
	}

	if profile.Username != "" && opts.refreshToken == "" && password == "" {
		password, err = promptPassword(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
	}

	redditConfig := buildRedditConfig(config, profile)
	oauthConfig := buildOAuth2Config(redditConfig, profile)
	oauthConfig.Password = password
	oauthConfig.RefreshToken = opts.refreshToken

	manager := auth.NewOAuth2TokenManager(oauthConfig)

	ctx := context.Background()

	_, err = manager.GetToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}

	out := cmd.OutOrStdout()

	if profile.Username != "" || opts.refreshToken != "" {
		redditClient, err := client.NewWithTokenManager(redditConfig, manager)
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		defer func() { _ = redditClient.Close() }()

		me, err := redditClient.Account().GetMe(ctx)
		if err != nil {
			return fmt.Errorf("failed to verify login: %w", err)
		}

		profile.Username = me.Name
	}

	storeToken(profile, manager.CurrentToken())

	if config.CurrentProfile == "" || len(config.Profiles) == 1 {
		config.CurrentProfile = name
	}

	err = saveConfig(config)
	if err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	if profile.Username != "" {
		_, _ = fmt.Fprintf(out, "Logged in as u/%s (profile '%s')\n", profile.Username, name)
	} else {
		_, _ = fmt.Fprintf(out, "Obtained application-only token (profile '%s')\n", name)
	}

	return nil
}

func mergeLoginOptions(profile *ProfileConfig, opts *loginOptions) {
	resolved := map[string]string{
		"client_id":     opts.clientID,
		"client_secret": opts.clientSecret,
		"username":      opts.username,
		"device_id":     opts.deviceID,
		"user_agent":    opts.userAgent,
	}

	for key, value := range resolved {
		if value == "" {
			value = viper.GetString(key)
		}

		if value != "" {
			profileKeys[key](profile, value)
		}
	}
}

func storeToken(profile *ProfileConfig, token *auth.Token) {
	if token == nil {
		return
	}

	profile.Token = token.AccessToken
	profile.RefreshToken = token.RefreshToken

	if !token.ExpiresAt.IsZero() {
		expiresAt := token.ExpiresAt
		profile.TokenExpiresAt = &expiresAt
	}

	now := time.Now()
	profile.LastRefreshed = &now
}

func promptPassword(w io.Writer) (string, error) {
	_, _ = io.WriteString(w, "Password: ")

	fd := int(os.Stdin.Fd()) // #nosec G115 -- file descriptors fit in int

	if !term.IsTerminal(fd) {
		reader := bufio.NewReader(os.Stdin)

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("failed to read password: %w", err)
		}

		return strings.TrimSpace(line), nil
	}

	bytePassword, err := term.ReadPassword(fd)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	_, _ = io.WriteString(w, "\n")

	return string(bytePassword), nil
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from Reddit",
		Long:  "Revoke the stored tokens and remove them from the active profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			name := activeProfileName(config)
			out := cmd.OutOrStdout()

			profile := config.profile(name, false)
			if profile == nil || (profile.Token == "" && profile.RefreshToken == "") {
				_, _ = fmt.Fprintln(out, "Not logged in")

				return nil
			}

			redditConfig := buildRedditConfig(config, profile)
			oauthConfig := buildOAuth2Config(redditConfig, profile)
			oauthConfig.AccessToken = profile.Token

			if profile.ClientID != "" && profile.Token != "" {
				err = auth.NewOAuth2TokenManager(oauthConfig).RevokeToken(context.Background())
				if err != nil {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not revoke token: %v\n", err)
				}
			}

			profile.Token = ""
			profile.RefreshToken = ""
			profile.TokenExpiresAt = nil

			err = saveConfig(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			_, _ = fmt.Fprintln(out, "Successfully logged out")

			return nil
		},
	}
}
