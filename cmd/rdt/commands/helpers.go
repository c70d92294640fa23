package commands

import (
	"errors"
	"strconv"
	"time"

	"github.com/fivetwenty-io/reddit-client/internal/constants"
	"github.com/fivetwenty-io/reddit-client/pkg/reddit"
	"github.com/spf13/cobra"
)

// Common string constants used throughout the commands package.
const (
	// DefaultProfile is used when no profile is selected.
	DefaultProfile = "default"

	// Output formats.
	OutputFormatJSON  = constants.FormatJSON
	OutputFormatYAML  = constants.FormatYAML
	OutputFormatTable = constants.FormatTable

	// YAML formatting.
	defaultYAMLIndent = 2

	Masked = constants.MaskedSecret
)

// Common static errors used throughout the commands package.
var (
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrSessionExpired      = errors.New("session expired")
	ErrClientIDRequired    = errors.New("client ID is required")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrUnknownConfigKey    = errors.New("unknown configuration key")
	ErrInvalidOutputFormat = errors.New("invalid output format")
	ErrNoPrefsGiven        = errors.New("no preferences given")
	ErrNoteTooLong         = errors.New("note too long")
)

// listingFlags holds the pagination flags shared by relationship listings.
type listingFlags struct {
	limit  int
	after  string
	before string
	show   string
	count  int

	srDetail          bool
	includeCategories bool
}

func (f *listingFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.limit, "limit", constants.DefaultListingLimit, "maximum number of items to return")
	cmd.Flags().StringVar(&f.after, "after", "", "fullname of the item to list after")
	cmd.Flags().StringVar(&f.before, "before", "", "fullname of the item to list before")
	cmd.Flags().StringVar(&f.show, "show", constants.DefaultListingShow, "show filter")
	cmd.Flags().IntVar(&f.count, "count", 0, "number of items already seen")
	cmd.Flags().BoolVar(&f.srDetail, "sr-detail", false, "expand subreddits")
	cmd.Flags().BoolVar(&f.includeCategories, "include-categories", false, "include category information")
}

func (f *listingFlags) params() *reddit.ListingParams {
	return reddit.NewListingParams().
		WithLimit(f.limit).
		WithAfter(f.after).
		WithBefore(f.before).
		WithShow(f.show).
		WithCount(f.count).
		WithSrDetail(f.srDetail).
		WithIncludeCategories(f.includeCategories)
}

// formatUnix renders a Reddit epoch timestamp.
func formatUnix(seconds float64) string {
	if seconds <= 0 {
		return constants.NotAvailable
	}

	return time.Unix(int64(seconds), 0).UTC().Format(constants.TimeFormat)
}

func formatValue(value string) string {
	if value == "" {
		return "-"
	}

	return value
}

func formatBool(value bool) string {
	return strconv.FormatBool(value)
}

func maskSecret(value string) string {
	if value == "" {
		return "-"
	}

	return Masked
}
