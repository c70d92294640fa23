package reddit

import (
	"net/url"
	"strconv"

	"github.com/fivetwenty-io/reddit-client/internal/constants"
)

// ListingParams are the pagination and filter parameters accepted by the
// relationship listings. They are sent to the remote API as given.
type ListingParams struct {
	// Limit is the maximum number of items desired (default: 25, maximum: 100).
	Limit int
	// After is the fullname of a thing.
	After string
	// Before is the fullname of a thing.
	Before string
	// Show is an optional filter, "all" by default.
	Show string
	// SrDetail expands subreddits.
	SrDetail bool
	// IncludeCategories asks for category information.
	IncludeCategories bool
	// Count is a positive integer (default: 0).
	Count int
}

// NewListingParams returns the default listing parameters.
func NewListingParams() *ListingParams {
	return &ListingParams{
		Limit: constants.DefaultListingLimit,
		Show:  constants.DefaultListingShow,
	}
}

// WithLimit sets the limit.
func (p *ListingParams) WithLimit(limit int) *ListingParams {
	p.Limit = limit

	return p
}

// WithAfter sets the after cursor.
func (p *ListingParams) WithAfter(after string) *ListingParams {
	p.After = after

	return p
}

// WithBefore sets the before cursor.
func (p *ListingParams) WithBefore(before string) *ListingParams {
	p.Before = before

	return p
}

// WithShow sets the show filter.
func (p *ListingParams) WithShow(show string) *ListingParams {
	p.Show = show

	return p
}

// WithCount sets the count.
func (p *ListingParams) WithCount(count int) *ListingParams {
	p.Count = count

	return p
}

// WithSrDetail toggles subreddit expansion.
func (p *ListingParams) WithSrDetail(srDetail bool) *ListingParams {
	p.SrDetail = srDetail

	return p
}

// WithIncludeCategories toggles category information.
func (p *ListingParams) WithIncludeCategories(include bool) *ListingParams {
	p.IncludeCategories = include

	return p
}

// ToValues converts the parameters to query values. A nil receiver yields the
// defaults.
func (p *ListingParams) ToValues() url.Values {
	if p == nil {
		p = NewListingParams()
	}

	values := url.Values{}
	values.Set("after", p.After)
	values.Set("before", p.Before)
	values.Set("count", strconv.Itoa(p.Count))
	values.Set("limit", strconv.Itoa(p.Limit))
	values.Set("show", p.Show)
	values.Set("sr_detail", strconv.FormatBool(p.SrDetail))
	values.Set("include_categories", strconv.FormatBool(p.IncludeCategories))

	return values
}
