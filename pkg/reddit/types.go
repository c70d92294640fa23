package reddit

// User is the authenticated account as returned by the "me" endpoint.
type User struct {
	ID               string  `json:"id"                 yaml:"id"`
	Name             string  `json:"name"               yaml:"name"`
	CreatedUTC       float64 `json:"created_utc"        yaml:"created_utc"`
	LinkKarma        int     `json:"link_karma"         yaml:"link_karma"`
	CommentKarma     int     `json:"comment_karma"      yaml:"comment_karma"`
	TotalKarma       int     `json:"total_karma"        yaml:"total_karma"`
	IsGold           bool    `json:"is_gold"            yaml:"is_gold"`
	IsMod            bool    `json:"is_mod"             yaml:"is_mod"`
	IsEmployee       bool    `json:"is_employee"        yaml:"is_employee"`
	HasVerifiedEmail bool    `json:"has_verified_email" yaml:"has_verified_email"`
	Verified         bool    `json:"verified"           yaml:"verified"`
	Over18           bool    `json:"over_18"            yaml:"over_18"`
	IconImg          string  `json:"icon_img,omitempty" yaml:"icon_img,omitempty"`
	InboxCount       int     `json:"inbox_count"        yaml:"inbox_count"`

	JSON *JSONErrors `json:"json,omitempty" yaml:"-"`
}

// Fullname returns the user's "t2_" prefixed identifier.
func (u *User) Fullname() string {
	if u == nil || u.ID == "" {
		return ""
	}

	return "t2_" + u.ID
}

// UserKarma is the karma breakdown for one subreddit.
type UserKarma struct {
	Subreddit    string `json:"sr"            yaml:"sr"`
	LinkKarma    int    `json:"link_karma"    yaml:"link_karma"`
	CommentKarma int    `json:"comment_karma" yaml:"comment_karma"`
}

// UserKarmaContainer wraps the karma breakdown.
type UserKarmaContainer struct {
	Kind string      `json:"kind" yaml:"kind"`
	Data []UserKarma `json:"data" yaml:"data"`

	JSON *JSONErrors `json:"json,omitempty" yaml:"-"`
}

// AccountPrefs holds the preference settings of the logged in user.
type AccountPrefs struct {
	AcceptPMs                     string `json:"accept_pms"                         yaml:"accept_pms"`
	ActivityRelevantAds           bool   `json:"activity_relevant_ads"              yaml:"activity_relevant_ads"`
	AllowClickTracking            bool   `json:"allow_clicktracking"                yaml:"allow_clicktracking"`
	Beta                          bool   `json:"beta"                               yaml:"beta"`
	ClickGadget                   bool   `json:"clickgadget"                        yaml:"clickgadget"`
	CollapseReadMessages          bool   `json:"collapse_read_messages"             yaml:"collapse_read_messages"`
	Compress                      bool   `json:"compress"                           yaml:"compress"`
	CountryCode                   string `json:"country_code"                       yaml:"country_code"`
	DefaultCommentSort            string `json:"default_comment_sort"               yaml:"default_comment_sort"`
	EmailMessages                 bool   `json:"email_messages"                     yaml:"email_messages"`
	EnableFollowers               bool   `json:"enable_followers"                   yaml:"enable_followers"`
	HideFromRobots                bool   `json:"hide_from_robots"                   yaml:"hide_from_robots"`
	HighlightControversial        bool   `json:"highlight_controversial"            yaml:"highlight_controversial"`
	IgnoreSuggestedSort           bool   `json:"ignore_suggested_sort"              yaml:"ignore_suggested_sort"`
	LabelNSFW                     bool   `json:"label_nsfw"                         yaml:"label_nsfw"`
	Lang                          string `json:"lang"                               yaml:"lang"`
	MarkMessagesRead              bool   `json:"mark_messages_read"                 yaml:"mark_messages_read"`
	Media                         string `json:"media"                              yaml:"media"`
	MediaPreview                  string `json:"media_preview"                      yaml:"media_preview"`
	MinCommentScore               *int   `json:"min_comment_score"                  yaml:"min_comment_score"`
	MinLinkScore                  *int   `json:"min_link_score"                     yaml:"min_link_score"`
	MonitorMentions               bool   `json:"monitor_mentions"                   yaml:"monitor_mentions"`
	NewWindow                     bool   `json:"newwindow"                          yaml:"newwindow"`
	NightMode                     bool   `json:"nightmode"                          yaml:"nightmode"`
	NoProfanity                   bool   `json:"no_profanity"                       yaml:"no_profanity"`
	NumComments                   int    `json:"num_comments"                       yaml:"num_comments"`
	NumSites                      int    `json:"numsites"                           yaml:"numsites"`
	Over18                        bool   `json:"over_18"                            yaml:"over_18"`
	PrivateFeeds                  bool   `json:"private_feeds"                      yaml:"private_feeds"`
	ProfileOptOut                 bool   `json:"profile_opt_out"                    yaml:"profile_opt_out"`
	PublicVotes                   bool   `json:"public_votes"                       yaml:"public_votes"`
	SearchIncludeOver18           bool   `json:"search_include_over_18"             yaml:"search_include_over_18"`
	ShowFlair                     bool   `json:"show_flair"                         yaml:"show_flair"`
	ShowLinkFlair                 bool   `json:"show_link_flair"                    yaml:"show_link_flair"`
	ShowPresence                  bool   `json:"show_presence"                      yaml:"show_presence"`
	ShowStylesheets               bool   `json:"show_stylesheets"                   yaml:"show_stylesheets"`
	ShowTrending                  bool   `json:"show_trending"                      yaml:"show_trending"`
	ShowTwitter                   bool   `json:"show_twitter"                       yaml:"show_twitter"`
	StoreVisits                   bool   `json:"store_visits"                       yaml:"store_visits"`
	ThemeSelector                 string `json:"theme_selector"                     yaml:"theme_selector"`
	ThirdPartyDataPersonalizedAds bool   `json:"third_party_data_personalized_ads" yaml:"third_party_data_personalized_ads"`
	ThreadedMessages              bool   `json:"threaded_messages"                  yaml:"threaded_messages"`
	TopKarmaSubreddits            bool   `json:"top_karma_subreddits"               yaml:"top_karma_subreddits"`
	VideoAutoplay                 bool   `json:"video_autoplay"                     yaml:"video_autoplay"`

	JSON *JSONErrors `json:"json,omitempty" yaml:"-"`
}

// AccountPrefsSubmit is the writable subset of AccountPrefs. Nil fields are
// left unchanged by the remote API.
type AccountPrefsSubmit struct {
	AcceptPMs            *string `json:"accept_pms,omitempty"             yaml:"accept_pms,omitempty"`
	ActivityRelevantAds  *bool   `json:"activity_relevant_ads,omitempty"  yaml:"activity_relevant_ads,omitempty"`
	AllowClickTracking   *bool   `json:"allow_clicktracking,omitempty"    yaml:"allow_clicktracking,omitempty"`
	Beta                 *bool   `json:"beta,omitempty"                   yaml:"beta,omitempty"`
	CollapseReadMessages *bool   `json:"collapse_read_messages,omitempty" yaml:"collapse_read_messages,omitempty"`
	CountryCode          *string `json:"country_code,omitempty"           yaml:"country_code,omitempty"`
	DefaultCommentSort   *string `json:"default_comment_sort,omitempty"   yaml:"default_comment_sort,omitempty"`
	EmailMessages        *bool   `json:"email_messages,omitempty"         yaml:"email_messages,omitempty"`
	EnableFollowers      *bool   `json:"enable_followers,omitempty"       yaml:"enable_followers,omitempty"`
	HideFromRobots       *bool   `json:"hide_from_robots,omitempty"       yaml:"hide_from_robots,omitempty"`
	LabelNSFW            *bool   `json:"label_nsfw,omitempty"             yaml:"label_nsfw,omitempty"`
	Lang                 *string `json:"lang,omitempty"                   yaml:"lang,omitempty"`
	MarkMessagesRead     *bool   `json:"mark_messages_read,omitempty"     yaml:"mark_messages_read,omitempty"`
	MinCommentScore      *int    `json:"min_comment_score,omitempty"      yaml:"min_comment_score,omitempty"`
	MinLinkScore         *int    `json:"min_link_score,omitempty"         yaml:"min_link_score,omitempty"`
	NightMode            *bool   `json:"nightmode,omitempty"              yaml:"nightmode,omitempty"`
	NumComments          *int    `json:"num_comments,omitempty"           yaml:"num_comments,omitempty"`
	NumSites             *int    `json:"numsites,omitempty"               yaml:"numsites,omitempty"`
	Over18               *bool   `json:"over_18,omitempty"                yaml:"over_18,omitempty"`
	PrivateFeeds         *bool   `json:"private_feeds,omitempty"          yaml:"private_feeds,omitempty"`
	ProfileOptOut        *bool   `json:"profile_opt_out,omitempty"        yaml:"profile_opt_out,omitempty"`
	PublicVotes          *bool   `json:"public_votes,omitempty"           yaml:"public_votes,omitempty"`
	ShowPresence         *bool   `json:"show_presence,omitempty"          yaml:"show_presence,omitempty"`
	ShowTrending         *bool   `json:"show_trending,omitempty"          yaml:"show_trending,omitempty"`
	StoreVisits          *bool   `json:"store_visits,omitempty"           yaml:"store_visits,omitempty"`
	ThreadedMessages     *bool   `json:"threaded_messages,omitempty"      yaml:"threaded_messages,omitempty"`
	VideoAutoplay        *bool   `json:"video_autoplay,omitempty"         yaml:"video_autoplay,omitempty"`
}

// Award is a single trophy.
type Award struct {
	ID          string   `json:"id"          yaml:"id"`
	AwardID     string   `json:"award_id"    yaml:"award_id"`
	Name        string   `json:"name"        yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Icon40      string   `json:"icon_40"     yaml:"icon_40"`
	Icon70      string   `json:"icon_70"     yaml:"icon_70"`
	URL         string   `json:"url"         yaml:"url"`
	GrantedAt   *float64 `json:"granted_at"  yaml:"granted_at"`
}

// AwardContainer wraps an Award in a "t6" thing.
type AwardContainer struct {
	Kind string `json:"kind" yaml:"kind"`
	Data *Award `json:"data" yaml:"data"`
}

// TrophyListData holds the trophy wrappers.
type TrophyListData struct {
	Trophies []AwardContainer `json:"trophies" yaml:"trophies"`
}

// TrophyList is the trophies envelope.
type TrophyList struct {
	Kind string          `json:"kind" yaml:"kind"`
	Data *TrophyListData `json:"data" yaml:"data"`
}

// UserPrefs is one entry of a relationship listing (friends, blocked, ...).
type UserPrefs struct {
	ID    string  `json:"id"             yaml:"id"`
	Name  string  `json:"name"           yaml:"name"`
	Date  float64 `json:"date"           yaml:"date"`
	RelID string  `json:"rel_id"         yaml:"rel_id"`
	Note  string  `json:"note,omitempty" yaml:"note,omitempty"`
}

// UserPrefsListing is the payload of a UserPrefsContainer.
type UserPrefsListing struct {
	Children []UserPrefs `json:"children"         yaml:"children"`
	After    string      `json:"after,omitempty"  yaml:"after,omitempty"`
	Before   string      `json:"before,omitempty" yaml:"before,omitempty"`
}

// UserPrefsContainer is a relationship listing container.
type UserPrefsContainer struct {
	Kind string            `json:"kind" yaml:"kind"`
	Data *UserPrefsListing `json:"data" yaml:"data"`

	JSON *JSONErrors `json:"json,omitempty" yaml:"-"`
}

// UserActionResult is returned by the friend add, update and get endpoints.
type UserActionResult struct {
	ID    string  `json:"id"             yaml:"id"`
	Name  string  `json:"name"           yaml:"name"`
	Date  float64 `json:"date"           yaml:"date"`
	RelID string  `json:"rel_id"         yaml:"rel_id"`
	Note  string  `json:"note,omitempty" yaml:"note,omitempty"`

	JSON *JSONErrors `json:"json,omitempty" yaml:"-"`
}

// FriendRequest is the JSON body accepted by the friend update endpoint.
type FriendRequest struct {
	Name string `json:"name"           yaml:"name"`
	Note string `json:"note,omitempty" yaml:"note,omitempty"`
}

// Scope describes an OAuth scope.
type Scope struct {
	ID          string `json:"id"          yaml:"id"`
	Name        string `json:"name"        yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// WikiPageListing lists the wiki pages of a subreddit.
type WikiPageListing struct {
	Kind string   `json:"kind" yaml:"kind"`
	Data []string `json:"data" yaml:"data"`

	JSON *JSONErrors `json:"json,omitempty" yaml:"-"`
}
