// Package dispatch issues the raw Reddit API calls behind the resource
// controllers. Dispatchers decode responses but do not validate them.
package dispatch
