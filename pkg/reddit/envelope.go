package reddit

import "fmt"

// Validator is implemented by response envelopes. Validate returns an error
// when the envelope is absent, carries an error payload, or lacks the data
// its accessor depends on.
type Validator interface {
	Validate() error
}

// Validate implements Validator.
func (u *User) Validate() error {
	if u == nil {
		return fmt.Errorf("user: %w", ErrEmptyResponse)
	}

	return u.JSON.Err()
}

// Validate implements Validator.
func (c *UserKarmaContainer) Validate() error {
	if c == nil {
		return fmt.Errorf("karma list: %w", ErrEmptyResponse)
	}

	return c.JSON.Err()
}

// Validate implements Validator.
func (p *AccountPrefs) Validate() error {
	if p == nil {
		return fmt.Errorf("account prefs: %w", ErrEmptyResponse)
	}

	return p.JSON.Err()
}

// Validate implements Validator.
func (c *UserPrefsContainer) Validate() error {
	if c == nil {
		return fmt.Errorf("user list: %w", ErrEmptyResponse)
	}

	err := c.JSON.Err()
	if err != nil {
		return err
	}

	if c.Data == nil {
		return fmt.Errorf("user list: %w", ErrMissingListingData)
	}

	return nil
}

// UserPrefsContainers is the multi-page listing returned for friends and
// messaging relationships.
type UserPrefsContainers []UserPrefsContainer

// Validate implements Validator. The list must be present and every container
// must be valid.
func (cs UserPrefsContainers) Validate() error {
	if cs == nil {
		return fmt.Errorf("user lists: %w", ErrEmptyResponse)
	}

	for i := range cs {
		err := cs[i].Validate()
		if err != nil {
			return fmt.Errorf("container %d: %w", i, err)
		}
	}

	return nil
}

// Children concatenates the children of every container in order.
func (cs UserPrefsContainers) Children() []UserPrefs {
	res := make([]UserPrefs, 0)

	for i := range cs {
		if cs[i].Data == nil {
			continue
		}

		res = append(res, cs[i].Data.Children...)
	}

	return res
}

// Validate implements Validator.
func (r *UserActionResult) Validate() error {
	if r == nil {
		return fmt.Errorf("user action result: %w", ErrEmptyResponse)
	}

	return r.JSON.Err()
}

// Validate implements Validator.
func (w *WikiPageListing) Validate() error {
	if w == nil {
		return fmt.Errorf("wiki page listing: %w", ErrEmptyResponse)
	}

	return w.JSON.Err()
}

// Awards projects the trophy wrappers into their payloads, preserving order.
// A missing envelope, data block or trophies list yields an empty slice.
func (t *TrophyList) Awards() []Award {
	res := make([]Award, 0)

	if t == nil || t.Data == nil || t.Data.Trophies == nil {
		return res
	}

	for _, container := range t.Data.Trophies {
		if container.Data == nil {
			continue
		}

		res = append(res, *container.Data)
	}

	return res
}
