package models

import (
	"time"
)

// Candidate represents a discovered repository under evaluation. The URL is
// the stable identity used as the primary key across all persisted state.
type Candidate struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	PushedAt    time.Time `json:"pushed_at"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`

	readmeFn     func() string
	filesFn      func() []string
	readme       *string
	files        []string
	filesFetched bool
}

// NewCandidate creates a Candidate from already-known repository metadata
func NewCandidate(url, title string, description *string, createdAt, pushedAt time.Time, stars, forks int) *Candidate {
	return &Candidate{
		URL:         url,
		Title:       title,
		Description: description,
		CreatedAt:   createdAt,
		PushedAt:    pushedAt,
		Stars:       stars,
		Forks:       forks,
	}
}

// SetLoaders attaches the lazy accessors for the README text and the root
// file listing. Loaders are only invoked when the content is first needed,
// after the cheaper filter gates have already passed.
func (c *Candidate) SetLoaders(readmeFn func() string, filesFn func() []string) {
	c.readmeFn = readmeFn
	c.filesFn = filesFn
}

// Readme returns the long-form README text, fetching it at most once.
// A missing loader or a failed fetch degrades to an empty string.
func (c *Candidate) Readme() string {
	if c.readme != nil {
		return *c.readme
	}
	content := ""
	if c.readmeFn != nil {
		content = c.readmeFn()
	}
	c.readme = &content
	return content
}

// Files returns the root file listing, fetching it at most once.
// A missing loader or a failed fetch degrades to an empty list.
func (c *Candidate) Files() []string {
	if c.filesFetched {
		return c.files
	}
	if c.filesFn != nil {
		c.files = c.filesFn()
	}
	c.filesFetched = true
	return c.files
}

// AgeDays returns the repository age in whole days, never less than 1
func (c *Candidate) AgeDays(now time.Time) int {
	days := int(now.Sub(c.CreatedAt).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

// DaysSincePush returns whole days since the last push
func (c *Candidate) DaysSincePush(now time.Time) int {
	days := int(now.Sub(c.PushedAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// DescriptionText returns the description or an empty string
func (c *Candidate) DescriptionText() string {
	if c.Description == nil {
		return ""
	}
	return *c.Description
}
