package content

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
)

//go:embed pages.json
var pagesJSON []byte

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Channel struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
}

type Section struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Updated  string    `json:"updated,omitempty"`
	Items    []string  `json:"items,omitempty"`
	FAQs     []FAQ     `json:"faqs,omitempty"`
	Channels []Channel `json:"channels,omitempty"`
}

// Action is a button on a page. Coming-soon actions have no href and are
// answered with a notice instead.
type Action struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Href       string `json:"href,omitempty"`
	ComingSoon bool   `json:"comingSoon,omitempty"`
}

type Page struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Sections    []Section `json:"sections,omitempty"`
	Actions     []Action  `json:"actions,omitempty"`
}

// Catalog holds the static page documents keyed by page name.
type Catalog struct {
	pages map[string]Page
}

func Load() (*Catalog, error) {
	var pages map[string]Page
	if err := json.Unmarshal(pagesJSON, &pages); err != nil {
		return nil, fmt.Errorf("content: decode pages: %w", err)
	}
	return &Catalog{pages: pages}, nil
}

func (c *Catalog) Page(name string) (Page, bool) {
	p, ok := c.pages[name]
	return p, ok
}

func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.pages))
	for name := range c.pages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
