package router

import (
	"fmt"
	"strings"

	"github.com/starbugmolt/starbug/internal/errors"
	"github.com/starbugmolt/starbug/pkg/routepath"
)

// Link is a labeled navigation target.
type Link struct {
	Label string
	Href  string
}

// CheckLinks reports every local link whose target is not a route.
// External links are skipped.
func (r *Router) CheckLinks(links []Link) error {
	var dangling []string
	for _, link := range links {
		path, local, err := routepath.LinkTarget(link.Href)
		if err != nil {
			dangling = append(dangling, fmt.Sprintf("%q → %q (%v)", link.Label, link.Href, err))
			continue
		}
		if !local {
			continue
		}
		if _, ok := r.Match(path); !ok {
			dangling = append(dangling, fmt.Sprintf("%q → %q", link.Label, link.Href))
		}
	}
	if len(dangling) == 0 {
		return nil
	}
	return errors.New("E104").
		WithDetail(strings.Join(dangling, "; ")).
		WithSuggestion("Register the missing routes or fix the links")
}
