// internal/browser/dom/navigation.go
package dom

import (
	"net/url"

	"github.com/google/uuid"
)

// NavigationOptions describes a navigation request raised by a default action.
type NavigationOptions struct {
	URL            *url.URL
	ContentType    string
	SourceDocument uuid.UUID
	// Method is GET unless a form submission says otherwise.
	Method string
	Body   []byte
}

// NewNavigationOptions builds a GET navigation request.
func NewNavigationOptions(u *url.URL, contentType string, source uuid.UUID) NavigationOptions {
	return NavigationOptions{
		URL:            u,
		ContentType:    contentType,
		SourceDocument: source,
		Method:         "GET",
	}
}

// NavigationProvider receives navigation requests. Loading is its concern.
type NavigationProvider interface {
	NavigateTo(opts NavigationOptions)
}

// NopNavigationProvider drops every request.
type NopNavigationProvider struct{}

func (NopNavigationProvider) NavigateTo(NavigationOptions) {}

// ResolveURL resolves href against base. Without a base, href must be absolute.
func ResolveURL(base *url.URL, href string) (*url.URL, bool) {
	if base == nil {
		u, err := url.Parse(href)
		if err != nil || !u.IsAbs() {
			return nil, false
		}
		return u, true
	}
	u, err := base.Parse(href)
	if err != nil {
		return nil, false
	}
	return u, true
}
