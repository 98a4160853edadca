package fetch

import (
	"net/url"
	"strings"
)

// Site represents a known question-bank site.
type Site string

const (
	// SiteGeeksforGeeks hosts the interview question banks
	SiteGeeksforGeeks Site = "geeksforgeeks"
	// SiteUnknown is an unrecognized site
	SiteUnknown Site = "unknown"
)

// DetectSite identifies the site from a URL.
func DetectSite(urlStr string) Site {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return SiteUnknown
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "geeksforgeeks.org" || strings.HasSuffix(host, ".geeksforgeeks.org") {
		return SiteGeeksforGeeks
	}
	return SiteUnknown
}

// SiteContentSelectors returns the selectors of a site's article body.
func SiteContentSelectors(site Site) []string {
	switch site {
	case SiteGeeksforGeeks:
		return append([]string{"article .text", ".article--viewer_content", "article"}, DefaultTextSelectors()...)
	default:
		return DefaultTextSelectors()
	}
}

// SiteNoiseSelectors returns elements to drop from a site's pages.
func SiteNoiseSelectors(site Site) []string {
	common := []string{
		".social-share",
		".share-buttons",
		".cookie-consent",
		"form",
	}

	switch site {
	case SiteGeeksforGeeks:
		return append(common,
			".article-meta",
			".article-pgnavi",
			".improve-article",
			".recommended-articles",
			"#comments",
		)
	default:
		return common
	}
}
