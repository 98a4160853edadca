package interview

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/skillscan/internal/fetch"
	"github.com/jonathan/skillscan/internal/types"
)

// Options configures Fetch.
type Options struct {
	// Fetch options for the HTTP request. Nil uses fetch.DefaultOptions.
	Fetch *fetch.Options
	// UseBrowser enables headless rendering when the page text is too short.
	UseBrowser bool
	// Limit caps the number of pairs. Zero uses DefaultLimit.
	Limit int
	// Cache, when set, serves repeated requests for a role from memory.
	Cache  *fetch.CachedFetcher
	Logger *zap.Logger
}

// Fetch loads and parses the question bank of role.
func Fetch(ctx context.Context, role string, opts *Options) (*types.InterviewQuestions, error) {
	if opts == nil {
		opts = &Options{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	name, url, ok := RoleURL(role)
	if !ok {
		return nil, &Error{Role: role, Message: "unknown role"}
	}

	html, err := load(ctx, url, opts)
	if err != nil {
		logger.Warn("question bank fetch failed", zap.String("role", name), zap.Error(err))
		return nil, &Error{Role: name, Message: "failed to fetch questions", Cause: err}
	}

	questions, err := Parse(html, opts.Limit)
	if err != nil {
		return nil, &Error{Role: name, Message: "failed to parse questions", Cause: err}
	}

	logger.Debug("parsed question bank", zap.String("role", name), zap.Int("questions", len(questions)))
	return &types.InterviewQuestions{Role: name, SourceURL: url, Questions: questions}, nil
}

// Loader returns the page loader Fetch uses for opts, for building a
// shared fetch.CachedFetcher.
func Loader(opts *Options) fetch.Loader {
	return func(ctx context.Context, url string) (*fetch.Result, error) {
		if opts == nil || !opts.UseBrowser {
			var fetchOpts *fetch.Options
			if opts != nil {
				fetchOpts = opts.Fetch
			}
			return fetch.URL(ctx, url, fetchOpts)
		}

		site := fetch.DetectSite(url)
		browser := fetch.DefaultBrowserOptions()
		browser.WaitSelector = "h3"
		browser.Logger = opts.Logger
		return fetch.FetchRendered(ctx, url, opts.Fetch, browser,
			fetch.SiteContentSelectors(site), fetch.SiteNoiseSelectors(site)...)
	}
}

func load(ctx context.Context, url string, opts *Options) (string, error) {
	if opts.Cache != nil {
		result, err := opts.Cache.Fetch(ctx, url)
		if err != nil {
			return "", err
		}
		return result.HTML, nil
	}

	result, err := Loader(opts)(ctx, url)
	if err != nil {
		return "", err
	}
	return result.HTML, nil
}
