package interview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillscan/internal/fetch"
	"github.com/jonathan/skillscan/internal/types"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func TestParse_Fixture(t *testing.T) {
	pairs, err := Parse(readFixture(t, "backend.html"), 0)
	require.NoError(t, err)

	assert.Equal(t, []types.QuestionAnswer{
		{Question: "Table of Content", Answer: "A **REST API** exposes resources over HTTP."},
		{Question: "1. What is a REST API?", Answer: "A **REST API** exposes resources over HTTP."},
		{Question: "Why?", Answer: "Short but contains a question mark."},
		{Question: "2. Explain database indexing in detail", Answer: "An index speeds up lookups."},
		{Question: "3. What is a message queue?", Answer: NoAnswer},
	}, pairs)
}

func TestParse_Limit(t *testing.T) {
	var sb strings.Builder
	for i := 1; i <= 30; i++ {
		fmt.Fprintf(&sb, "<h3>Question number %d?</h3><p>Answer %d</p>", i, i)
	}

	pairs, err := Parse(sb.String(), 0)
	require.NoError(t, err)
	require.Len(t, pairs, DefaultLimit)
	assert.Equal(t, "Question number 20?", pairs[19].Question)
	assert.Equal(t, "Answer 20", pairs[19].Answer)

	pairs, err = Parse(sb.String(), 3)
	require.NoError(t, err)
	assert.Len(t, pairs, 3)
}

func TestParse_NoHeadings(t *testing.T) {
	pairs, err := Parse("<html><body><p>nothing</p></body></html>", 0)
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestParse_LengthCountsCharacters(t *testing.T) {
	pairs, err := Parse("<h3>Überblické</h3><h3>Überblickés</h3>", 0)
	require.NoError(t, err)
	require.Len(t, pairs, 1, "ten characters is not enough, eleven is")
	assert.Equal(t, "Überblickés", pairs[0].Question)
}

func TestRoleURL(t *testing.T) {
	name, url, ok := RoleURL("  backend engineer ")
	require.True(t, ok)
	assert.Equal(t, "Backend Engineer", name)
	assert.Equal(t, "https://www.geeksforgeeks.org/backend-developer-interview-questions-and-answers/", url)

	_, _, ok = RoleURL("Astronaut")
	assert.False(t, ok)
}

func TestRoles(t *testing.T) {
	roles := Roles()
	assert.Len(t, roles, 9)
	assert.Contains(t, roles, "HR Interview Questions")
	assert.IsNonDecreasing(t, roles)
}

func TestFetch_UnknownRole(t *testing.T) {
	_, err := Fetch(context.Background(), "Astronaut", nil)

	var ierr *Error
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, "Astronaut", ierr.Role)
	assert.Contains(t, err.Error(), "unknown role")
}

func TestFetch_FromCache(t *testing.T) {
	fixture := readFixture(t, "backend.html")
	var requested []string
	cache := fetch.NewCachedFetcher(func(_ context.Context, url string) (*fetch.Result, error) {
		requested = append(requested, url)
		return &fetch.Result{URL: url, HTML: fixture, StatusCode: http.StatusOK}, nil
	}, 0)

	bank, err := Fetch(context.Background(), "Backend Engineer", &Options{Cache: cache, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", bank.Role)
	assert.Equal(t, requested[0], bank.SourceURL)
	assert.Len(t, bank.Questions, 2)

	_, err = Fetch(context.Background(), "backend engineer", &Options{Cache: cache})
	require.NoError(t, err)
	assert.Len(t, requested, 1)
}

func TestFetch_UpstreamFailure(t *testing.T) {
	boom := errors.New("connection refused")
	cache := fetch.NewCachedFetcher(func(context.Context, string) (*fetch.Result, error) {
		return nil, boom
	}, 0)

	_, err := Fetch(context.Background(), "SDE", &Options{Cache: cache})
	var ierr *Error
	require.ErrorAs(t, err, &ierr)
	assert.ErrorIs(t, err, boom)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestFetch_OverHTTP(t *testing.T) {
	fixture := readFixture(t, "backend.html")
	var gotHost string
	client := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		gotHost = r.URL.Host
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"text/html"}},
			Body:       io.NopCloser(strings.NewReader(fixture)),
			Request:    r,
		}, nil
	})}

	bank, err := Fetch(context.Background(), "Data Analyst", &Options{Fetch: &fetch.Options{Client: client}})
	require.NoError(t, err)
	assert.Equal(t, "www.geeksforgeeks.org", gotHost)
	assert.Len(t, bank.Questions, 5)
}
