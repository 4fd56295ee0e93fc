package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobPosting_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`
			<html><body>
				<nav>Navigation</nav>
				<div class="job-description">
					<h2>Requirements</h2>
					<p>5 years experience in Go</p>
				</div>
				<footer>Footer</footer>
			</body></html>`))
	}))
	defer server.Close()

	result, err := JobPosting(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Contains(t, result.Text, "Requirements")
	assert.Contains(t, result.Text, "5 years experience in Go")
	assert.NotContains(t, result.Text, "Navigation")
	assert.NotContains(t, result.Text, "Footer")
}

func TestJobPosting_InvalidURL(t *testing.T) {
	_, err := JobPosting(context.Background(), "not-a-valid-url", nil)
	require.Error(t, err)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "invalid URL")
}

func TestJobPosting_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := JobPosting(context.Background(), server.URL, &Options{MaxRetries: 0})
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "404")
}

func TestJobPosting_RetriesTransientFailure(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`<html><body><main>Go engineer wanted</main></body></html>`))
	}))
	defer server.Close()

	result, err := JobPosting(context.Background(), server.URL, &Options{MaxRetries: 3})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, attempts, 2)
	assert.Contains(t, result.Text, "Go engineer wanted")
}

func TestJobPosting_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body></body></html>`))
	}))
	defer server.Close()

	_, err := JobPosting(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no readable posting text")
}

func TestExtractPostingText_ApplicationFormStripped(t *testing.T) {
	html := `
	<html><body>
		<div class="job-description">
			<p>Build distributed systems.</p>
		</div>
		<form id="application-form"><input name="email"/></form>
		<div class="eeo-statement">Equal opportunity employer boilerplate.</div>
	</body></html>`

	text, err := ExtractPostingText(html, PlatformUnknown)
	require.NoError(t, err)
	assert.Contains(t, text, "Build distributed systems")
	assert.NotContains(t, text, "Equal opportunity")
}

func TestExtractPostingText_FallbackToBody(t *testing.T) {
	html := `<html><body><div>Some posting text here.</div></body></html>`

	text, err := ExtractPostingText(html, PlatformUnknown)
	require.NoError(t, err)
	assert.Contains(t, text, "Some posting text here")
}

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url  string
		want Platform
	}{
		{"https://boards.greenhouse.io/acme/jobs/123", PlatformGreenhouse},
		{"https://jobs.lever.co/acme/abc-def", PlatformLever},
		{"https://acme.wd1.myworkdayjobs.com/careers/job/123", PlatformWorkday},
		{"https://careers.example.com/jobs/123", PlatformUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectPlatform(tt.url), tt.url)
	}
}

func TestPlatformSelectors(t *testing.T) {
	assert.Contains(t, PlatformContentSelectors(PlatformGreenhouse), ".job__description")
	assert.Contains(t, PlatformContentSelectors(PlatformLever), ".posting-description")
	assert.Contains(t, PlatformContentSelectors(PlatformUnknown), ".job-description")
	assert.Contains(t, PlatformNoiseSelectors(PlatformUnknown), "form")
}
