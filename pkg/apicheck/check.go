// Package apicheck probes HTTP API endpoints of the application under test.
//
// Unlike a health check that demands one exact status, an endpoint probe
// accepts a set of statuses: an unauthenticated probe of a protected API is
// healthy whether it returns 200 or 401. What matters is that the route
// exists and the handler answers.
package apicheck

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/omniops/flowcheck/pkg/check"
)

// HTTPClient abstracts HTTP requests for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// RealHTTPClient uses the real net/http package.
type RealHTTPClient struct {
	Timeout time.Duration
}

// Do executes an HTTP request. Redirects are not followed: a 307 to
// /login is a meaningful answer from a protected endpoint, not a hop
// to transparently chase.
func (c *RealHTTPClient) Do(req *http.Request) (*http.Response, error) {
	client := &http.Client{
		Timeout: c.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return client.Do(req)
}

// Check verifies that an API endpoint responds with an acceptable status.
type Check struct {
	Name             string            // transcript name (default: "api: <URL>")
	URL              string            // target URL (required)
	ExpectedStatuses []int             // acceptable statuses (default: 200, 401)
	Timeout          time.Duration     // request timeout (default: 5s)
	Method           string            // HTTP method (default: GET)
	Headers          map[string]string // custom headers
	Retry            int               // retry count on failure
	RetryDelay       time.Duration     // delay between retries (default: 1s)
	JSONPath         string            // optional body assertion: "path" or "path=expected"
	Client           HTTPClient        // injected for testing
}

// Run executes the endpoint probe.
func (c *Check) Run() check.Result {
	name := c.Name
	if name == "" {
		name = "api: " + c.URL
	}
	result := check.Result{
		Name: name,
	}

	if c.URL == "" {
		return result.Failf("URL is required")
	}
	parsedURL, err := url.Parse(c.URL)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return result.Failf("invalid URL: %s", c.URL)
	}

	method := c.Method
	if method == "" {
		method = "GET"
	}
	expected := c.ExpectedStatuses
	if len(expected) == 0 {
		expected = []int{http.StatusOK, http.StatusUnauthorized}
	}
	timeout := c.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	retryDelay := c.RetryDelay
	if retryDelay == 0 {
		retryDelay = 1 * time.Second
	}

	client := c.Client
	if client == nil {
		client = &RealHTTPClient{Timeout: timeout}
	}

	maxAttempts := c.Retry + 1

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		req, err := http.NewRequest(method, c.URL, http.NoBody)
		if err != nil {
			return result.Failf("failed to create request: %v", err)
		}
		for k, v := range c.Headers {
			req.Header.Set(k, v)
		}

		resp, err := client.Do(req)
		if err != nil {
			if attempt < maxAttempts {
				time.Sleep(retryDelay)
				continue
			}
			if maxAttempts > 1 {
				return result.Failf("request failed after %d attempts: %v", maxAttempts, err)
			}
			return result.Failf("request failed: %v", err)
		}

		var respBody string
		if c.JSONPath != "" {
			bodyBytes, err := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if err != nil {
				return result.Failf("failed to read response body: %v", err)
			}
			respBody = string(bodyBytes)
		} else {
			_ = resp.Body.Close()
		}

		if !statusAccepted(resp.StatusCode, expected) {
			if attempt < maxAttempts {
				time.Sleep(retryDelay)
				continue
			}
			return result.Failf("status %d not in accepted set %v", resp.StatusCode, expected)
		}

		result.AddDetailf("status: %d", resp.StatusCode)

		if c.JSONPath != "" {
			if failed := c.checkJSONPath(respBody, &result); failed {
				return result
			}
		}

		return result.Pass()
	}

	return result.Failf("unreachable")
}

func (c *Check) checkJSONPath(body string, result *check.Result) bool {
	path, expectedValue, hasExpectedValue := strings.Cut(c.JSONPath, "=")
	value := gjson.Get(body, path)
	if !value.Exists() {
		result.Failf("JSON path %q not found in response", path)
		return true
	}
	if hasExpectedValue && value.String() != expectedValue {
		result.Failf("JSON path %q = %q, expected %q", path, value.String(), expectedValue)
		return true
	}
	result.AddDetailf("json %s: %s", path, value.String())
	return false
}

func statusAccepted(status int, accepted []int) bool {
	for _, s := range accepted {
		if status == s {
			return true
		}
	}
	return false
}
