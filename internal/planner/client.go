package planner

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/nutrikit/nutriplan/internal/logging"
)

const (
	// DefaultTimeout is the default HTTP request timeout. Plan computation
	// can take several seconds on first request while the backend loads its
	// models, so this is generous.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the default number of retry attempts for failed requests
	DefaultMaxRetries = 3

	// DefaultRetryDelay is the default delay between retry attempts
	DefaultRetryDelay = 1 * time.Second

	// DefaultMaxRetryDelay is the maximum delay for exponential backoff
	DefaultMaxRetryDelay = 30 * time.Second

	// DefaultCacheDuration is how long fetched recipe details stay valid
	DefaultCacheDuration = 5 * time.Minute
)

// Client is an HTTP client for a Nutriplan backend service
type Client struct {
	// BaseURL is the base URL for the backend (e.g., "http://192.168.1.50:5000")
	BaseURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// MaxRetries is the maximum number of retry attempts for failed requests
	MaxRetries int

	// RetryDelay is the initial delay between retry attempts
	RetryDelay time.Duration

	// MaxRetryDelay is the maximum delay for exponential backoff
	MaxRetryDelay time.Duration

	// UseExponentialBackoff enables exponential backoff for retries
	UseExponentialBackoff bool

	// CacheDuration is how long to cache recipe details (0 = no cache)
	CacheDuration time.Duration

	// cachedRecipes holds fetched recipe details keyed by recipe ID
	cachedRecipes map[int]cachedRecipe

	// cacheMutex protects the cache fields
	cacheMutex sync.RWMutex
}

type cachedRecipe struct {
	recipe  *Recipe
	fetched time.Time
}

// NewClient creates a new backend client
// baseURL: Full base URL (e.g., "http://192.168.1.50:5000")
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:               strings.TrimRight(baseURL, "/"),
		HTTPClient:            &http.Client{Timeout: DefaultTimeout},
		MaxRetries:            DefaultMaxRetries,
		RetryDelay:            DefaultRetryDelay,
		MaxRetryDelay:         DefaultMaxRetryDelay,
		UseExponentialBackoff: true, // Enable by default
		CacheDuration:         DefaultCacheDuration,
		cachedRecipes:         make(map[int]cachedRecipe),
	}
}

// NewClientWithHostPort creates a new client from a host and port
func NewClientWithHostPort(host string, port int) *Client {
	return NewClient(fmt.Sprintf("http://%s:%d", host, port))
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// SetRetry configures retry behavior
func (c *Client) SetRetry(maxRetries int, retryDelay time.Duration) {
	c.MaxRetries = maxRetries
	c.RetryDelay = retryDelay
}

// Ping performs a simple health check on the backend
// Returns nil if the backend is reachable and responding
func (c *Client) Ping() error {
	req, err := http.NewRequest("GET", c.BaseURL+"/", nil)
	if err != nil {
		return NewNetworkError("failed to create ping request", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return NewNetworkError("backend unreachable", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return NewHTTPError(resp.StatusCode, fmt.Sprintf("unexpected status code: %d", resp.StatusCode))
	}

	return nil
}

// SubmitPlan posts the plan request and returns the computed plan.
// Transient failures are retried with exponential backoff; client errors
// (bad values, parse failures) are returned immediately.
func (c *Client) SubmitPlan(request *PlanRequest) (*PlanResult, error) {
	var lastErr error
	currentDelay := c.RetryDelay

	// Retry loop with exponential backoff
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(currentDelay)

			// Exponential backoff
			if c.UseExponentialBackoff {
				currentDelay *= 2
				if currentDelay > c.MaxRetryDelay {
					currentDelay = c.MaxRetryDelay
				}
			}
		}

		logging.LogRequest("POST", c.BaseURL+"/", attempt+1)

		result, err := c.submitPlanAttempt(request)
		if err == nil {
			logging.LogSubmission(c.BaseURL, request.Goal, request.Duration)
			return result, nil
		}

		lastErr = err

		// Don't retry non-retryable errors
		if !IsRetryable(err) {
			return nil, err
		}
	}

	return nil, lastErr
}

// submitPlanAttempt performs a single plan submission
func (c *Client) submitPlanAttempt(request *PlanRequest) (*PlanResult, error) {
	formData := request.ToFormData()

	req, err := http.NewRequest("POST", c.BaseURL+"/", strings.NewReader(formData.Encode()))
	if err != nil {
		return nil, NewNetworkError("failed to create POST request", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, NewNetworkError("POST request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, NewHTTPError(resp.StatusCode, fmt.Sprintf("plan request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewNetworkError("failed to read response body", err)
	}

	logging.LogResponse(c.BaseURL+"/", resp.StatusCode, len(body))

	result, err := ParsePlanResult(body)
	if err != nil {
		return nil, NewParseError("failed to parse plan response", err)
	}

	return result, nil
}

// GetRecipe retrieves one recipe's full details by ID.
// Uses cached details if available and fresh.
func (c *Client) GetRecipe(id int) (*Recipe, error) {
	// Check cache first (if caching is enabled)
	if c.CacheDuration > 0 {
		c.cacheMutex.RLock()
		if entry, ok := c.cachedRecipes[id]; ok && time.Since(entry.fetched) < c.CacheDuration {
			cached := *entry.recipe
			c.cacheMutex.RUnlock()
			return &cached, nil
		}
		c.cacheMutex.RUnlock()
	}

	var lastErr error
	currentDelay := c.RetryDelay

	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(currentDelay)

			if c.UseExponentialBackoff {
				currentDelay *= 2
				if currentDelay > c.MaxRetryDelay {
					currentDelay = c.MaxRetryDelay
				}
			}
		}

		recipe, err := c.getRecipeAttempt(id)
		if err == nil {
			// Update cache
			if c.CacheDuration > 0 {
				c.cacheMutex.Lock()
				c.cachedRecipes[id] = cachedRecipe{recipe: recipe, fetched: time.Now()}
				c.cacheMutex.Unlock()
			}
			return recipe, nil
		}

		lastErr = err

		if !IsRetryable(err) {
			return nil, err
		}
	}

	return nil, lastErr
}

// getRecipeAttempt performs a single recipe fetch
func (c *Client) getRecipeAttempt(id int) (*Recipe, error) {
	url := fmt.Sprintf("%s/recipe/%d", c.BaseURL, id)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, NewNetworkError("failed to create GET request", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, NewNetworkError("GET request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, NewHTTPError(http.StatusNotFound, fmt.Sprintf("recipe %d not found", id))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, NewHTTPError(resp.StatusCode, fmt.Sprintf("unexpected status code: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewNetworkError("failed to read response body", err)
	}

	logging.LogResponse(url, resp.StatusCode, len(body))

	cleanedBody, err := ExtractJSON(body)
	if err != nil {
		return nil, NewParseError("failed to locate recipe document", err)
	}

	var recipe Recipe
	if err := json.Unmarshal(cleanedBody, &recipe); err != nil {
		return nil, NewParseError("failed to parse recipe response", err)
	}

	return &recipe, nil
}

// InvalidateCache clears cached recipe details, forcing fresh fetches
func (c *Client) InvalidateCache() {
	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()
	c.cachedRecipes = make(map[int]cachedRecipe)
}

// SetCacheDuration sets the cache validity duration
// Set to 0 to disable caching entirely
func (c *Client) SetCacheDuration(duration time.Duration) {
	c.CacheDuration = duration
	if duration == 0 {
		// Disable caching - clear cache
		c.InvalidateCache()
	}
}
