// Package github implements the issue-tracker client: paginated listing,
// single-issue fetch, and the comment/label write calls used for automated
// responses.
package github

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"triagebot/internal/domain"
	"triagebot/internal/httpx"
)

const (
	defaultBaseURL = "https://api.github.com"
	perPage        = 100

	maxAttempts    = 3
	initialBackoff = time.Second
)

type Client struct {
	token   string
	repo    string // "owner/name"
	baseURL string
	http    *http.Client
}

func NewClient(token, repo string) *Client {
	return &Client{
		token:   token,
		repo:    repo,
		baseURL: defaultBaseURL,
		http:    httpx.ExternalClient(),
	}
}

// NewClientWithBaseURL is used by tests to point the client at a local server.
func NewClientWithBaseURL(token, repo, baseURL string, httpClient *http.Client) *Client {
	return &Client{token: token, repo: repo, baseURL: baseURL, http: httpClient}
}

type issueItem struct {
	Number    int64           `json:"number"`
	Title     string          `json:"title"`
	Body      string          `json:"body"`
	State     string          `json:"state"`
	CreatedAt string          `json:"created_at"`
	ClosedAt  string          `json:"closed_at"`
	User      userRef         `json:"user"`
	Assignees []userRef       `json:"assignees"`
	Labels    []labelRef      `json:"labels"`
	Reactions *reactionCounts `json:"reactions"`
	Comments  int             `json:"comments"`
	// Present only when the item is actually a pull request; such items
	// are excluded from triage.
	PullRequest *json.RawMessage `json:"pull_request"`
}

type userRef struct {
	Login string `json:"login"`
}

type labelRef struct {
	Name string `json:"name"`
}

type reactionCounts struct {
	TotalCount int `json:"total_count"`
}

// ListIssues fetches issues of the given state ("open", "closed", "all")
// updated since the given time, following pagination until a short page.
// Pull requests are filtered out.
func (c *Client) ListIssues(state string, since time.Time) ([]domain.Issue, error) {
	var issues []domain.Issue
	page := 1

	for {
		q := url.Values{}
		q.Set("state", state)
		q.Set("per_page", fmt.Sprintf("%d", perPage))
		q.Set("page", fmt.Sprintf("%d", page))
		q.Set("sort", "created")
		q.Set("direction", "desc")
		if !since.IsZero() {
			q.Set("since", since.UTC().Format(time.RFC3339))
		}
		apiURL := fmt.Sprintf("%s/repos/%s/issues?%s", c.baseURL, c.repo, q.Encode())

		body, err := c.doWithRetry("GET", apiURL, nil)
		if err != nil {
			return nil, fmt.Errorf("listing issues page %d: %w", page, err)
		}

		var items []issueItem
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, fmt.Errorf("parsing issues page %d: %w", page, err)
		}

		for _, item := range items {
			if item.PullRequest != nil {
				continue
			}
			issues = append(issues, convertIssue(item))
		}

		if len(items) < perPage {
			break
		}
		page++
	}

	return issues, nil
}

// GetIssue fetches a single issue by number.
func (c *Client) GetIssue(number int64) (domain.Issue, error) {
	apiURL := fmt.Sprintf("%s/repos/%s/issues/%d", c.baseURL, c.repo, number)
	body, err := c.doWithRetry("GET", apiURL, nil)
	if err != nil {
		return domain.Issue{}, fmt.Errorf("getting issue #%d: %w", number, err)
	}
	var item issueItem
	if err := json.Unmarshal(body, &item); err != nil {
		return domain.Issue{}, fmt.Errorf("parsing issue #%d: %w", number, err)
	}
	return convertIssue(item), nil
}

// PostComment posts the response body as an issue comment.
func (c *Client) PostComment(number int64, text string) error {
	apiURL := fmt.Sprintf("%s/repos/%s/issues/%d/comments", c.baseURL, c.repo, number)
	payload, err := json.Marshal(map[string]string{"body": text})
	if err != nil {
		return fmt.Errorf("encoding comment: %w", err)
	}
	if _, err := c.doWithRetry("POST", apiURL, payload); err != nil {
		return fmt.Errorf("posting comment on #%d: %w", number, err)
	}
	return nil
}

// AddLabels appends labels to the issue. Existing labels are kept; GitHub
// ignores duplicates.
func (c *Client) AddLabels(number int64, labels []string) error {
	if len(labels) == 0 {
		return nil
	}
	apiURL := fmt.Sprintf("%s/repos/%s/issues/%d/labels", c.baseURL, c.repo, number)
	payload, err := json.Marshal(map[string][]string{"labels": labels})
	if err != nil {
		return fmt.Errorf("encoding labels: %w", err)
	}
	if _, err := c.doWithRetry("POST", apiURL, payload); err != nil {
		return fmt.Errorf("adding labels on #%d: %w", number, err)
	}
	return nil
}

// doWithRetry executes the request, retrying transport errors and 429/5xx
// responses with doubling backoff. 4xx responses fail immediately.
func (c *Client) doWithRetry(method, apiURL string, payload []byte) ([]byte, error) {
	var lastErr error
	backoff := initialBackoff

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			log.Printf("github retry attempt=%d url=%s after error: %v", attempt, apiURL, lastErr)
			time.Sleep(backoff)
			backoff *= 2
		}

		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}
		req, err := http.NewRequest(method, apiURL, reqBody)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", "application/vnd.github+json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("executing request: %w", err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("reading response: %w", err)
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return body, nil
		}
		lastErr = fmt.Errorf("GitHub API returned %d: %s", resp.StatusCode, string(body))
		if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode < 500 {
			return nil, lastErr
		}
	}

	return nil, fmt.Errorf("after %d attempts: %w", maxAttempts, lastErr)
}

func convertIssue(item issueItem) domain.Issue {
	createdAt, err := time.Parse(time.RFC3339, item.CreatedAt)
	if err != nil {
		log.Printf("issue #%d: unparseable created_at %q: %v", item.Number, item.CreatedAt, err)
	}
	var closedAt time.Time
	if item.ClosedAt != "" {
		closedAt, err = time.Parse(time.RFC3339, item.ClosedAt)
		if err != nil {
			log.Printf("issue #%d: unparseable closed_at %q: %v", item.Number, item.ClosedAt, err)
		}
	}

	var labels []string
	for _, l := range item.Labels {
		labels = append(labels, l.Name)
	}
	var assignees []string
	for _, a := range item.Assignees {
		assignees = append(assignees, a.Login)
	}

	reactions := 0
	if item.Reactions != nil {
		reactions = item.Reactions.TotalCount
	}

	return domain.Issue{
		Number:        item.Number,
		Title:         item.Title,
		Body:          item.Body,
		State:         item.State,
		Labels:        labels,
		Author:        item.User.Login,
		Assignees:     assignees,
		CreatedAt:     createdAt,
		ClosedAt:      closedAt,
		ReactionCount: reactions,
		CommentCount:  item.Comments,
	}
}
