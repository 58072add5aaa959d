package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// QuestionDTO is the remote catalog's wire format for one question.
type QuestionDTO struct {
	ID              int      `json:"id"`
	ExamID          string   `json:"examId"`
	QuestionText    string   `json:"questionText"`
	QuestionAnswers []string `json:"questionAnswers"`
	CorrectAnswer   string   `json:"correctAnswer"`
	Subject         string   `json:"subject"`
}

// FetchError is returned when the catalog fetch fails, so the caller can
// distinguish "server unreachable" from "server returned garbage."
type FetchError struct {
	Reason  string
	Wrapped error
}

func (e *FetchError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("question fetch failed: %s: %v", e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("question fetch failed: %s", e.Reason)
}

func (e *FetchError) Unwrap() error {
	return e.Wrapped
}

// Client fetches the remote question catalog.
type Client struct {
	url    string       // full URL of the questions JSON document
	client *http.Client // reused across calls
}

// NewClient creates a catalog client for the given URL.
func NewClient(url string) *Client {
	return &Client{
		url: url,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchQuestions downloads and decodes the full question catalog.
func (c *Client) FetchQuestions(ctx context.Context) ([]QuestionDTO, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &FetchError{Reason: "building request", Wrapped: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &FetchError{Reason: "request failed", Wrapped: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &FetchError{Reason: fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, body)}
	}

	var questions []QuestionDTO
	if err := json.NewDecoder(resp.Body).Decode(&questions); err != nil {
		return nil, &FetchError{Reason: "decoding response", Wrapped: err}
	}
	return questions, nil
}
