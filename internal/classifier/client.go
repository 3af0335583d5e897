package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// ErrKind distinguishes the ways a classification call can fail.
type ErrKind int

const (
	// ErrKindTimeout covers bounded-wait expiry and connection failures.
	ErrKindTimeout ErrKind = iota
	// ErrKindUpstream covers non-success responses from the service.
	ErrKindUpstream
	// ErrKindBadResponse covers malformed bodies, including a missing label.
	ErrKindBadResponse
)

// Error is returned for every failed classification call.
type Error struct {
	Kind   ErrKind
	Status int // upstream HTTP status, when one was received
	cause  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrKindTimeout:
		return fmt.Sprintf("classification timed out: %v", e.cause)
	case ErrKindUpstream:
		return fmt.Sprintf("classifier responded %d", e.Status)
	default:
		return fmt.Sprintf("malformed classifier response: %v", e.cause)
	}
}

func (e *Error) Unwrap() error { return e.cause }

// Result is the classifier's verdict for one image. Features is owned by
// the external service and carried through verbatim; only a subset of its
// numeric fields is projected into storage.
type Result struct {
	Label    string         `json:"label"`
	Features map[string]any `json:"features"`
}

// Client calls the external classification service. It performs at most
// one attempt per image and never touches the database or filesystem.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for the service at baseURL. wait bounds the
// whole call; a hung classifier must not stall the request forever.
func NewClient(baseURL string, wait time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: wait},
	}
}

// Classify sends the stored image bytes as a multipart payload to the
// /classify endpoint and decodes the label and feature set.
func (c *Client) Classify(ctx context.Context, imageName string, image io.Reader) (*Result, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", imageName)
	if err != nil {
		return nil, &Error{Kind: ErrKindBadResponse, cause: err}
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, &Error{Kind: ErrKindBadResponse, cause: err}
	}
	if err := writer.Close(); err != nil {
		return nil, &Error{Kind: ErrKindBadResponse, cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify", &body)
	if err != nil {
		return nil, &Error{Kind: ErrKindBadResponse, cause: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Timeouts and refused connections land here; both mean the
		// collaborator was unavailable within the bounded wait.
		return nil, &Error{Kind: ErrKindTimeout, cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Kind: ErrKindUpstream, Status: resp.StatusCode}
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &Error{Kind: ErrKindBadResponse, Status: resp.StatusCode, cause: err}
	}
	if result.Label == "" {
		return nil, &Error{Kind: ErrKindBadResponse, Status: resp.StatusCode, cause: fmt.Errorf("response is missing label")}
	}
	return &result, nil
}
