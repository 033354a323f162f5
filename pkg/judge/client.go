package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds the whole submit-and-wait call.
const DefaultTimeout = 10 * time.Second

// Config describes how to reach the execution service.
type Config struct {
	// Host is the service host, e.g. "judge0-ce.p.rapidapi.com". A value
	// carrying an explicit scheme is used verbatim as the base URL.
	Host    string
	APIKey  string
	Timeout time.Duration
}

type httpClient struct {
	baseURL string
	host    string
	apiKey  string
	client  *http.Client
	logger  zerolog.Logger
}

// New constructs a Client that performs one synchronous submit-and-wait HTTP
// call per evaluation. No retries are attempted; retry policy belongs to the
// caller.
func New(cfg Config, logger zerolog.Logger) (Client, error) {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		return nil, fmt.Errorf("judge host must not be empty")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("judge api key must not be empty")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	baseURL := host
	if !strings.Contains(host, "://") {
		baseURL = "https://" + host
	}

	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		host:    strings.TrimPrefix(strings.TrimPrefix(host, "https://"), "http://"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With().Str("component", "judge_client").Logger(),
	}, nil
}

type submissionPayload struct {
	LanguageID     int     `json:"language_id"`
	SourceCode     string  `json:"source_code"`
	Stdin          string  `json:"stdin"`
	ExpectedOutput *string `json:"expected_output,omitempty"`
}

// Evaluate submits the code and blocks until the service responds or the
// timeout expires. Transport failures, non-2xx statuses and timeouts are all
// folded into an error-shaped Result.
func (c *httpClient) Evaluate(ctx context.Context, submission Submission) Result {
	payload := submissionPayload{
		LanguageID: submission.LanguageID,
		SourceCode: submission.SourceCode,
		Stdin:      submission.Stdin,
	}
	if submission.ExpectedOutput != "" {
		expected := submission.ExpectedOutput
		payload.ExpectedOutput = &expected
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return errorResult(fmt.Sprintf("encode submission: %v", err))
	}

	url := c.baseURL + "/submissions?base64_encoded=false&wait=true"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errorResult(fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("x-rapidapi-host", c.host)
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("content-type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Int("language_id", submission.LanguageID).Msg("judge call failed")
		return errorResult(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn().Int("status", resp.StatusCode).Msg("judge returned non-success status")
		return errorResult(fmt.Sprintf("judge responded with status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))))
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return errorResult(fmt.Sprintf("decode judge response: %v", err))
	}

	return result
}

func errorResult(message string) Result {
	return Result{Error: true, Message: message}
}
