package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sparclabs/sparc/internal/models"
)

const tweetCharLimit = 280

// TwitterAdapter posts content through the tweet-creation API.
type TwitterAdapter struct {
	baseURL     string
	bearerToken string
	httpClient  *http.Client
	logger      *slog.Logger
}

// NewTwitterAdapter creates a new Twitter adapter
func NewTwitterAdapter(bearerToken string, logger *slog.Logger) *TwitterAdapter {
	return &TwitterAdapter{
		baseURL:     "https://api.twitter.com",
		bearerToken: bearerToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger.With("component", "twitter"),
	}
}

type tweetRequest struct {
	Text string `json:"text"`
}

type tweetResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
	Title  string `json:"title,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// Deliver posts the delivery text as a single tweet and returns the tweet
// ID. One attempt per call; errors surface as DeliveryError.
func (a *TwitterAdapter) Deliver(ctx context.Context, d *Delivery) (string, error) {
	if a.bearerToken == "" {
		return "", &DeliveryError{Platform: models.PlatformTwitter, Message: "twitter credentials not configured"}
	}

	text := composeTweet(d.Text, d.Hashtags)

	data, err := json.Marshal(tweetRequest{Text: text})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/2/tweets", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+a.bearerToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", &DeliveryError{Platform: models.PlatformTwitter, Message: err.Error()}
	}
	defer resp.Body.Close()

	var result tweetResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &DeliveryError{Platform: models.PlatformTwitter, Message: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}

	if resp.StatusCode >= 400 {
		return "", &DeliveryError{Platform: models.PlatformTwitter, Message: tweetErrorMessage(resp.StatusCode, &result)}
	}

	if result.Data.ID == "" {
		return "", &DeliveryError{Platform: models.PlatformTwitter, Message: "no tweet id in response"}
	}

	a.logger.Info("tweet posted", "tweet_id", result.Data.ID, "chars", utf8.RuneCountInString(text))
	return result.Data.ID, nil
}

func tweetErrorMessage(status int, resp *tweetResponse) string {
	detail := resp.Detail
	if detail == "" {
		detail = resp.Title
	}

	switch {
	case status == http.StatusUnauthorized:
		return "authentication failed: " + detail
	case status == http.StatusTooManyRequests:
		return "rate limit reached: " + detail
	case strings.Contains(strings.ToLower(detail), "duplicate"):
		return "duplicate content: " + detail
	case detail != "":
		return detail
	default:
		return fmt.Sprintf("HTTP %d", status)
	}
}

// composeTweet appends hashtags that fit within the character limit, then
// truncates as a last resort. The limit counts runes, not bytes.
func composeTweet(text string, hashtags []string) string {
	chars := utf8.RuneCountInString(text)
	for _, tag := range hashtags {
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		tagChars := utf8.RuneCountInString(tag)
		if chars+tagChars+1 > tweetCharLimit {
			break
		}
		text += " " + tag
		chars += tagChars + 1
	}

	if runes := []rune(text); len(runes) > tweetCharLimit {
		text = string(runes[:tweetCharLimit])
	}
	return text
}
