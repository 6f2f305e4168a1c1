package publish

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestTwitterAdapter(t *testing.T, handler http.HandlerFunc) *TwitterAdapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	a := NewTwitterAdapter("token", testLogger())
	a.baseURL = srv.URL
	return a
}

func TestTwitterDeliver(t *testing.T) {
	var gotAuth string
	var gotReq tweetRequest

	a := newTestTwitterAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2/tweets" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"id":"1234567890"}}`))
	})

	ref, err := a.Deliver(context.Background(), &Delivery{
		Text:     "Launch day is here.",
		Hashtags: []string{"#launch", "#data"},
	})
	if err != nil {
		t.Fatalf("failed to deliver: %v", err)
	}
	if ref != "1234567890" {
		t.Errorf("expected tweet id, got %q", ref)
	}
	if gotAuth != "Bearer token" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotReq.Text != "Launch day is here. #launch #data" {
		t.Errorf("unexpected tweet text: %q", gotReq.Text)
	}
}

func TestTwitterDeliverNoToken(t *testing.T) {
	a := NewTwitterAdapter("", testLogger())

	_, err := a.Deliver(context.Background(), &Delivery{Text: "hi"})
	var de *DeliveryError
	if !errors.As(err, &de) {
		t.Fatalf("expected DeliveryError, got %v", err)
	}
	if !strings.Contains(de.Message, "credentials") {
		t.Errorf("unexpected message: %q", de.Message)
	}
}

func TestTwitterDeliverAPIErrors(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"title":"Unauthorized"}`, "authentication failed"},
		{"rate limited", http.StatusTooManyRequests, `{"title":"Too Many Requests"}`, "rate limit reached"},
		{"duplicate", http.StatusForbidden, `{"detail":"You are not allowed to create a Tweet with duplicate content."}`, "duplicate content"},
		{"no id", http.StatusCreated, `{"data":{}}`, "no tweet id"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := newTestTwitterAdapter(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})

			_, err := a.Deliver(context.Background(), &Delivery{Text: "hi"})
			var de *DeliveryError
			if !errors.As(err, &de) {
				t.Fatalf("expected DeliveryError, got %v", err)
			}
			if !strings.Contains(de.Message, tc.wantMsg) {
				t.Errorf("expected message containing %q, got %q", tc.wantMsg, de.Message)
			}
		})
	}
}

func TestComposeTweet(t *testing.T) {
	got := composeTweet("short text", []string{"#a", "b"})
	if got != "short text #a #b" {
		t.Errorf("unexpected tweet: %q", got)
	}

	// hashtags that do not fit are dropped, not truncated mid-tag
	long := strings.Repeat("x", 270)
	got = composeTweet(long, []string{"#fits", "#definitelytoolongtoappend"})
	if len(got) > tweetCharLimit {
		t.Errorf("tweet exceeds limit: %d chars", len(got))
	}
	if !strings.HasSuffix(got, "#fits") {
		t.Errorf("expected fitting hashtag kept, got %q", got[260:])
	}

	over := strings.Repeat("y", 300)
	got = composeTweet(over, nil)
	if len(got) != tweetCharLimit {
		t.Errorf("expected truncation to %d, got %d", tweetCharLimit, len(got))
	}
}

func TestComposeTweetCountsRunes(t *testing.T) {
	// 150 multibyte characters is 450 bytes but well under the limit
	fits := strings.Repeat("日", 150)
	got := composeTweet(fits, []string{"#データ"})
	if got != fits+" #データ" {
		t.Errorf("expected text and hashtag untouched, got %q", got)
	}

	got = composeTweet(strings.Repeat("日", 300), nil)
	if n := utf8.RuneCountInString(got); n != tweetCharLimit {
		t.Errorf("expected %d runes, got %d", tweetCharLimit, n)
	}
	if !utf8.ValidString(got) {
		t.Error("truncation produced invalid UTF-8")
	}

	// hashtag fitting counts runes too: 276 chars leave no room for a
	// 4-char tag plus separator
	got = composeTweet(strings.Repeat("日", 276), []string{"#データ"})
	if got != strings.Repeat("日", 276) {
		t.Errorf("expected oversized hashtag dropped, got %d runes", utf8.RuneCountInString(got))
	}
}
