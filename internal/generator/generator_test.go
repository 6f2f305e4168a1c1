package generator

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sparclabs/sparc/internal/models"
)

// fakeCompleter returns a canned response and records the prompt it saw.
type fakeCompleter struct {
	response string
	err      error
	system   string
	prompt   string
}

func (f *fakeCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	f.system = system
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newTestGenerator(fake *fakeCompleter) *Generator {
	return New(fake, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testPersona() *models.Persona {
	return &models.Persona{
		Name:        "Sarah",
		Role:        "Data Engineer",
		Experience:  "5-10 years",
		Proficiency: "advanced",
		PainPoints:  "pipeline reliability",
	}
}

func TestGenerateSplitsHashtags(t *testing.T) {
	fake := &fakeCompleter{response: "Great content about data pipelines.\n\nHashtags: #data #pipelines"}
	g := newTestGenerator(fake)

	result, err := g.Generate(context.Background(), testPersona(), "drive signups", models.ContentTypeProduct, "professional", []string{"etl"})
	if err != nil {
		t.Fatalf("failed to generate: %v", err)
	}

	if result.Text != "Great content about data pipelines." {
		t.Errorf("unexpected body: %q", result.Text)
	}
	if len(result.Hashtags) != 2 {
		t.Fatalf("expected 2 hashtags, got %d", len(result.Hashtags))
	}
	if result.Hashtags[0] != "#data" || result.Hashtags[1] != "#pipelines" {
		t.Errorf("unexpected hashtags: %v", result.Hashtags)
	}
}

func TestGeneratePromptContents(t *testing.T) {
	fake := &fakeCompleter{response: "content"}
	g := newTestGenerator(fake)

	_, err := g.Generate(context.Background(), testPersona(), "drive signups", models.ContentTypeLeadership, "casual", []string{"etl", "sql"})
	if err != nil {
		t.Fatalf("failed to generate: %v", err)
	}

	if fake.system != systemPrompt {
		t.Errorf("unexpected system prompt: %q", fake.system)
	}
	for _, want := range []string{
		"Campaign Goal: drive signups",
		"Data Engineer with 5-10 years experience",
		"Technical Level: advanced",
		"Tone: casual",
		"Keywords to include: etl, sql",
		"pipeline reliability",
	} {
		if !strings.Contains(fake.prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestGenerateRequiresGoal(t *testing.T) {
	g := newTestGenerator(&fakeCompleter{response: "content"})

	_, err := g.Generate(context.Background(), testPersona(), "  ", models.ContentTypeProduct, "professional", nil)
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGeneratePropagatesErrors(t *testing.T) {
	fake := &fakeCompleter{err: ErrUpstreamUnavailable}
	g := newTestGenerator(fake)

	_, err := g.Generate(context.Background(), testPersona(), "goal", models.ContentTypeProduct, "professional", nil)
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestOptimizeForTwitterTruncates(t *testing.T) {
	long := strings.Repeat("x", 400)
	fake := &fakeCompleter{response: long}
	g := newTestGenerator(fake)

	text, err := g.OptimizeForTwitter(context.Background(), "original", []string{"#launch"})
	if err != nil {
		t.Fatalf("failed to optimize: %v", err)
	}
	if len(text) != twitterCharLimit {
		t.Errorf("expected %d chars, got %d", twitterCharLimit, len(text))
	}

	if !strings.Contains(fake.prompt, "#launch") {
		t.Error("prompt should include the hashtags")
	}
	if !strings.Contains(fake.prompt, "original") {
		t.Error("prompt should include the original content")
	}
}

func TestOptimizeForTwitterCountsRunes(t *testing.T) {
	// 150 characters of multibyte text is within the limit even though it
	// is 450 bytes; it must pass through untouched.
	fits := strings.Repeat("日", 150)
	g := newTestGenerator(&fakeCompleter{response: fits})

	text, err := g.OptimizeForTwitter(context.Background(), "original", nil)
	if err != nil {
		t.Fatalf("failed to optimize: %v", err)
	}
	if text != fits {
		t.Errorf("expected %d-char text untouched, got %d runes", 150, utf8.RuneCountInString(text))
	}

	g = newTestGenerator(&fakeCompleter{response: strings.Repeat("日", 300)})
	text, err = g.OptimizeForTwitter(context.Background(), "original", nil)
	if err != nil {
		t.Fatalf("failed to optimize: %v", err)
	}
	if got := utf8.RuneCountInString(text); got != twitterCharLimit {
		t.Errorf("expected %d runes, got %d", twitterCharLimit, got)
	}
	if !utf8.ValidString(text) {
		t.Error("truncation produced invalid UTF-8")
	}
}

func TestFormatEmailExtractsSubject(t *testing.T) {
	fake := &fakeCompleter{response: "Subject: Big Launch News\n\nHi there,\n\nWe shipped.\n\nBest,\nThe Team"}
	g := newTestGenerator(fake)

	email, err := g.FormatEmail(context.Background(), "we shipped")
	if err != nil {
		t.Fatalf("failed to format email: %v", err)
	}
	if email.Subject != "Big Launch News" {
		t.Errorf("expected extracted subject, got %q", email.Subject)
	}
	if !strings.Contains(email.Body, "We shipped.") {
		t.Errorf("unexpected body: %q", email.Body)
	}
}

func TestFormatEmailDefaultSubject(t *testing.T) {
	fake := &fakeCompleter{response: "Hi there, no subject line here."}
	g := newTestGenerator(fake)

	email, err := g.FormatEmail(context.Background(), "content")
	if err != nil {
		t.Fatalf("failed to format email: %v", err)
	}
	if email.Subject != "New Campaign Update" {
		t.Errorf("expected default subject, got %q", email.Subject)
	}
}

func TestSplitHashtags(t *testing.T) {
	cases := []struct {
		name     string
		in       string
		wantBody string
		wantTags []string
	}{
		{"trailing line", "Body text.\nHashtags: #a #b", "Body text.", []string{"#a", "#b"}},
		{"no hashtags", "Body text only.", "Body text only.", []string{}},
		{"missing hash prefix", "Body.\nHashtags: data cloud", "Body.", []string{"#data", "#cloud"}},
		{"comma separated", "Body.\nHashtags: #a, #b,", "Body.", []string{"#a", "#b"}},
		{"blank lines between", "Body.\n\nHashtags: #x\n\n", "Body.", []string{"#x"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, tags := splitHashtags(tc.in)
			if body != tc.wantBody {
				t.Errorf("expected body %q, got %q", tc.wantBody, body)
			}
			if len(tags) != len(tc.wantTags) {
				t.Fatalf("expected %d tags, got %v", len(tc.wantTags), tags)
			}
			for i := range tags {
				if tags[i] != tc.wantTags[i] {
					t.Errorf("tag %d: expected %s, got %s", i, tc.wantTags[i], tags[i])
				}
			}
		})
	}
}
