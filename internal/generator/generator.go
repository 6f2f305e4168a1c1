package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/sparclabs/sparc/internal/models"
)

const systemPrompt = "You are an expert marketing content creator."

const twitterCharLimit = 280

// Completer is the single blocking call to the external text-generation
// service.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Result is generated text plus the hashtags the model suggested for it.
type Result struct {
	Text     string   `json:"text"`
	Hashtags []string `json:"hashtags"`
}

// Generator builds prompts from persona and campaign inputs and parses the
// completion responses.
type Generator struct {
	completer Completer
	logger    *slog.Logger
}

// New creates a new content generator
func New(completer Completer, logger *slog.Logger) *Generator {
	return &Generator{
		completer: completer,
		logger:    logger.With("component", "generator"),
	}
}

// Generate produces campaign content for a persona. The call blocks until
// the external service answers or fails; failures surface to the caller
// unretried.
func (g *Generator) Generate(ctx context.Context, persona *models.Persona, goal, contentType, tone string, keywords []string) (*Result, error) {
	if strings.TrimSpace(goal) == "" {
		return nil, models.Validationf("goal", "is required")
	}

	prompt := buildPrompt(persona, goal, contentType, tone, keywords)

	text, err := g.completer.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	body, hashtags := splitHashtags(text)
	g.logger.Debug("content generated", "content_type", contentType, "tone", tone, "chars", utf8.RuneCountInString(body), "hashtags", len(hashtags))

	return &Result{Text: body, Hashtags: hashtags}, nil
}

// OptimizeForTwitter rewrites content to fit the tweet character limit,
// weaving in the given hashtags. The limit is enforced by truncation as a
// backstop when the model overruns it.
func (g *Generator) OptimizeForTwitter(ctx context.Context, content string, hashtags []string) (string, error) {
	prompt := fmt.Sprintf(`Rewrite the following content for Twitter (max %d characters).
Make it engaging and concise. Include these hashtags where appropriate: %s

Original content:
%s`, twitterCharLimit, strings.Join(hashtags, " "), content)

	text, err := g.completer.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if runes := []rune(text); len(runes) > twitterCharLimit {
		text = string(runes[:twitterCharLimit])
	}
	return text, nil
}

// Email holds content reformatted for an email send.
type Email struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// FormatEmail rewrites content as a professional email, extracting the
// subject line the model produced.
func (g *Generator) FormatEmail(ctx context.Context, content string) (*Email, error) {
	prompt := fmt.Sprintf(`Rewrite the following content as a professional email.
Include a subject line, greeting, body, and signature.
Make it engaging and professional.

Original content:
%s`, content)

	text, err := g.completer.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	subject := "New Campaign Update"
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "Subject:") {
			subject = strings.TrimSpace(strings.TrimPrefix(line, "Subject:"))
			break
		}
	}

	return &Email{Subject: subject, Body: text}, nil
}

func buildPrompt(persona *models.Persona, goal, contentType, tone string, keywords []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create %s content with the following specifications:\n\n", contentType)
	fmt.Fprintf(&b, "Campaign Goal: %s\n", goal)
	fmt.Fprintf(&b, "Target Audience: %s with %s experience\n", persona.Role, persona.Experience)
	if persona.Proficiency != "" {
		fmt.Fprintf(&b, "Technical Level: %s\n", persona.Proficiency)
	}
	fmt.Fprintf(&b, "Tone: %s\n", tone)
	if len(keywords) > 0 {
		fmt.Fprintf(&b, "Keywords to include: %s\n", strings.Join(keywords, ", "))
	}
	if persona.PainPoints != "" {
		fmt.Fprintf(&b, "Audience pain points: %s\n", persona.PainPoints)
	}

	b.WriteString(`
The content should be engaging, informative, and specifically tailored for
professionals in the data industry. Include relevant technical details while
maintaining the specified tone.

End your response with a single line starting with "Hashtags:" listing
suggested hashtags separated by spaces.`)

	return b.String()
}

// splitHashtags separates a trailing "Hashtags:" line from the body text.
func splitHashtags(text string) (string, []string) {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "Hashtags:") {
			break
		}

		tags := []string{}
		for _, tag := range strings.Fields(strings.TrimPrefix(line, "Hashtags:")) {
			tag = strings.TrimRight(tag, ",")
			if !strings.HasPrefix(tag, "#") {
				tag = "#" + tag
			}
			tags = append(tags, tag)
		}

		body := strings.TrimSpace(strings.Join(lines[:i], "\n"))
		return body, tags
	}

	return strings.TrimSpace(text), []string{}
}
