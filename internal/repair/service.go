package repair

import (
	"context"
	"fmt"
	"strings"

	"jsonkit/api/internal/convert"
	"jsonkit/api/internal/diff"
)

// Client is the completion boundary; the Gemini implementation
// satisfies it, tests substitute a canned one.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

const repairInstruction = "The following text is intended to be JSON but does not parse. " +
	"Fix the syntax errors while changing as little as possible. " +
	"Do not add, remove, or rename fields. Respond with only the corrected JSON."

// Outcome is a successful repair: the candidate text the model
// produced (fences stripped) and the positional line changes against
// the original input.
type Outcome struct {
	Repaired string
	Changes  []diff.Change
}

// Service orchestrates one repair round trip. It holds no state beyond
// the client and is safe for concurrent use.
type Service struct {
	client Client
}

func NewService(client Client) *Service {
	return &Service{client: client}
}

// Repair sends the broken input to the model, strips any surrounding
// code fences from the completion, and verifies the candidate parses
// as JSON. The returned change list uses positional line comparison:
// an inserted line marks every following line as changed.
func (s *Service) Repair(ctx context.Context, content string) (Outcome, error) {
	raw, err := s.client.Complete(ctx, repairInstruction+"\n\n"+content)
	if err != nil {
		return Outcome{}, err
	}

	candidate := StripFences(raw)
	if _, err := convert.Parse(candidate); err != nil {
		return Outcome{}, fmt.Errorf("model output is not valid JSON: %w", err)
	}

	return Outcome{
		Repaired: candidate,
		Changes:  diff.Lines(content, candidate),
	}, nil
}

// StripFences removes a surrounding Markdown code fence (with or
// without a language tag) from a model completion.
func StripFences(s string) string {
	t := strings.TrimSpace(s)
	if strings.HasPrefix(t, "```") {
		if i := strings.IndexByte(t, '\n'); i >= 0 {
			t = t[i+1:]
		} else {
			t = strings.TrimPrefix(t, "```")
		}
	}
	t = strings.TrimSpace(t)
	if strings.HasSuffix(t, "```") {
		t = strings.TrimSpace(strings.TrimSuffix(t, "```"))
	}
	return t
}
