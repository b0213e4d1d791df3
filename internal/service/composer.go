package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"k8s.io/klog/v2"

	"github.com/aura-assistant/backend/internal/repository"
)

// Section headers rendered into the composed prompt.
const (
	instructionsHeader = "\n\n--- Additional Instructions from Admin ---\n\n"
	suggestionsHeader  = "\n\n--- Additional Knowledge from User Suggestions ---\n\n"
)

// PromptComposer assembles the full instruction block sent to the model:
// active prompt, then approved instructions (oldest created first), then
// approved suggestions (oldest approved first). It never mutates the
// knowledge store.
type PromptComposer struct {
	prompts      repository.PromptRepository
	instructions repository.InstructionRepository
	suggestions  repository.SuggestionRepository
}

func NewPromptComposer(
	prompts repository.PromptRepository,
	instructions repository.InstructionRepository,
	suggestions repository.SuggestionRepository,
) *PromptComposer {
	return &PromptComposer{
		prompts:      prompts,
		instructions: instructions,
		suggestions:  suggestions,
	}
}

// Compose returns the composed prompt. Pending and rejected entries are never
// included. A failed instruction or suggestion read omits that section only;
// a failed prompt read falls back to DefaultPrompt. Compose itself never
// fails.
func (c *PromptComposer) Compose(ctx context.Context) string {
	var builder strings.Builder
	builder.WriteString(c.basePrompt(ctx))

	instructions, err := c.instructions.ListApproved(ctx)
	if err != nil {
		klog.Errorf("failed to fetch approved instructions: %v", err)
	} else if len(instructions) > 0 {
		builder.WriteString(instructionsHeader)
		for _, instruction := range instructions {
			builder.WriteString("* " + instruction.Content + "\n")
		}
	}

	suggestions, err := c.suggestions.ListApproved(ctx)
	if err != nil {
		klog.Errorf("failed to fetch approved suggestions: %v", err)
	} else if len(suggestions) > 0 {
		builder.WriteString(suggestionsHeader)
		// Raw interpolation: the question and reply go inside literal quotes
		// without escaping.
		for i, suggestion := range suggestions {
			builder.WriteString(fmt.Sprintf("%d. **If they ask \"%s\":**\n", i+1, suggestion.Question))
			builder.WriteString("   Suggested Response: \"" + suggestion.SuggestedReply + "\"\n\n")
		}
	}

	return builder.String()
}

func (c *PromptComposer) basePrompt(ctx context.Context) string {
	prompt, err := c.prompts.GetActive(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			klog.Errorf("failed to fetch active prompt: %v", err)
		}
		return DefaultPrompt
	}
	return prompt.Content
}
