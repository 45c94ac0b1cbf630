package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"postcare-ai-be/internal/agent/tool"
	"postcare-ai-be/internal/constant"
	"postcare-ai-be/pkg/llm"
	"postcare-ai-be/pkg/rag"
	"postcare-ai-be/pkg/store"
)

// Clinical answers medical questions grounded in the reference corpus, with
// web search as fallback. Every reply carries the disclaimer.
type Clinical struct {
	llm       llm.LLMProvider
	retrieval *tool.MedicalRetrieval
	search    *tool.WebSearch
}

func NewClinical(provider llm.LLMProvider, retrieval *tool.MedicalRetrieval, search *tool.WebSearch) *Clinical {
	return &Clinical{
		llm:       provider,
		retrieval: retrieval,
		search:    search,
	}
}

func (c *Clinical) Name() string {
	return constant.AgentClinical
}

func (c *Clinical) Respond(ctx context.Context, session *store.Session, message string) (*Output, error) {
	out := &Output{Source: SourceConversation}

	grounding, ok := c.gatherGrounding(ctx, message, out)
	if !ok {
		// Both the corpus and every search provider came up empty-handed.
		out.Text = withDisclaimer(constant.SearchUnavailableMessage)
		return out, nil
	}

	question := message
	if grounding != "" {
		question = fmt.Sprintf("%s\n\nContext from %s sources:\n%s", message, out.Source, grounding)
	}

	messages := buildMessages(constant.ClinicalSystemPrompt, session, question)
	raw, err := c.llm.Chat(ctx, messages, llm.WithTemperature(constant.ClinicalTemperature))
	if err != nil {
		return nil, fmt.Errorf("clinical chat failed: %w", err)
	}

	text, signal := ExtractSignal(raw)
	out.Signal = signal

	if signal.Type == SignalRouteToReceptionist {
		out.Text = text
		return out, nil
	}

	if text == "" {
		text = "I wasn't able to put together an answer for that. Could you rephrase your question?"
	}
	out.Text = withDisclaimer(text)
	return out, nil
}

// gatherGrounding fills out.Source and out.Citations and returns the context
// block for the model. The corpus is consulted first; anything below the
// similarity bar falls through to web search. The second return value is
// false only when no source could contribute anything.
func (c *Clinical) gatherGrounding(ctx context.Context, query string, out *Output) (string, bool) {
	results, err := c.retrieval.Retrieve(ctx, query)

	call := ToolCall{
		Name:    c.retrieval.Name(),
		Input:   query,
		Success: err == nil,
	}

	if err == nil && c.retrieval.Grounded(results) {
		call.OutputSummary = fmt.Sprintf("%d chunks, best similarity %.2f", len(results), results[0].Similarity)
		out.ToolCalls = append(out.ToolCalls, call)
		out.Source = SourceCorpus

		var b strings.Builder
		seen := map[string]bool{}
		for _, r := range results {
			fmt.Fprintf(&b, "[%s]\n%s\n\n", r.Citation, r.Text)
			if !seen[r.Citation] {
				seen[r.Citation] = true
				out.Citations = append(out.Citations, r.Citation)
			}
		}
		return b.String(), true
	}

	switch {
	case err == nil:
		call.OutputSummary = "below similarity threshold"
	case errors.Is(err, rag.ErrIndexEmpty):
		call.OutputSummary = "index empty"
	default:
		call.OutputSummary = err.Error()
	}
	out.ToolCalls = append(out.ToolCalls, call)

	return c.gatherWebGrounding(ctx, query, out)
}

func (c *Clinical) gatherWebGrounding(ctx context.Context, query string, out *Output) (string, bool) {
	results, err := c.search.Search(ctx, query)

	call := ToolCall{
		Name:    c.search.Name(),
		Input:   query,
		Success: err == nil,
	}

	if err != nil || len(results) == 0 {
		if err != nil {
			call.OutputSummary = err.Error()
		} else {
			call.OutputSummary = "no results"
		}
		out.ToolCalls = append(out.ToolCalls, call)
		return "", false
	}

	call.OutputSummary = fmt.Sprintf("%d results", len(results))
	out.ToolCalls = append(out.ToolCalls, call)
	out.Source = SourceWeb

	var b strings.Builder
	for _, r := range results {
		fmt.Fprintf(&b, "[%s](%s)\n%s\n\n", r.Title, r.URL, r.Snippet)
		out.Citations = append(out.Citations, r.URL)
	}
	return b.String(), true
}

func withDisclaimer(text string) string {
	return text + "\n\n" + constant.ClinicalDisclaimer
}
