// Package runner drives the smoke-test sequence against a
// chat-completion server and reports outcomes to a human operator.
// It is a diagnostic, not a library: every outcome is printed, nothing
// is returned to the caller beyond transport errors.
package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/arin/chatprobe/internal/api"
	"github.com/fatih/color"
)

const (
	// DefaultChatMessage is the single-turn prompt used by the full run.
	DefaultChatMessage = "What is 2 + 2? Answer in one word."

	// maxPrintedContent caps how much reply text is printed.
	maxPrintedContent = 200

	conversationSystem = "You are a helpful assistant. Be concise."
	conversationFirst  = "My name is Alice."
	conversationSecond = "What's my name?"
)

// Runner executes the endpoint checks in order and writes a
// human-readable report to out.
type Runner struct {
	client *api.Client
	out    io.Writer

	header *color.Color
	label  *color.Color
	dim    *color.Color
	bad    *color.Color
}

// New creates a runner that checks the server behind client and writes
// its report to out.
func New(client *api.Client, out io.Writer) *Runner {
	return &Runner{
		client: client,
		out:    out,
		header: color.New(color.FgCyan, color.Bold),
		label:  color.New(color.FgCyan),
		dim:    color.New(color.FgHiBlack),
		bad:    color.New(color.FgRed),
	}
}

// Run executes the full sequence: health, model listing, then — when
// the server advertises at least one model — a single-turn chat and a
// scripted multi-turn conversation. The first connection-level failure
// stops the sequence; nothing is checked past it.
func (r *Runner) Run(ctx context.Context) {
	r.header.Fprintln(r.out, strings.Repeat("=", 50))
	r.header.Fprintln(r.out, "Chat API Smoke Test")
	r.header.Fprintln(r.out, strings.Repeat("=", 50))
	fmt.Fprintln(r.out)

	if err := r.CheckHealth(ctx); err != nil {
		r.ReportFailure(err)
		return
	}

	list, err := r.ListModels(ctx)
	if err != nil {
		r.ReportFailure(err)
		return
	}

	model, ok := api.SelectPreferredModel(list.Models)
	if !ok {
		r.bad.Fprintln(r.out, "No models available. Make sure the server has a provider configured.")
		return
	}

	if err := r.ChatOnce(ctx, model.ID, DefaultChatMessage); err != nil {
		r.ReportFailure(err)
		return
	}
	if err := r.ChatConversation(ctx, model.ID); err != nil {
		r.ReportFailure(err)
	}
}

// CheckHealth issues GET /health and prints the status and body.
func (r *Runner) CheckHealth(ctx context.Context) error {
	r.label.Fprintln(r.out, "Testing /health...")
	res, err := r.client.Health(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "  Status: %d\n", res.Status)
	fmt.Fprintf(r.out, "  Response: %s\n\n", bodyOrSentinel(res.Body))
	return nil
}

// ListModels issues GET /models, prints the advertised models (or the
// fallback payload) and returns the parsed list for model selection.
func (r *Runner) ListModels(ctx context.Context) (*api.ModelList, error) {
	r.label.Fprintln(r.out, "Testing /models...")
	list, err := r.client.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(r.out, "  Status: %d\n", list.Status)
	if list.Decoded {
		fmt.Fprintf(r.out, "  Available models: %d\n", len(list.Models))
		for _, m := range list.Models {
			r.dim.Fprintf(r.out, "    - %s (%s, max tokens: %d)\n", m.ID, m.Family, m.MaxInputTokens)
		}
	} else {
		fmt.Fprintf(r.out, "  Response: %s\n", rawOrSentinel(list.Raw))
	}
	fmt.Fprintln(r.out)
	return list, nil
}

// ChatOnce sends a one-message conversation and prints the status plus
// either the reply (truncated) and usage, or the raw error body.
func (r *Runner) ChatOnce(ctx context.Context, modelID, message string) error {
	r.label.Fprintf(r.out, "Testing /chat with model %q...\n", modelID)
	fmt.Fprintf(r.out, "  Message: %s\n", message)

	res, err := r.client.Chat(ctx, modelID, []api.Message{
		{Role: api.RoleUser, Content: message},
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "  Status: %d\n", res.Status)
	if res.Reply != nil {
		fmt.Fprintf(r.out, "  Response: %s\n", truncate(res.Reply.Content, maxPrintedContent))
		fmt.Fprintf(r.out, "  Usage: %s\n", formatUsage(res.Reply.Usage))
	} else {
		r.bad.Fprintf(r.out, "  Error: %s\n", rawOrSentinel(res.Raw))
	}
	fmt.Fprintln(r.out)
	return nil
}

// ChatConversation runs a scripted two-turn conversation that checks
// the server maintains context when given full prior turns. The second
// request is only sent when the first reply carried content; the
// answer itself is printed, not asserted.
func (r *Runner) ChatConversation(ctx context.Context, modelID string) error {
	r.label.Fprintf(r.out, "Testing multi-turn conversation with model %q...\n", modelID)

	messages := []api.Message{
		{Role: api.RoleSystem, Content: conversationSystem},
		{Role: api.RoleUser, Content: conversationFirst},
	}

	res, err := r.client.Chat(ctx, modelID, messages)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "  User: %s\n", conversationFirst)
	if res.Reply == nil {
		r.bad.Fprintf(r.out, "  Assistant: %s\n\n", rawOrSentinel(res.Raw))
		return nil
	}
	fmt.Fprintf(r.out, "  Assistant: %s\n", res.Reply.Content)

	messages = append(messages,
		api.Message{Role: api.RoleAssistant, Content: res.Reply.Content},
		api.Message{Role: api.RoleUser, Content: conversationSecond},
	)

	res, err = r.client.Chat(ctx, modelID, messages)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "  User: %s\n", conversationSecond)
	if res.Reply != nil {
		fmt.Fprintf(r.out, "  Assistant: %s\n", res.Reply.Content)
		fmt.Fprintf(r.out, "  Usage: %s\n", formatUsage(res.Reply.Usage))
	} else {
		r.bad.Fprintf(r.out, "  Assistant: %s\n", rawOrSentinel(res.Raw))
	}
	fmt.Fprintln(r.out)
	return nil
}

// ReportFailure prints the operator-facing remediation for a failed
// call. Connection-level failures get the fixed two-line message; the
// tool never exits non-zero over them.
func (r *Runner) ReportFailure(err error) {
	var ce *api.ConnectError
	if errors.As(err, &ce) {
		r.bad.Fprintln(r.out, "ERROR: Could not connect to server.")
		fmt.Fprintf(r.out, "Make sure it is running at %s.\n", ce.URL)
		return
	}
	r.bad.Fprintf(r.out, "ERROR: %v\n", err)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

func formatUsage(usage map[string]any) string {
	if usage == nil {
		return "N/A"
	}
	data, err := json.Marshal(usage)
	if err != nil {
		return "N/A"
	}
	return string(data)
}

func rawOrSentinel(raw json.RawMessage) string {
	if raw == nil {
		return "N/A (unreadable response body)"
	}
	return string(raw)
}

func bodyOrSentinel(body []byte) string {
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "N/A"
	}
	return s
}
