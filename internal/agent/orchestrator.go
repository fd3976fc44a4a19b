package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/coverbot/coverbot-backend/internal/providers"
	"github.com/coverbot/coverbot-backend/internal/store"
	"github.com/coverbot/coverbot-backend/internal/tools"
)

const systemPrompt = `You are a helpful insurance quote assistant. Your goal is to help users get insurance quotes for their vehicles.

When interacting with users:
1. Identify their intent - they may want vehicle information, insurance quotes, or have questions about coverage types
2. Ask targeted follow-up questions if you need missing information (make, model, year, coverage type)
3. Use the vehicle_lookup tool first if vehicle details are unclear
4. Use the get_quote tool to retrieve quotes after you have vehicle information
5. Always present the cheapest quote prominently, but show all available options
6. Summarize quotes clearly with:
   - Provider name
   - Monthly premium (with currency)
   - Coverage type
   - Key features/conditions
   - Next steps for the user

Be conversational, friendly, and helpful. If a user asks about coverage types, explain:
- Liability: Basic coverage required by law
- Comprehensive: Covers theft, vandalism, natural disasters
- Full: Complete coverage including liability, comprehensive, and collision

Always be clear about what information you need to proceed.`

// maxIterations caps the reasoning loop so a model that keeps
// requesting tools cannot spin forever.
const maxIterations = 10

const defaultTemperature = float32(0.7)

// Orchestrator binds the system prompt, the capability registry and a
// completion provider into one reasoning loop.
type Orchestrator struct {
	provider providers.Provider
	registry *tools.Registry
	model    string
	logger   *logrus.Logger
}

// New creates an orchestrator for the given provider and capability set.
func New(provider providers.Provider, registry *tools.Registry, model string, logger *logrus.Logger) *Orchestrator {
	return &Orchestrator{
		provider: provider,
		registry: registry,
		model:    model,
		logger:   logger,
	}
}

// Run produces one final answer for a user message given the prior
// transcript. Tool calls requested by the model are dispatched
// synchronously and their results fed back into the context; tool
// invocations are transient and never persisted.
func (o *Orchestrator) Run(ctx context.Context, prior []store.Turn, userText string) (string, error) {
	messages := make([]providers.Message, 0, len(prior)+2)
	messages = append(messages, providers.Message{Role: "system", Content: systemPrompt})
	for _, turn := range prior {
		messages = append(messages, providers.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, providers.Message{Role: "user", Content: userText})

	temperature := defaultTemperature
	corrected := false

	for i := 0; i < maxIterations; i++ {
		resp, err := o.provider.Complete(ctx, providers.CompletionRequest{
			Messages:    messages,
			Model:       o.model,
			Temperature: &temperature,
			Tools:       o.registry.Descriptors(),
		})
		if err != nil {
			return "", fmt.Errorf("completion failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", errors.New("provider returned no choices")
		}

		msg := resp.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			if msg.Content == "" {
				return "", errors.New("provider returned an empty answer")
			}
			return msg.Content, nil
		}

		// echo the assistant tool-call turn back so the provider can
		// pair tool results with their requests
		messages = append(messages, msg)

		for _, call := range msg.ToolCalls {
			result, err := o.registry.Dispatch(ctx, call.Function.Name, json.RawMessage(call.Function.Arguments))
			if err != nil {
				if corrected {
					return "", fmt.Errorf("tool call %q failed after retry: %w", call.Function.Name, err)
				}
				corrected = true
				o.logger.WithError(err).WithField("tool", call.Function.Name).
					Warn("recoverable tool call error, issuing correction")
				messages = append(messages, providers.Message{
					Role:       "tool",
					ToolCallID: call.ID,
					Content: fmt.Sprintf(
						"Error: %v. Call only the listed tools and pass valid JSON arguments.", err),
				})
				continue
			}

			payload, err := json.Marshal(result)
			if err != nil {
				return "", fmt.Errorf("encode tool result: %w", err)
			}
			messages = append(messages, providers.Message{
				Role:       "tool",
				ToolCallID: call.ID,
				Content:    string(payload),
			})
		}
	}

	return "", fmt.Errorf("no final answer after %d reasoning iterations", maxIterations)
}
