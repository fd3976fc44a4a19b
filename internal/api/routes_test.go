package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coverbot/coverbot-backend/internal/agent"
	"github.com/coverbot/coverbot-backend/internal/api/handlers"
	"github.com/coverbot/coverbot-backend/internal/providers"
	"github.com/coverbot/coverbot-backend/internal/services"
	"github.com/coverbot/coverbot-backend/internal/store"
	"github.com/coverbot/coverbot-backend/internal/tools"
)

// memStore is an in-memory ConversationStore with injectable failures.
type memStore struct {
	transcripts map[string][]store.Turn
	historyErr  error
}

func newMemStore() *memStore {
	return &memStore{transcripts: make(map[string][]store.Turn)}
}

func (m *memStore) History(ctx context.Context, sessionID string) ([]store.Turn, error) {
	if m.historyErr != nil {
		return nil, m.historyErr
	}
	return m.transcripts[sessionID], nil
}

func (m *memStore) Append(ctx context.Context, sessionID string, turns ...store.Turn) error {
	m.transcripts[sessionID] = append(m.transcripts[sessionID], turns...)
	return nil
}

// quoteBot requests a full-coverage quote once, then answers with the
// tool result inlined, mimicking a model that relays quote data.
type quoteBot struct{}

func (p *quoteBot) Name() string { return "quote-bot" }

func (p *quoteBot) ValidateConfig() error { return nil }

func (p *quoteBot) Complete(ctx context.Context, req providers.CompletionRequest) (*providers.CompletionResponse, error) {
	last := req.Messages[len(req.Messages)-1]
	if last.Role == "tool" {
		return &providers.CompletionResponse{
			Choices: []providers.Choice{{
				Message: providers.Message{
					Role:    "assistant",
					Content: "Here are your quotes: " + last.Content,
				},
				FinishReason: "stop",
			}},
		}, nil
	}

	return &providers.CompletionResponse{
		Choices: []providers.Choice{{
			Message: providers.Message{
				Role: "assistant",
				ToolCalls: []providers.ToolCall{{
					ID:   "call_1",
					Type: "function",
					Function: providers.FunctionCall{
						Name:      "get_quote",
						Arguments: `{"vehicle_make":"Ford","vehicle_model":"Focus","vehicle_year":2022,"coverage_type":"full"}`,
					},
				}},
			},
			FinishReason: "tool_calls",
		}},
	}, nil
}

func newTestApp(t *testing.T, provider providers.Provider, conversations store.ConversationStore) *fiber.App {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	registry, err := tools.NewDefaultRegistry(nil, logger)
	require.NoError(t, err)
	orchestrator := agent.New(provider, registry, "test-model", logger)
	svc := services.NewChatService(conversations, orchestrator, logger)

	app := fiber.New()
	SetupRoutes(app, svc, "openai")
	return app
}

func postChat(t *testing.T, app *fiber.App, body string, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeChatResponse(t *testing.T, resp *http.Response) handlers.ChatResponse {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out handlers.ChatResponse
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func sidCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == "sid" {
			return c
		}
	}
	return nil
}

func TestChat_MintsSessionCookie(t *testing.T) {
	app := newTestApp(t, &quoteBot{}, newMemStore())

	resp := postChat(t, app, `{"message":"hi"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := sidCookie(resp)
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 86400, cookie.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	body := decodeChatResponse(t, resp)
	assert.Equal(t, cookie.Value, body.Meta["session_id"])
}

func TestChat_QuoteFlowEndToEnd(t *testing.T) {
	conversations := newMemStore()
	app := newTestApp(t, &quoteBot{}, conversations)

	resp := postChat(t, app, `{"message":"I need a quote for my 2022 Ford Focus, full coverage"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := sidCookie(resp)
	require.NotNil(t, cookie)

	body := decodeChatResponse(t, resp)
	assert.Equal(t, cookie.Value, body.Meta["session_id"])
	assert.NotContains(t, body.Meta, "error")

	// full coverage base is 180: multipliers 0.90, 0.85, 1.10
	assert.Contains(t, body.Message, "SafeDrive Insurance")
	assert.Contains(t, body.Message, "BudgetCover Insurance")
	assert.Contains(t, body.Message, "PremiumGuard Insurance")
	assert.Contains(t, body.Message, "162")
	assert.Contains(t, body.Message, "153")
	assert.Contains(t, body.Message, "198")

	transcript := conversations.transcripts[cookie.Value]
	require.Len(t, transcript, 2)
	assert.Equal(t, store.RoleUser, transcript[0].Role)
	assert.Equal(t, store.RoleAssistant, transcript[1].Role)
}

func TestChat_ReusesSessionFromCookie(t *testing.T) {
	conversations := newMemStore()
	app := newTestApp(t, &quoteBot{}, conversations)

	first := postChat(t, app, `{"message":"hello"}`)
	cookie := sidCookie(first)
	require.NotNil(t, cookie)

	second := postChat(t, app, `{"message":"quote my Ford Focus"}`,
		&http.Cookie{Name: "sid", Value: cookie.Value})
	assert.Equal(t, http.StatusOK, second.StatusCode)

	// no new cookie when the client already holds one
	assert.Nil(t, sidCookie(second))

	body := decodeChatResponse(t, second)
	assert.Equal(t, cookie.Value, body.Meta["session_id"])

	// transcript accumulates rather than resets
	assert.Len(t, conversations.transcripts[cookie.Value], 4)
}

func TestChat_StoreUnreachableStillOK(t *testing.T) {
	conversations := newMemStore()
	conversations.historyErr = errors.New("dial tcp: connection refused")
	app := newTestApp(t, &quoteBot{}, conversations)

	resp := postChat(t, app, `{"message":"hello"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeChatResponse(t, resp)
	assert.Contains(t, body.Message, "I encountered an error")
	assert.Contains(t, body.Meta["error"], "connection refused")
}

func TestChat_MalformedBody(t *testing.T) {
	app := newTestApp(t, &quoteBot{}, newMemStore())

	resp := postChat(t, app, `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChat_EmptyMessage(t *testing.T) {
	app := newTestApp(t, &quoteBot{}, newMemStore())

	resp := postChat(t, app, `{"message":"   "}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, &quoteBot{}, newMemStore())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]string
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "openai", body["provider"])
}
