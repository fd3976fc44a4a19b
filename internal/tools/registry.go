package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/coverbot/coverbot-backend/internal/providers"
)

// ErrUnknownTool is returned when the model requests a capability that
// was never registered.
var ErrUnknownTool = errors.New("unknown tool")

// Handler executes one capability with raw JSON arguments.
type Handler func(ctx context.Context, args json.RawMessage) (interface{}, error)

// Definition describes one registered capability: its descriptor as
// advertised to the model, and the handler that serves it.
type Definition struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
	Handler     Handler
}

// Registry is a static mapping of capability name to typed handler.
// Definitions are validated at registration, not at dispatch.
type Registry struct {
	defs  map[string]Definition
	order []string
}

// NewRegistry creates an empty capability registry
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register adds a capability. The argument schema must be a valid
// JSON-serializable object schema.
func (r *Registry) Register(def Definition) error {
	if def.Name == "" {
		return errors.New("tool name is required")
	}
	if def.Handler == nil {
		return fmt.Errorf("tool %s: handler is required", def.Name)
	}
	if _, exists := r.defs[def.Name]; exists {
		return fmt.Errorf("tool %s: already registered", def.Name)
	}
	if typ, _ := def.Parameters["type"].(string); typ != "object" {
		return fmt.Errorf("tool %s: parameters schema must be an object schema", def.Name)
	}
	if _, err := json.Marshal(def.Parameters); err != nil {
		return fmt.Errorf("tool %s: invalid parameters schema: %w", def.Name, err)
	}

	r.defs[def.Name] = def
	r.order = append(r.order, def.Name)
	return nil
}

// Dispatch invokes a registered capability by name.
func (r *Registry) Dispatch(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	def, ok := r.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return def.Handler(ctx, args)
}

// Descriptors returns the tool descriptors in registration order, in
// the shape the completion request expects.
func (r *Registry) Descriptors() []providers.Tool {
	descriptors := make([]providers.Tool, 0, len(r.order))
	for _, name := range r.order {
		def := r.defs[name]
		descriptors = append(descriptors, providers.Tool{
			Type: "function",
			Function: providers.Function{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  def.Parameters,
			},
		})
	}
	return descriptors
}
