package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"dojoflow/internal/dto"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Tool is one callable capability exposed to the model.
type Tool interface {
	Name() string
	Description() string
	Parameters() *genai.Schema
	Execute(ctx context.Context, args map[string]any) (map[string]any, error)
}

// Registry holds the tool catalog in registration order. It satisfies the
// conversation service's ToolCatalog: Execute never returns an error, so a
// broken tool degrades into a payload the model can apologize about instead
// of killing the turn.
type Registry struct {
	order  []string
	byName map[string]Tool
	logger *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		byName: make(map[string]Tool),
		logger: logger,
	}
}

// Register adds a tool. Registering the same name twice replaces the
// implementation but keeps the original position.
func (r *Registry) Register(t Tool) {
	if _, exists := r.byName[t.Name()]; !exists {
		r.order = append(r.order, t.Name())
	}
	r.byName[t.Name()] = t
}

func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Declarations returns the function declarations in registration order.
func (r *Registry) Declarations() []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(r.order))
	for _, name := range r.order {
		t := r.byName[name]
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return decls
}

// List describes the catalog for discovery endpoints.
func (r *Registry) List() []dto.ToolInfo {
	infos := make([]dto.ToolInfo, 0, len(r.order))
	for _, name := range r.order {
		t := r.byName[name]
		info := dto.ToolInfo{Name: t.Name(), Description: t.Description()}
		if schema := t.Parameters(); schema != nil {
			for param := range schema.Properties {
				info.Parameters = append(info.Parameters, param)
			}
			sort.Strings(info.Parameters)
		}
		infos = append(infos, info)
	}
	return infos
}

// Execute runs a tool by name. Unknown tools, errors and panics all come
// back as a failure payload.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (result map[string]any) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("tool panicked",
				zap.String("tool", name),
				zap.Any("panic", rec))
			result = failure(fmt.Sprintf("tool %s failed unexpectedly", name))
		}
	}()

	t, ok := r.byName[name]
	if !ok {
		return failure(fmt.Sprintf("unknown tool: %s", name))
	}

	out, err := t.Execute(ctx, args)
	if err != nil {
		r.logger.Warn("tool failed",
			zap.String("tool", name),
			zap.Error(err))
		return failure(err.Error())
	}
	return out
}

func failure(message string) map[string]any {
	return map[string]any{
		"success": false,
		"message": message,
	}
}

// decodeArgs maps the model's loosely typed argument map onto a typed input
// struct via a JSON round trip.
func decodeArgs(args map[string]any, v any) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode args: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode args: %w", err)
	}
	return nil
}
