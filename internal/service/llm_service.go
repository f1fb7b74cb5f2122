package service

import (
	"context"
	"fmt"

	"dojoflow/internal/models"
	"dojoflow/pkg/config"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// ToolCatalog exposes the agent's callable tools to the model. Execute never
// returns an error; failures come back as a result payload the model can
// read and relay.
type ToolCatalog interface {
	Declarations() []*genai.FunctionDeclaration
	Execute(ctx context.Context, name string, args map[string]any) map[string]any
}

// GenerateRequest is one conversational turn: persona, prior context and the
// new inbound message.
type GenerateRequest struct {
	SystemPrompt string
	History      []*models.Interaction
	Message      string
	Tools        ToolCatalog
}

// maxToolTurns bounds the generate/execute loop within a single turn so a
// looping model cannot hold the webhook open forever.
const maxToolTurns = 5

type LLMService struct {
	client *genai.Client
	cfg    config.GeminiConfig
	dim    int32
	logger *zap.Logger
}

func NewLLMService(ctx context.Context, cfg config.GeminiConfig, embeddingDim int, logger *zap.Logger) (*LLMService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &LLMService{
		client: client,
		cfg:    cfg,
		dim:    int32(embeddingDim),
		logger: logger,
	}, nil
}

// Embed produces one embedding vector for the text.
func (s *LLMService) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := s.client.Models.EmbedContent(ctx, s.cfg.EmbeddingModel,
		[]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)},
		&genai.EmbedContentConfig{
			OutputDimensionality: genai.Ptr[int32](s.dim),
		})
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("embedding response is empty")
	}
	return resp.Embeddings[0].Values, nil
}

// Generate runs one conversational turn. When the model requests tool calls
// they are executed in order and their results fed back until the model
// produces text or the tool-turn limit is reached.
func (s *LLMService) Generate(ctx context.Context, req *GenerateRequest) (string, error) {
	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](float32(s.cfg.Temperature)),
		MaxOutputTokens: int32(s.cfg.MaxTokens),
	}
	if req.SystemPrompt != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}
	if req.Tools != nil {
		decls := req.Tools.Declarations()
		if len(decls) > 0 {
			genCfg.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
		}
	}

	contents := historyContents(req.History)
	contents = append(contents, genai.NewContentFromText(req.Message, genai.RoleUser))

	for turn := 0; turn < maxToolTurns; turn++ {
		resp, err := s.client.Models.GenerateContent(ctx, s.cfg.Model, contents, genCfg)
		if err != nil {
			return "", fmt.Errorf("generate content: %w", err)
		}

		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			return resp.Text(), nil
		}
		if req.Tools == nil {
			return "", fmt.Errorf("model requested tools but none are registered")
		}

		if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
			contents = append(contents, resp.Candidates[0].Content)
		}

		var parts []*genai.Part
		for _, call := range calls {
			s.logger.Debug("tool call requested", zap.String("tool", call.Name))
			result := req.Tools.Execute(ctx, call.Name, call.Args)
			parts = append(parts, genai.NewPartFromFunctionResponse(call.Name, result))
		}
		contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))
	}

	return "", fmt.Errorf("tool loop exceeded %d turns", maxToolTurns)
}

// historyContents maps prior interactions onto chat roles: inbound messages
// become user turns, outbound become model turns.
func historyContents(history []*models.Interaction) []*genai.Content {
	var contents []*genai.Content
	for _, it := range history {
		if it.Summary == "" {
			continue
		}
		var role genai.Role = genai.RoleUser
		if it.Direction == models.DirectionOutbound {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(it.Summary, role))
	}
	return contents
}
