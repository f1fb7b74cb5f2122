package tools

import (
	"context"
	"fmt"

	"dojoflow/internal/models"
	"dojoflow/internal/service"

	"google.golang.org/genai"
)

// RAGQueryTool answers questions from the indexed knowledge base. When
// nothing clears the relevance bar it tells the model to hand off to a
// human instead of guessing.
type RAGQueryTool struct {
	rag *service.RAGService
}

func NewRAGQueryTool(rag *service.RAGService) *RAGQueryTool {
	return &RAGQueryTool{rag: rag}
}

func (t *RAGQueryTool) Name() string { return "rag_query_knowledge_base" }

func (t *RAGQueryTool) Description() string {
	return "Searches the knowledge base for answers to questions about academy policies, prices, schedules, and procedures"
}

func (t *RAGQueryTool) Parameters() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"question": {
				Type:        genai.TypeString,
				Description: "The user question to search for in the knowledge base",
			},
			"category": {
				Type:        genai.TypeString,
				Description: "Optional category to narrow the search",
				Enum:        []string{"policy", "pricing", "schedule", "faq", "manual", "other"},
			},
		},
		Required: []string{"question"},
	}
}

func (t *RAGQueryTool) Execute(ctx context.Context, args map[string]any) (map[string]any, error) {
	var in struct {
		Question string `json:"question"`
		Category string `json:"category"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}

	var category *models.KnowledgeCategory
	if in.Category != "" {
		c := models.KnowledgeCategory(in.Category)
		category = &c
	}

	results, err := t.rag.Query(ctx, in.Question, category)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return map[string]any{
			"found":   false,
			"results": []any{},
			"answer":  "I could not find specific information about that in our knowledge base. Please let me transfer you to a team member who can help.",
		}, nil
	}

	hits := make([]map[string]any, 0, len(results))
	for _, r := range results {
		hits = append(hits, map[string]any{
			"content":        r.Content,
			"source":         r.Source,
			"relevanceScore": r.RelevanceScore,
		})
	}

	return map[string]any{
		"found":   true,
		"results": hits,
		"answer":  fmt.Sprintf("Based on our academy information: %s", results[0].Content),
	}, nil
}
