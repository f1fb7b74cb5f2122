package tools

import (
	"context"
	"testing"

	"dojoflow/internal/models"
	"dojoflow/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRAGQueryFixture(store *memKnowledge, embedder *memEmbedder) *RAGQueryTool {
	rag := service.NewRAGService(store, embedder, 3, 0.6, 0, zap.NewNop())
	return NewRAGQueryTool(rag)
}

// A question close to the policy document and far from everything else
// returns only the policy document.
func TestRAGQueryReturnsOnlyRelevantDocument(t *testing.T) {
	store := &memKnowledge{}
	store.docs = append(store.docs,
		&models.KnowledgeDocument{
			ID:        uuid.New(),
			Title:     "Membership freeze policy",
			Content:   "Freezes require 30 days notice.",
			Category:  models.KnowledgePolicy,
			Embedding: []float32{0.9, 0.44, 0}, // ~0.9 similarity
		},
		&models.KnowledgeDocument{
			ID:        uuid.New(),
			Title:     "Adult pricing",
			Content:   "Unlimited is $179 per month.",
			Category:  models.KnowledgePricing,
			Embedding: []float32{0.3, 0.95, 0}, // ~0.3 similarity
		},
	)
	embedder := &memEmbedder{vectors: map[string][]float32{
		"How do I freeze my membership?": {1, 0, 0},
	}}

	tool := newRAGQueryFixture(store, embedder)

	result, err := tool.Execute(context.Background(), map[string]any{
		"question": "How do I freeze my membership?",
	})
	require.NoError(t, err)

	assert.Equal(t, true, result["found"])
	hits := result["results"].([]map[string]any)
	require.Len(t, hits, 1)
	assert.Equal(t, "Membership freeze policy", hits[0]["source"])
	assert.Contains(t, result["answer"], "Freezes require 30 days notice.")
}

func TestRAGQueryNotFoundEscalates(t *testing.T) {
	store := &memKnowledge{}
	store.docs = append(store.docs, &models.KnowledgeDocument{
		ID:        uuid.New(),
		Title:     "Unrelated",
		Content:   "irrelevant",
		Category:  models.KnowledgeOther,
		Embedding: []float32{0, 1, 0},
	})
	embedder := &memEmbedder{vectors: map[string][]float32{
		"question": {1, 0, 0},
	}}

	tool := newRAGQueryFixture(store, embedder)

	result, err := tool.Execute(context.Background(), map[string]any{
		"question": "question",
	})
	require.NoError(t, err)

	assert.Equal(t, false, result["found"])
	assert.Contains(t, result["answer"], "transfer you to a team member")
}

func TestRAGQueryCategoryFilter(t *testing.T) {
	store := &memKnowledge{}
	store.docs = append(store.docs,
		&models.KnowledgeDocument{
			ID: uuid.New(), Title: "policy doc", Content: "policy", Category: models.KnowledgePolicy, Embedding: []float32{1, 0, 0},
		},
		&models.KnowledgeDocument{
			ID: uuid.New(), Title: "faq doc", Content: "faq", Category: models.KnowledgeFAQ, Embedding: []float32{1, 0, 0},
		},
	)
	embedder := &memEmbedder{vectors: map[string][]float32{"q": {1, 0, 0}}}

	tool := newRAGQueryFixture(store, embedder)

	result, err := tool.Execute(context.Background(), map[string]any{
		"question": "q",
		"category": "faq",
	})
	require.NoError(t, err)

	hits := result["results"].([]map[string]any)
	require.Len(t, hits, 1)
	assert.Equal(t, "faq doc", hits[0]["source"])
}
