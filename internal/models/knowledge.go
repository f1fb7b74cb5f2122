package models

import (
	"time"

	"github.com/google/uuid"
)

type KnowledgeCategory string

const (
	KnowledgePolicy   KnowledgeCategory = "policy"
	KnowledgePricing  KnowledgeCategory = "pricing"
	KnowledgeSchedule KnowledgeCategory = "schedule"
	KnowledgeFAQ      KnowledgeCategory = "faq"
	KnowledgeManual   KnowledgeCategory = "manual"
	KnowledgeOther    KnowledgeCategory = "other"
)

// KnowledgeDocument is one indexed entry in the knowledge base. A document
// with an empty embedding is never scored during retrieval.
type KnowledgeDocument struct {
	ID        uuid.UUID         `db:"id"`
	Title     string            `db:"title"`
	Content   string            `db:"content"`
	Category  KnowledgeCategory `db:"category"`
	Embedding []float32         `db:"embedding"`
	Metadata  map[string]any    `db:"metadata"`
	CreatedAt time.Time         `db:"created_at"`
	UpdatedAt time.Time         `db:"updated_at"`
}

// RetrievalResult is one ranked retrieval hit. Derived per query, never
// persisted.
type RetrievalResult struct {
	Content        string         `json:"content"`
	RelevanceScore float64        `json:"relevanceScore"`
	Source         string         `json:"source"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}
