package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"dojoflow/internal/dto"
	"dojoflow/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Embedder produces a single embedding vector for a piece of text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// KnowledgeStore is the persistence surface the RAG service needs.
type KnowledgeStore interface {
	Create(ctx context.Context, doc *models.KnowledgeDocument) error
	Update(ctx context.Context, doc *models.KnowledgeDocument) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.KnowledgeDocument, error)
	List(ctx context.Context, category *models.KnowledgeCategory) ([]*models.KnowledgeDocument, error)
}

type RAGService struct {
	store      KnowledgeStore
	embedder   Embedder
	topK       int
	threshold  float64
	indexDelay time.Duration
	logger     *zap.Logger
}

func NewRAGService(store KnowledgeStore, embedder Embedder, topK int, threshold float64, indexDelay time.Duration, logger *zap.Logger) *RAGService {
	return &RAGService{
		store:      store,
		embedder:   embedder,
		topK:       topK,
		threshold:  threshold,
		indexDelay: indexDelay,
		logger:     logger,
	}
}

type scoredDocument struct {
	doc   *models.KnowledgeDocument
	score float64
}

// Query embeds the question once, scores every indexed document against it
// and returns up to topK hits strictly above the similarity threshold,
// highest first.
func (s *RAGService) Query(ctx context.Context, question string, category *models.KnowledgeCategory) ([]*models.RetrievalResult, error) {
	queryEmbedding, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	docs, err := s.store.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	var scored []scoredDocument
	for _, doc := range docs {
		score := cosineSimilarity(queryEmbedding, doc.Embedding)
		if score > s.threshold {
			scored = append(scored, scoredDocument{doc: doc, score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > s.topK {
		scored = scored[:s.topK]
	}

	results := make([]*models.RetrievalResult, 0, len(scored))
	for _, sd := range scored {
		results = append(results, &models.RetrievalResult{
			Content:        sd.doc.Content,
			RelevanceScore: sd.score,
			Source:         sd.doc.Title,
			Metadata:       sd.doc.Metadata,
		})
	}

	s.logger.Debug("knowledge query scored",
		zap.Int("candidates", len(docs)),
		zap.Int("hits", len(results)))

	return results, nil
}

// IndexDocument embeds the content and persists the document. The caller's
// ID is kept when set so re-indexing stays idempotent.
func (s *RAGService) IndexDocument(ctx context.Context, req *dto.IndexDocumentRequest) (*models.KnowledgeDocument, error) {
	embedding, err := s.embedder.Embed(ctx, req.Content)
	if err != nil {
		return nil, fmt.Errorf("embed document %q: %w", req.Title, err)
	}

	now := time.Now()
	doc := &models.KnowledgeDocument{
		ID:        uuid.New(),
		Title:     req.Title,
		Content:   req.Content,
		Category:  req.Category,
		Embedding: embedding,
		Metadata:  req.Metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.ID != uuid.Nil {
		doc.ID = req.ID
	}

	if err := s.store.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("store document %q: %w", req.Title, err)
	}

	return doc, nil
}

// IndexDocuments indexes a batch strictly in order, pausing between
// documents to stay under embedding rate limits. A failed document is
// recorded and skipped; the batch continues.
func (s *RAGService) IndexDocuments(ctx context.Context, reqs []*dto.IndexDocumentRequest) *dto.IndexBatchResult {
	result := &dto.IndexBatchResult{}

	for i, req := range reqs {
		if i > 0 && s.indexDelay > 0 {
			select {
			case <-ctx.Done():
				result.Failures = append(result.Failures, dto.IndexFailure{
					Title: req.Title,
					Error: ctx.Err().Error(),
				})
				result.Failed++
				continue
			case <-time.After(s.indexDelay):
			}
		}

		doc, err := s.IndexDocument(ctx, req)
		if err != nil {
			s.logger.Warn("document index failed",
				zap.String("title", req.Title),
				zap.Error(err))
			result.Failures = append(result.Failures, dto.IndexFailure{
				Title: req.Title,
				Error: err.Error(),
			})
			result.Failed++
			continue
		}

		result.Indexed++
		result.DocumentIDs = append(result.DocumentIDs, doc.ID)
	}

	return result
}

// UpdateDocument rewrites a document, re-embedding only when the content
// actually changed.
func (s *RAGService) UpdateDocument(ctx context.Context, id uuid.UUID, req *dto.IndexDocumentRequest) (*models.KnowledgeDocument, error) {
	doc, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	if req.Content != doc.Content {
		embedding, err := s.embedder.Embed(ctx, req.Content)
		if err != nil {
			return nil, fmt.Errorf("embed document %q: %w", req.Title, err)
		}
		doc.Embedding = embedding
	}

	doc.Title = req.Title
	doc.Content = req.Content
	doc.Category = req.Category
	doc.Metadata = req.Metadata
	doc.UpdatedAt = time.Now()

	if err := s.store.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}

	return doc, nil
}

func (s *RAGService) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}

func (s *RAGService) ListDocuments(ctx context.Context, category *models.KnowledgeCategory) ([]*models.KnowledgeDocument, error) {
	return s.store.List(ctx, category)
}

// cosineSimilarity accumulates in float64 to keep precision over 768-dim
// vectors. Mismatched dimensions or a zero-norm vector score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
