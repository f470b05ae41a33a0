package knowledge

import (
	"context"
	"fmt"

	"github.com/jzq1291/chatbot/internal/core"
	"github.com/jzq1291/chatbot/pkg/log"
)

// Service wraps the knowledge repository with the operations exposed to
// maintainers of the knowledge base. The chat service only consumes Search.
type Service struct {
	repo core.KnowledgeRepository
}

func NewService(repo core.KnowledgeRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Add(ctx context.Context, doc core.KnowledgeDoc) (core.KnowledgeDoc, error) {
	id, err := s.repo.Save(ctx, doc)
	if err != nil {
		return core.KnowledgeDoc{}, fmt.Errorf("failed to add knowledge entry: %w", err)
	}
	doc.ID = id

	log.FromCtx(ctx).Debug().Int64("id", id).Str("title", doc.Title).Msg("knowledge entry added")
	return doc, nil
}

func (s *Service) Update(ctx context.Context, doc core.KnowledgeDoc) error {
	if err := s.repo.Update(ctx, doc); err != nil {
		return fmt.Errorf("failed to update knowledge entry %d: %w", doc.ID, err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete knowledge entry %d: %w", id, err)
	}
	return nil
}

func (s *Service) Search(ctx context.Context, keyword string) ([]core.KnowledgeDoc, error) {
	docs, err := s.repo.Search(ctx, keyword)
	if err != nil {
		return nil, err
	}
	log.FromCtx(ctx).Debug().Str("keyword", keyword).Int("hits", len(docs)).Msg("knowledge search")
	return docs, nil
}

func (s *Service) ByCategory(ctx context.Context, category string) ([]core.KnowledgeDoc, error) {
	return s.repo.ByCategory(ctx, category)
}
