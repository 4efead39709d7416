package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gastroposter/pkg/logger"
	"gastroposter/pkg/metrics"
	"gastroposter/poster-service/internal/app/poster/entity"
	"gastroposter/poster-service/internal/app/poster/infrastructure"
	"gastroposter/poster-service/internal/app/poster/layout"
	"gastroposter/poster-service/internal/app/poster/util"
)

const (
	formatHTML = "html"
	formatPDF  = "pdf"
)

// PosterService резолвит товары по ID, собирает постер и отдаёт его в рендер
type PosterService struct {
	products      ProductServiceInterface
	composer      *PosterComposer
	renderer      infrastructure.Renderer
	kafkaProducer util.MessagePublisher
}

func NewPosterService(
	products ProductServiceInterface,
	composer *PosterComposer,
	renderer infrastructure.Renderer,
	kafkaProducer util.MessagePublisher,
) *PosterService {
	return &PosterService{
		products:      products,
		composer:      composer,
		renderer:      renderer,
		kafkaProducer: kafkaProducer,
	}
}

// BuildPoster: ненайденные ID пропускаются, count nil - максимум карточек
func (s *PosterService) BuildPoster(ctx context.Context, title *string, productIDs []string, count *int) *layout.Document {
	products := s.products.ResolveProducts(ctx, productIDs)

	maxCount := MaxPosterProducts
	if count != nil {
		maxCount = *count
	}
	effectiveTitle := ""
	if title != nil {
		effectiveTitle = *title
	}

	return s.composer.Compose(effectiveTitle, products, maxCount)
}

func (s *PosterService) RenderPosterHTML(ctx context.Context, title *string, productIDs []string, count *int) string {
	doc := s.BuildPoster(ctx, title, productIDs, count)
	metrics.RecordPoster(formatHTML, nil)
	return layout.RenderHTML(doc)
}

// RenderPosterPDF возвращает PDF; любая ошибка рендера - ErrRenderFailed
func (s *PosterService) RenderPosterPDF(ctx context.Context, title *string, productIDs []string, count *int) ([]byte, error) {
	doc := s.BuildPoster(ctx, title, productIDs, count)

	pdf, err := s.renderer.RenderHTML(ctx, layout.RenderHTML(doc))
	metrics.RecordPoster(formatPDF, err)
	if err != nil {
		logger.Error().Err(err).Str("title", doc.Title).Msg("poster render failed")
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	metrics.PosterCards.Observe(float64(doc.CardCount()))

	s.publishPosterEvent(ctx, doc)
	return pdf, nil
}

func (s *PosterService) publishPosterEvent(ctx context.Context, doc *layout.Document) {
	cards := doc.Cards()
	ids := make([]string, 0, len(cards))
	for _, card := range cards {
		ids = append(ids, card.ProductID)
	}

	event := entity.PosterEvent{
		EventType:  entity.EventPosterGenerated,
		Title:      doc.Title,
		ProductIDs: ids,
		Cards:      len(cards),
		Timestamp:  time.Now(),
	}
	eventData, err := json.Marshal(event)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to marshal poster generated event")
		return
	}
	// Постер уже отдан пользователю, событие не критично
	if err := s.kafkaProducer.PublishMessage(ctx, doc.Title, eventData); err != nil {
		logger.Warn().Err(err).Msg("failed to publish poster generated event")
	}
}
