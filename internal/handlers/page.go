package handlers

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"hongshengyuan.tech/web/internal/middleware"
	"hongshengyuan.tech/web/internal/seo"
)

// Page is the head metadata a view contributes on top of the layout defaults.
type Page struct {
	SEO        seo.Config
	Structured []seo.Block

	// ResetStructured drops every JSON-LD block already in the head,
	// including the site-wide ones, before Structured is appended.
	ResetStructured bool
	// ClearMetadata removes keywords, og:image, canonical and robots before
	// SEO is applied.
	ClearMetadata bool
}

// ApplyTo writes p into h. Blocks that fail to serialize are logged and
// skipped; the rest of the page still renders.
func (p Page) ApplyTo(ctx context.Context, h seo.Head) {
	logger := middleware.Logger(ctx)
	if p.ResetStructured {
		if n := seo.ResetStructuredData(h); n > 0 {
			logger.Debug("structured data reset", zap.Int("removed", n))
		}
	}
	if p.ClearMetadata {
		seo.ClearPageMetadata(h)
	}
	seo.Apply(h, p.SEO)
	appendBlocks(ctx, h, p.Structured)
}

func appendBlocks(ctx context.Context, h seo.Head, blocks []seo.Block) {
	for _, b := range blocks {
		err := seo.AppendStructuredData(h, b)
		if err == nil {
			continue
		}
		var serr *seo.SerializationError
		if errors.As(err, &serr) {
			middleware.Logger(ctx).Warn("skipping structured data block",
				zap.String("type", serr.Type),
				zap.Error(err),
			)
			continue
		}
		middleware.Logger(ctx).Error("append structured data", zap.Error(err))
	}
}
