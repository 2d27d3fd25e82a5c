package pdf

import (
	"bytes"
	"context"
	"io"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Provider interface {
	GenerateOrderSummary(ctx context.Context, data OrderData) (io.Reader, error)
}

// NoOpProvider produces an empty document. Callers read the returned
// document unconditionally, so even the no-op must hand back a usable
// reader.
type NoOpProvider struct{}

func (p *NoOpProvider) GenerateOrderSummary(ctx context.Context, data OrderData) (io.Reader, error) {
	_ = ctx
	_ = data
	return bytes.NewReader(nil), nil
}

func New(log *zap.Logger) Provider {
	return &PDFProvider{log: log.Named("pdf")}
}

var Module = fx.Module("providers.pdf",
	fx.Provide(New),
)
