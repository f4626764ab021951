package llm

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type logged struct {
	inner  Provider
	logger *zap.Logger
}

// WithLogging records every request at debug level, and failures at warn,
// with latency, token usage and an estimated cost when the model is priced.
func WithLogging(p Provider, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &logged{inner: p, logger: logger.Named("llm")}
}

func (l *logged) ModelID() string { return l.inner.ModelID() }

func (l *logged) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	log := l.logger.With(
		zap.String("model", l.inner.ModelID()),
		zap.String("purpose", purposeOf(ctx)),
		zap.Duration("latency", time.Since(start)),
	)
	if req.Schema != nil {
		log = log.With(zap.String("schema", req.Schema.Name))
	}
	if err != nil {
		log.Warn("llm request failed", zap.Error(err))
		return nil, err
	}

	fields := []zap.Field{
		zap.String("served_by", resp.Model),
		zap.Int("input_tokens", resp.Usage.InputTokens),
		zap.Int("output_tokens", resp.Usage.OutputTokens),
		zap.String("stop_reason", string(resp.StopReason)),
	}
	if price, ok := PriceOf(resp.Model); ok {
		fields = append(fields, zap.Float64("cost_usd", price.Cost(resp.Usage)))
	}
	log.Debug("llm request", fields...)
	return resp, nil
}
