package ai

import (
	"context"
	"fmt"
	"log/slog"
)

// fallbackAdvisor wraps two Advisor implementations. It calls the primary
// first; if that returns an error it logs the failure and tries the secondary.
// This gives you Anthropic as the default with DeepSeek as the safety net
// (or vice versa — the choice is made in main.go).
type fallbackAdvisor struct {
	primary   Advisor
	secondary Advisor
	logger    *slog.Logger
}

// NewFallbackAdvisor returns an Advisor that calls primary and, on failure,
// falls back to secondary. Either argument may be nil — if primary is nil
// it goes straight to secondary; if secondary is nil and primary fails, the
// primary error is returned directly.
func NewFallbackAdvisor(primary, secondary Advisor, logger *slog.Logger) Advisor {
	return &fallbackAdvisor{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
	}
}

// GenerateGuidance tries the primary Advisor. If it fails and a secondary is
// configured, it logs the primary error and tries the secondary.
func (f *fallbackAdvisor) GenerateGuidance(ctx context.Context, params GuidanceParams) (GuidanceResult, error) {
	if f.primary != nil {
		result, err := f.primary.GenerateGuidance(ctx, params)
		if err == nil {
			return result, nil
		}
		f.logger.Warn("ai: primary advisor failed, trying secondary",
			"error", err,
			"holland_code", params.Profile.HollandCode,
		)
		if f.secondary == nil {
			return GuidanceResult{}, fmt.Errorf("ai: primary failed and no secondary configured: %w", err)
		}
	}

	return f.secondary.GenerateGuidance(ctx, params)
}
