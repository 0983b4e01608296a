// Package usecase implements the business logic for the logolookup feature.
package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"broker_backend/internal/feature/logolookup/domain/entity"
	stockentity "broker_backend/internal/feature/stocks/domain/entity"
	"broker_backend/internal/shared/ratelimiter"
)

const (
	// MaxImageSize is the upper bound for uploaded images (10MB).
	MaxImageSize = 10 * 1024 * 1024
	// BriefPromptTemplate is the prompt used to generate a company brief.
	BriefPromptTemplate = "In three short bullet points, summarize the main strengths of %s from an equity analysis perspective."
)

// LogoDetector detects brand logos in an image.
// Following Go convention, the interface is defined by the consumer
// (usecase), not the provider (adapters).
type LogoDetector interface {
	DetectLogos(ctx context.Context, imageData []byte) ([]entity.DetectedLogo, error)
}

// CompanyAnalyzer generates a short text brief from a prompt.
// Following Go convention, the interface is defined by the consumer
// (usecase), not the provider (adapters).
type CompanyAnalyzer interface {
	Analyze(ctx context.Context, prompt string) (string, error)
}

// StockLookup resolves a company name to a stored stock. It returns
// (nil, nil) when no stock matches.
// Following Go convention, the interface is defined by the consumer
// (usecase), not the provider (adapters).
type StockLookup interface {
	FindByCompanyName(ctx context.Context, name string) (*stockentity.Stock, error)
}

// logoLookupUsecase turns an uploaded image into a stock match.
type logoLookupUsecase struct {
	detector LogoDetector
	analyzer CompanyAnalyzer
	stocks   StockLookup
	limiter  ratelimiter.RateLimiterInterface
}

// NewLogoLookupUsecase creates a new logoLookupUsecase. analyzer may be
// nil, in which case matches carry no brief.
func NewLogoLookupUsecase(d LogoDetector, a CompanyAnalyzer, s StockLookup, rl ratelimiter.RateLimiterInterface) *logoLookupUsecase {
	return &logoLookupUsecase{detector: d, analyzer: a, stocks: s, limiter: rl}
}

// IdentifyStock detects logos in the image and resolves them against
// stored stocks, most confident detection first. It returns (nil, nil)
// when no detected logo corresponds to a known stock.
func (u *logoLookupUsecase) IdentifyStock(ctx context.Context, imageData []byte) (*entity.StockMatch, error) {
	if len(imageData) == 0 {
		return nil, fmt.Errorf("image data is empty")
	}
	if len(imageData) > MaxImageSize {
		return nil, fmt.Errorf("image size exceeds maximum of %d bytes", MaxImageSize)
	}

	if u.limiter != nil {
		u.limiter.WaitIfNeeded()
	}

	logos, err := u.detector.DetectLogos(ctx, imageData)
	if err != nil {
		return nil, fmt.Errorf("logo detection failed: %w", err)
	}

	for _, logo := range logos {
		stock, err := u.stocks.FindByCompanyName(ctx, logo.Name)
		if err != nil {
			return nil, fmt.Errorf("stock lookup failed for %q: %w", logo.Name, err)
		}
		if stock == nil {
			continue
		}

		match := &entity.StockMatch{
			Stock:      stock,
			LogoName:   logo.Name,
			Confidence: logo.Confidence,
		}
		match.Brief = u.generateBrief(ctx, stock.CompanyName)
		return match, nil
	}

	return nil, nil
}

// generateBrief asks the analyzer for a company brief. Analyzer errors
// are logged and yield an empty brief.
func (u *logoLookupUsecase) generateBrief(ctx context.Context, companyName string) string {
	if u.analyzer == nil {
		return ""
	}
	prompt := fmt.Sprintf(BriefPromptTemplate, companyName)
	brief, err := u.analyzer.Analyze(ctx, prompt)
	if err != nil {
		slog.Warn("company brief generation failed", "company", companyName, "error", err)
		return ""
	}
	return brief
}
