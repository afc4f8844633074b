package ingestion

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/jonathan/resume-matcher/internal/logger"
)

// URLOptions configures IngestFromURL.
type URLOptions struct {
	Fetch *fetch.Options
	// Renderer re-renders pages whose static HTML holds too little text.
	// Nil disables browser rendering.
	Renderer fetch.Renderer
}

// IngestFromURL fetches a job posting, extracts its main text with platform-specific
// selectors, and returns the cleaned text with metadata. When the static page yields too
// little text and a renderer is configured, the page is rendered and extracted again; a
// failed render keeps the static text.
func IngestFromURL(ctx context.Context, urlStr string, opts URLOptions) (string, *Metadata, error) {
	log := logger.Ctx(ctx)

	platform := fetch.DetectPlatform(urlStr)
	log.Debug().Str("url", urlStr).Str("platform", string(platform)).Msg("fetching job posting")

	result, err := fetch.URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	textContent, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	log.Debug().Int("html_bytes", len(result.HTML)).Int("text_chars", len(textContent)).Msg("extracted posting text")

	rendered := false
	if opts.Renderer != nil && fetch.ShouldUseBrowser(textContent) {
		log.Debug().Int("text_chars", len(textContent)).Msg("content too short, rendering in browser")

		browserHTML, browserErr := opts.Renderer(ctx, urlStr)
		if browserErr != nil {
			log.Warn().Err(browserErr).Msg("browser rendering failed, using static content")
		} else if browserText, err := fetch.ExtractMainText(browserHTML, contentSelectors, noiseSelectors...); err != nil {
			log.Warn().Err(err).Msg("browser content extraction failed, using static content")
		} else {
			textContent = browserText
			rendered = true
		}
	}

	cleanedText := CleanText(textContent)
	if cleanedText == "" {
		return "", nil, fmt.Errorf("%w: %s: %w", ErrContentExtractionFailed, urlStr, ErrNoText)
	}

	metadata := NewMetadata(cleanedText, urlStr)
	metadata.Platform = string(platform)
	metadata.Format = FormatHTML
	metadata.Rendered = rendered

	return cleanedText, metadata, nil
}
