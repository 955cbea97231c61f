package extractor

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/clipdeck/clipdeck-go/internal/apperr"
	"github.com/clipdeck/clipdeck-go/internal/model"
	"github.com/clipdeck/clipdeck-go/pkg/timecode"
	"github.com/clipdeck/clipdeck-go/pkg/videoref"
)

var extractionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "clipdeck_extraction_duration_seconds",
	Help:    "Duration of video metadata provider calls.",
	Buckets: prometheus.DefBuckets,
})

// thumbnailTemplate is the deterministic fallback when the provider
// supplies no thumbnail of its own.
const thumbnailTemplate = "https://i.ytimg.com/vi/%s/hqdefault.jpg"

// Extractor normalizes an external video reference plus a trim window
// into a ClipMedia record.
type Extractor struct {
	provider Provider
	timeout  time.Duration
	logger   zerolog.Logger
}

func New(provider Provider, timeout time.Duration, logger zerolog.Logger) *Extractor {
	return &Extractor{
		provider: provider,
		timeout:  timeout,
		logger:   logger,
	}
}

// Extract resolves the video identifier, parses the trim window, and
// fetches provider metadata. Malformed input surfaces as a validation
// error; any provider or network failure is re-signaled uniformly as
// ErrExtractionFailed with the true cause logged, never returned.
func (e *Extractor) Extract(ctx context.Context, rawURL, startText, endText string) (*model.ClipMedia, error) {
	videoID, ok := videoref.ExtractID(rawURL)
	if !ok {
		return nil, apperr.ErrInvalidReference
	}

	start, err := timecode.Parse(startText)
	if err != nil {
		return nil, apperr.Validationf("invalid startTime %q", startText)
	}

	var end *int
	if endText != "" {
		v, err := timecode.Parse(endText)
		if err != nil {
			return nil, apperr.Validationf("invalid endTime %q", endText)
		}
		if v <= start {
			return nil, apperr.Validationf("endTime must be after startTime")
		}
		end = &v
	}

	fetchCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	fetchStart := time.Now()
	meta, err := e.provider.Fetch(fetchCtx, rawURL, DefaultProviderOptions)
	extractionDuration.Observe(time.Since(fetchStart).Seconds())
	if err != nil {
		e.logger.Error().Err(err).Str("videoId", videoID).Msg("metadata provider call failed")
		return nil, apperr.ErrExtractionFailed
	}

	duration := timecode.Format(meta.Duration)
	if end != nil {
		if span := timecode.FormatSpan(start, *end); span != "" {
			duration = span
		}
	}

	thumbnail := meta.Thumbnail
	if thumbnail == "" {
		thumbnail = fmt.Sprintf(thumbnailTemplate, videoID)
	}

	return &model.ClipMedia{
		VideoID:      videoID,
		Title:        meta.Title,
		Thumbnail:    thumbnail,
		Duration:     duration,
		StartSeconds: start,
		EndSeconds:   end,
	}, nil
}
