package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
)

// YtdlpProvider shells out to a yt-dlp binary for video metadata.
type YtdlpProvider struct {
	binPath string
}

func NewYtdlpProvider(binPath string) *YtdlpProvider {
	if binPath == "" {
		binPath = "yt-dlp"
	}
	return &YtdlpProvider{binPath: binPath}
}

// ytdlpDocument is the subset of yt-dlp's JSON output we consume.
type ytdlpDocument struct {
	Title     string  `json:"title"`
	Duration  float64 `json:"duration"`
	Thumbnail string  `json:"thumbnail"`
}

// Fetch runs yt-dlp against the URL and parses its metadata document.
// The caller bounds the call with a context deadline.
func (p *YtdlpProvider) Fetch(ctx context.Context, url string, opts ProviderOptions) (*Metadata, error) {
	var args []string
	if opts.ConsolidatedOutput {
		args = append(args, "--dump-single-json")
	}
	if opts.SuppressWarnings {
		args = append(args, "--no-warnings")
	}
	if opts.SkipCertValidation {
		args = append(args, "--no-check-certificates")
	}
	if opts.PreferOpenFormats {
		args = append(args, "--prefer-free-formats")
	}
	if opts.SkipUnreliableManifests {
		args = append(args, "--youtube-skip-dash-manifest")
	}
	args = append(args, "--skip-download", url)

	cmd := exec.CommandContext(ctx, p.binPath, args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("yt-dlp: %w: %s", err, exitErr.Stderr)
		}
		return nil, fmt.Errorf("yt-dlp: %w", err)
	}

	var doc ytdlpDocument
	if err := json.Unmarshal(out, &doc); err != nil {
		return nil, fmt.Errorf("yt-dlp: parse output: %w", err)
	}

	return &Metadata{
		Title:     doc.Title,
		Duration:  int(doc.Duration),
		Thumbnail: doc.Thumbnail,
	}, nil
}
