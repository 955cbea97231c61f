package extractor

import "context"

// ProviderOptions is the fixed configuration passed on every metadata
// provider call. The fields are enumerated explicitly so every call
// site requests identical provider behavior.
type ProviderOptions struct {
	ConsolidatedOutput      bool // single consolidated metadata document
	SuppressWarnings        bool
	SkipCertValidation      bool
	PreferOpenFormats       bool
	SkipUnreliableManifests bool // manifest variants without reliable durations
}

// DefaultProviderOptions is used for all extraction requests.
var DefaultProviderOptions = ProviderOptions{
	ConsolidatedOutput:      true,
	SuppressWarnings:        true,
	SkipCertValidation:      true,
	PreferOpenFormats:       true,
	SkipUnreliableManifests: true,
}

// Metadata is the provider's view of an external video.
type Metadata struct {
	Title     string
	Duration  int // total length in seconds
	Thumbnail string
}

// Provider fetches metadata for an external video URL.
type Provider interface {
	Fetch(ctx context.Context, url string, opts ProviderOptions) (*Metadata, error)
}
