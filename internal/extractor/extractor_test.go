package extractor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/clipdeck/clipdeck-go/internal/apperr"
)

type fakeProvider struct {
	meta     *Metadata
	err      error
	lastURL  string
	lastOpts ProviderOptions
	delay    time.Duration
}

func (f *fakeProvider) Fetch(ctx context.Context, url string, opts ProviderOptions) (*Metadata, error) {
	f.lastURL = url
	f.lastOpts = opts
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.meta, nil
}

func newExtractor(p Provider) *Extractor {
	return New(p, 5*time.Second, zerolog.Nop())
}

func TestExtract_FullLengthDuration(t *testing.T) {
	p := &fakeProvider{meta: &Metadata{Title: "Some Video", Duration: 3723, Thumbnail: "https://example.com/t.jpg"}}
	e := newExtractor(p)

	media, err := e.Extract(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "", "")
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}

	if media.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("VideoID = %q", media.VideoID)
	}
	if media.Title != "Some Video" {
		t.Errorf("Title = %q", media.Title)
	}
	if media.Duration != "1:02:03" {
		t.Errorf("Duration = %q, want 1:02:03", media.Duration)
	}
	if media.StartSeconds != 0 || media.EndSeconds != nil {
		t.Errorf("trim window = (%d, %v), want (0, nil)", media.StartSeconds, media.EndSeconds)
	}
	if media.Thumbnail != "https://example.com/t.jpg" {
		t.Errorf("Thumbnail = %q", media.Thumbnail)
	}
}

func TestExtract_TrimWindowPreferred(t *testing.T) {
	p := &fakeProvider{meta: &Metadata{Title: "Some Video", Duration: 3600}}
	e := newExtractor(p)

	media, err := e.Extract(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "0:30", "2:30")
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}

	if media.Duration != "2:00" {
		t.Errorf("Duration = %q, want trim span 2:00", media.Duration)
	}
	if media.StartSeconds != 30 {
		t.Errorf("StartSeconds = %d, want 30", media.StartSeconds)
	}
	if media.EndSeconds == nil || *media.EndSeconds != 150 {
		t.Errorf("EndSeconds = %v, want 150", media.EndSeconds)
	}
}

func TestExtract_ThumbnailFallback(t *testing.T) {
	p := &fakeProvider{meta: &Metadata{Title: "x", Duration: 10}}
	e := newExtractor(p)

	media, err := e.Extract(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "", "")
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	want := "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg"
	if media.Thumbnail != want {
		t.Errorf("Thumbnail = %q, want %q", media.Thumbnail, want)
	}
}

func TestExtract_InvalidReference(t *testing.T) {
	p := &fakeProvider{meta: &Metadata{}}
	e := newExtractor(p)

	_, err := e.Extract(context.Background(), "https://vimeo.com/12345", "", "")
	if !errors.Is(err, apperr.ErrInvalidReference) {
		t.Errorf("error = %v, want ErrInvalidReference", err)
	}
	if p.lastURL != "" {
		t.Error("provider must not be called for an unresolvable reference")
	}
}

func TestExtract_BadTimeCodes(t *testing.T) {
	p := &fakeProvider{meta: &Metadata{Duration: 100}}
	e := newExtractor(p)

	cases := []struct{ start, end string }{
		{"abc", ""},
		{"0:30", "0:xx"},
		{"2:30", "1:00"}, // end before start
		{"1:00", "1:00"}, // zero-length window
	}

	for _, tc := range cases {
		_, err := e.Extract(context.Background(), "https://youtu.be/dQw4w9WgXcQ", tc.start, tc.end)
		if !apperr.IsValidation(err) {
			t.Errorf("Extract(start=%q, end=%q) error = %v, want validation error", tc.start, tc.end, err)
		}
	}
}

func TestExtract_ProviderFailure(t *testing.T) {
	p := &fakeProvider{err: errors.New("network unreachable")}
	e := newExtractor(p)

	_, err := e.Extract(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "", "")
	if !errors.Is(err, apperr.ErrExtractionFailed) {
		t.Errorf("error = %v, want ErrExtractionFailed", err)
	}
}

func TestExtract_ProviderTimeout(t *testing.T) {
	p := &fakeProvider{meta: &Metadata{Duration: 10}, delay: 200 * time.Millisecond}
	e := New(p, 10*time.Millisecond, zerolog.Nop())

	_, err := e.Extract(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "", "")
	if !errors.Is(err, apperr.ErrExtractionFailed) {
		t.Errorf("error = %v, want ErrExtractionFailed on timeout", err)
	}
}

func TestExtract_ProviderOptions(t *testing.T) {
	p := &fakeProvider{meta: &Metadata{Duration: 10}}
	e := newExtractor(p)

	if _, err := e.Extract(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "", ""); err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if p.lastOpts != DefaultProviderOptions {
		t.Errorf("provider options = %+v, want defaults", p.lastOpts)
	}
}
