package videoref

import "testing"

const wantID = "dQw4w9WgXcQ"

func TestExtractID_EquivalentForms(t *testing.T) {
	urls := []string{
		"https://youtu.be/dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ?t=42",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PL123",
		"https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1",
		"https://www.youtube.com/v/dQw4w9WgXcQ?version=3",
		"https://www.youtube.com/u/someuser/dQw4w9WgXcQ",
		"http://youtube.com/watch?v=dQw4w9WgXcQ#t=0m10s",
	}

	for _, u := range urls {
		id, ok := ExtractID(u)
		if !ok {
			t.Errorf("ExtractID(%q) found no id", u)
			continue
		}
		if id != wantID {
			t.Errorf("ExtractID(%q) = %q, want %q", u, id, wantID)
		}
	}
}

func TestExtractID_Rejections(t *testing.T) {
	urls := []string{
		"",
		"https://example.com/watch?v=dQw4w9WgXcQ-too-long-anyway",
		"https://www.youtube.com/watch?v=short",
		"https://vimeo.com/123456789",
		"https://www.youtube.com/feed/subscriptions",
		"not a url at all",
	}

	for _, u := range urls {
		if id, ok := ExtractID(u); ok {
			t.Errorf("ExtractID(%q) = %q, want no match", u, id)
		}
	}
}
