package timecode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalid is returned when a time string cannot be parsed as
// "mm:ss" or "hh:mm:ss".
var ErrInvalid = errors.New("invalid time code")

// Parse converts a human time string to total seconds.
// Accepted shapes: "mm:ss" and "hh:mm:ss". The empty string and "0:00"
// both parse to 0. Anything else is ErrInvalid — a malformed time code
// must surface to the caller, not collapse into a silent zero.
func Parse(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}

	parts := strings.Split(text, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalid, text)
	}

	values := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalid, text)
		}
		values[i] = n
	}

	if len(values) == 2 {
		return values[0]*60 + values[1], nil
	}
	return values[0]*3600 + values[1]*60 + values[2], nil
}

// Format renders total seconds as "h:mm:ss" when the value is an hour
// or more, else "m:ss". Trailing components are zero-padded to width 2;
// the leading component is not padded.
func Format(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	if totalSeconds >= 3600 {
		h := totalSeconds / 3600
		m := (totalSeconds % 3600) / 60
		s := totalSeconds % 60
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", totalSeconds/60, totalSeconds%60)
}

// FormatSpan renders the length of the [start, end) window as "m:ss".
// Spans are assumed short, so the minutes component is never promoted
// to hours. Returns "" when the window is not strictly positive.
func FormatSpan(startSeconds, endSeconds int) string {
	if endSeconds <= startSeconds || startSeconds < 0 {
		return ""
	}
	span := endSeconds - startSeconds
	return fmt.Sprintf("%d:%02d", span/60, span%60)
}
