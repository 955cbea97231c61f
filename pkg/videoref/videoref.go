package videoref

import "regexp"

// IDLength is the fixed length of a platform video identifier.
const IDLength = 11

// idRe captures the video identifier from the URL shapes we accept:
// short links (youtu.be/<id>), /v/<id>, /u/<user>/<id>, /embed/<id>
// and the canonical watch?v=<id> query form, with arbitrary trailing
// path or query noise. This is deliberately a pattern matcher with a
// fixed acceptance length, not a URL parser.
var idRe = regexp.MustCompile(`(?:youtu\.be/|/v/|/u/\w+/|/embed/|[?&]v=)([A-Za-z0-9_-]+)`)

// ExtractID pulls the canonical video identifier out of a URL string.
// The captured token is accepted only when it is exactly 11 characters;
// anything else reports no match.
func ExtractID(url string) (string, bool) {
	m := idRe.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	if len(m[1]) != IDLength {
		return "", false
	}
	return m[1], true
}
