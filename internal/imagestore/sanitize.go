package imagestore

import "strings"

// maxTopicRunes caps the sanitized topic so filenames stay portable.
const maxTopicRunes = 50

// SanitizeTopic normalizes a topic for use in a filename: lowercase,
// filesystem-hostile characters stripped, spaces replaced by underscores,
// truncated to a portable length. An empty result falls back to "content".
func SanitizeTopic(topic string) string {
	topic = strings.ToLower(strings.TrimSpace(topic))

	var b strings.Builder
	for _, r := range topic {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*', '\'':
			// dropped
		case ' ':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}

	out := b.String()
	if runes := []rune(out); len(runes) > maxTopicRunes {
		out = string(runes[:maxTopicRunes])
	}
	if out == "" {
		return "content"
	}
	return out
}
