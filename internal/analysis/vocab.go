package analysis

import (
	_ "embed"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed vocab.yaml
var vocabYAML []byte

// channelVocabulary loads the per-channel keyword lists used by the
// relevance check. Channels absent from the file are simply not checked.
func channelVocabulary() map[string][]string {
	var raw map[string][]string
	if err := yaml.Unmarshal(vocabYAML, &raw); err != nil {
		// The file is embedded and validated by tests; an unparsable
		// vocabulary disables the relevance check rather than failing.
		return map[string][]string{}
	}
	vocab := make(map[string][]string, len(raw))
	for channel, keywords := range raw {
		normalized := make([]string, 0, len(keywords))
		for _, keyword := range keywords {
			keyword = strings.ToLower(strings.TrimSpace(keyword))
			if keyword != "" {
				normalized = append(normalized, keyword)
			}
		}
		vocab[strings.ToLower(strings.TrimSpace(channel))] = normalized
	}
	return vocab
}
