package engine

import (
	"embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed templates/responses.yaml
var templatesFS embed.FS

// Response selection keys. Topic keys reuse the topic name; the rest cover
// the override and escalation paths.
const (
	KeyGreeting       = "greeting"
	KeyOffensive      = "offensive"
	KeyGibberish      = "gibberish"
	KeyRepetition     = "repetition"
	KeyClarification  = "clarification"
	KeyUncertaintyOne = "uncertainty_1"
	KeyUncertaintyTwo = "uncertainty_2"
	KeyUncertaintyAck = "uncertainty_3"
	KeyHelpOne        = "help_1"
	KeyHelpTwo        = "help_2"
	KeyMotivationStep = "motivation_step"
)

// RequiredKeys is every key the state machine can route to. The library must
// carry at least one template for each.
var RequiredKeys = []string{
	"stress", "sadness", "motivation", "anger", "gita", "calm", "listening", "neutral",
	KeyGreeting, KeyOffensive, KeyGibberish, KeyRepetition, KeyClarification,
	KeyUncertaintyOne, KeyUncertaintyTwo, KeyUncertaintyAck,
	KeyHelpOne, KeyHelpTwo, KeyMotivationStep,
}

// Library is the process-wide, immutable response template collection,
// loaded once at startup.
type Library struct {
	responses map[string][]string
}

// DefaultLibrary parses the embedded template file.
func DefaultLibrary() (*Library, error) {
	data, err := templatesFS.ReadFile("templates/responses.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}
	return parseLibrary(data)
}

// LoadLibrary reads a template file from disk, for deployments that override
// the embedded defaults.
func LoadLibrary(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template file %s: %w", path, err)
	}
	return parseLibrary(data)
}

func parseLibrary(data []byte) (*Library, error) {
	var responses map[string][]string
	if err := yaml.Unmarshal(data, &responses); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Library{responses: responses}, nil
}

// Responses returns the template list for a key; nil when unregistered.
func (l *Library) Responses(key string) []string {
	return l.responses[key]
}

// Keys returns all registered keys, sorted.
func (l *Library) Keys() []string {
	keys := make([]string, 0, len(l.responses))
	for k := range l.responses {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate fails when a routed key is missing or empty. Run at startup so a
// broken template file is a boot error, not a mid-conversation surprise.
func (l *Library) Validate() error {
	for _, key := range RequiredKeys {
		if len(l.responses[key]) == 0 {
			return fmt.Errorf("template library: no responses for key %q", key)
		}
		for i, r := range l.responses[key] {
			if r == "" {
				return fmt.Errorf("template library: empty response %s[%d]", key, i)
			}
		}
	}
	return nil
}
