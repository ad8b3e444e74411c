package crisis

import (
	"fmt"
	"os"
	"strings"

	"mindwell-companion/internal/domain/ports/adapter"
)

// defaultText is only a development placeholder. Deployments must point
// engine.crisis_text_file at text carrying the correct local emergency
// numbers; shipping a single hard-coded hotline would be wrong for most
// jurisdictions.
const defaultText = "It sounds like you're going through something really serious. " +
	"You deserve immediate support from a real person. Please reach out to your " +
	"local emergency number or a crisis helpline right now. If you can, talk to " +
	"someone you trust nearby. You are not alone."

var _ adapter.CrisisResponder = (*FileResponder)(nil)

// FileResponder serves the crisis text from a configured file, falling back
// to the built-in placeholder when no file is configured.
type FileResponder struct {
	text string
}

func NewFileResponder(path string) (*FileResponder, error) {
	if path == "" {
		return &FileResponder{text: defaultText}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read crisis text file %s: %w", path, err)
	}
	text := strings.TrimSpace(string(b))
	if text == "" {
		return nil, fmt.Errorf("crisis text file %s is empty", path)
	}
	return &FileResponder{text: text}, nil
}

func (r *FileResponder) Text() string { return r.text }

// Static wraps a fixed string as a CrisisResponder, mainly for tests.
type Static string

func (s Static) Text() string { return string(s) }
