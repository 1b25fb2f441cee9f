package render

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/pkg/model"
)

// SelectAttributes resolves the attributes a renderer should emit. include
// limits and orders the result (empty keeps declaration order); exclude
// drops names. Unknown names in include fail with model.ErrUnknownAttribute.
func SelectAttributes(form *model.FormModel, include, exclude []string) ([]string, error) {
	if form == nil {
		return nil, nil
	}
	skip := normaliseTokens(exclude)

	source := form.Attributes()
	if len(include) > 0 {
		source = make([]string, 0, len(include))
		for _, name := range include {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if !form.Has(name) {
				return nil, fmt.Errorf("render: select attributes: %w: %q", model.ErrUnknownAttribute, name)
			}
			source = append(source, name)
		}
	}

	out := make([]string, 0, len(source))
	seen := make(map[string]struct{}, len(source))
	for _, name := range source {
		if _, dropped := skip[name]; dropped {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}

func normaliseTokens(values []string) map[string]struct{} {
	result := make(map[string]struct{}, len(values))
	for _, value := range values {
		if token := strings.TrimSpace(value); token != "" {
			result[token] = struct{}{}
		}
	}
	return result
}
