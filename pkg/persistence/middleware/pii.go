package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/atelier/pkg/domain"
	"github.com/aretw0/atelier/pkg/ports"
)

// Mask replaces redacted property values.
const Mask = "***"

type redactionMiddleware struct {
	next     ports.DocumentStore
	patterns []*regexp.Regexp
}

// NewRedactionMiddleware creates a middleware that masks the values of
// component properties whose keys match one of the patterns.
// The document held by the caller is left untouched.
func NewRedactionMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.DocumentStore) ports.DocumentStore {
		return &redactionMiddleware{next: next, patterns: patterns}
	}
}

func (m *redactionMiddleware) Save(ctx context.Context, id string, doc *domain.Document) error {
	if doc == nil {
		return domain.NilArgument("doc")
	}
	cloned := doc.Clone()
	m.maskSpec(&cloned.Root)
	return m.next.Save(ctx, id, cloned)
}

func (m *redactionMiddleware) Load(ctx context.Context, id string) (*domain.Document, error) {
	return m.next.Load(ctx, id)
}

func (m *redactionMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *redactionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *redactionMiddleware) maskSpec(spec *domain.ComponentSpec) {
	maskMap(spec.Properties, m.patterns)
	for i := range spec.Children {
		m.maskSpec(&spec.Children[i])
	}
	for i := range spec.Containers {
		for j := range spec.Containers[i].Components {
			m.maskSpec(&spec.Containers[i].Components[j])
		}
	}
}

func maskMap(m map[string]any, patterns []*regexp.Regexp) {
	for k, v := range m {
		masked := false
		for _, p := range patterns {
			if p.MatchString(k) {
				m[k] = Mask
				masked = true
				break
			}
		}
		if masked {
			continue
		}
		switch sub := v.(type) {
		case map[string]any:
			maskMap(sub, patterns)
		case map[string]string:
			for sk := range sub {
				for _, p := range patterns {
					if p.MatchString(sk) {
						sub[sk] = Mask
						break
					}
				}
			}
		}
	}
}
