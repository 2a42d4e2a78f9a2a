package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/ajramos/bucketui/internal/config"
)

// Source is one configured storage endpoint with its clients.
type Source struct {
	Name          string
	Label         string
	DefaultBucket string
	Client        ObjectAPI
	Presigner     PresignAPI
}

// SourceManager holds the sources in configuration order.
type SourceManager struct {
	sources     []*Source
	byName      map[string]*Source
	defaultName string
}

// NewSourceManager builds clients for every configured source.
func NewSourceManager(ctx context.Context, cfg *config.Config) (*SourceManager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	sources := make([]*Source, 0, len(cfg.Sources))
	for _, sc := range cfg.Sources {
		client, presigner, err := NewClient(ctx, sc)
		if err != nil {
			return nil, err
		}
		sources = append(sources, &Source{
			Name:          sc.Name,
			Label:         sc.Label(),
			DefaultBucket: strings.TrimSpace(sc.DefaultBucket),
			Client:        client,
			Presigner:     presigner,
		})
	}
	return NewSourceManagerFrom(sources, cfg.DefaultSourceName())
}

// NewSourceManagerFrom wraps already built sources. An empty defaultName picks the first source.
func NewSourceManagerFrom(sources []*Source, defaultName string) (*SourceManager, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("no storage sources configured")
	}

	m := &SourceManager{byName: make(map[string]*Source, len(sources))}
	for _, s := range sources {
		if s == nil || s.Name == "" {
			return nil, fmt.Errorf("storage source without a name")
		}
		if _, dup := m.byName[s.Name]; dup {
			return nil, fmt.Errorf("duplicate storage source %q", s.Name)
		}
		m.byName[s.Name] = s
		m.sources = append(m.sources, s)
	}

	if defaultName == "" {
		defaultName = sources[0].Name
	}
	if _, ok := m.byName[defaultName]; !ok {
		return nil, fmt.Errorf("default source %q is not configured", defaultName)
	}
	m.defaultName = defaultName
	return m, nil
}

// Sources returns the sources in configuration order.
func (m *SourceManager) Sources() []*Source {
	out := make([]*Source, len(m.sources))
	copy(out, m.sources)
	return out
}

// DefaultName returns the name of the default source.
func (m *SourceManager) DefaultName() string {
	return m.defaultName
}

// Resolve returns the named source. A blank name resolves to the default source.
func (m *SourceManager) Resolve(name string) (*Source, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = m.defaultName
	}
	s, ok := m.byName[name]
	return s, ok
}
