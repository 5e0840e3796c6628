package siteconfig

import (
	"context"
	"fmt"
	"sync"
)

// Loader fetches the site config at most once and caches the outcome, error
// included, for the life of the process.
type Loader struct {
	source Source

	once sync.Once
	cfg  *AppConfig
	err  error
}

func NewLoader(source Source) *Loader {
	return &Loader{source: source}
}

// Load returns the cached config, fetching it on the first call.
func (l *Loader) Load(ctx context.Context) (*AppConfig, error) {
	l.once.Do(func() {
		data, err := l.source.Fetch(ctx)
		if err != nil {
			l.err = fmt.Errorf("fetch site config from %s: %w", l.source, err)
			return
		}
		l.cfg, l.err = Parse(data)
	})
	return l.cfg, l.err
}
