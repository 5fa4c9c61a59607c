// Package catalogfile loads the item catalog from a YAML file.
package catalogfile

import "time"

// Option applies a configuration option to the Provider.
type Option func(*Provider)

// WithWatch enables filesystem watching and hot reload.
func WithWatch(watch bool) Option {
	return func(p *Provider) {
		p.watch = watch
	}
}

// WithReloadDebounce sets how long to wait after a file event before
// reloading.
func WithReloadDebounce(d time.Duration) Option {
	return func(p *Provider) {
		if d > 0 {
			p.reloadDebounce = d
		}
	}
}
