package proxy

import "mercator-hq/callisto/pkg/config"

// configDefaults carries proxy flag defaults read from configuration.
type configDefaults struct {
	optimize    bool
	opaque      bool
	exposeProxy bool
	freeze      bool
}

// NewFactoryFromConfig creates a factory driven by the engine
// configuration: NewConfig applies the proxy flag defaults, and
// validation.enabled gates synthesis-time target-class inspection. A c of
// nil is the same as calling NewFactory. When proxy.freeze is set, every
// configuration is frozen as soon as its proxy is synthesized.
func NewFactoryFromConfig(c *config.Config, opts ...FactoryOption) *Factory {
	f := NewFactory(opts...)
	if c != nil {
		f.defaults = &configDefaults{
			optimize:    c.Proxy.Optimize,
			opaque:      c.Proxy.Opaque,
			exposeProxy: c.Proxy.ExposeProxy,
			freeze:      c.Proxy.Freeze,
		}
		f.validate = c.Validation.Enabled
	}
	return f
}

// NewConfig creates a proxy configuration seeded with the factory's
// defaults. Without configured defaults it is equivalent to the package
// level NewConfig.
func (f *Factory) NewConfig() *Config {
	c := NewConfig()
	if f.defaults == nil {
		return c
	}
	// The config is fresh and unfrozen, so the mutators cannot fail.
	_ = c.SetOptimize(f.defaults.optimize)
	_ = c.SetOpaque(f.defaults.opaque)
	_ = c.SetExposeProxy(f.defaults.exposeProxy)
	return c
}
