package notemark

// RenderOption configures rendering behavior.
type RenderOption func(*renderConfig)

type renderConfig struct {
	softWrap  bool
	rawHTML   bool
	container string
	aliases   map[string]string
}

func newRenderConfig(opts []RenderOption) renderConfig {
	cfg := renderConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithSoftWrap enables hard breaking of words longer than the wrap width.
func WithSoftWrap(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.softWrap = enabled
	}
}

// WithRawHTML disables escaping of text and class lists in HTML output.
func WithRawHTML(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.rawHTML = enabled
	}
}

// WithContainer wraps HTML output in a div carrying the given class attribute.
func WithContainer(class string) RenderOption {
	return func(cfg *renderConfig) {
		cfg.container = class
	}
}

// WithClassAliases maps custom class names to class lists for terminal rendering.
// HTML output keeps class lists as written.
func WithClassAliases(aliases map[string]string) RenderOption {
	return func(cfg *renderConfig) {
		cfg.aliases = aliases
	}
}
