package vectortext

// fontConfig holds resolved font options.
type fontConfig struct {
	backend   string
	normalize bool
}

func defaultFontConfig() fontConfig {
	return fontConfig{
		backend: defaultOutlineBackend,
	}
}

// FontOption configures LoadFont.
type FontOption func(*fontConfig)

// WithOutlineBackend selects a registered outline backend by name.
// The default is "sfnt"; "gotext" selects the go-text/typesetting parser.
// Unknown names fall back to the default backend.
func WithOutlineBackend(name string) FontOption {
	return func(c *fontConfig) {
		c.backend = name
	}
}

// WithNormalization enables an NFC pass over Add and AddIn input. There is
// no shaping beyond advance and pair kerning, so precomposed forms render
// combining sequences better. Off by default.
func WithNormalization() FontOption {
	return func(c *fontConfig) {
		c.normalize = true
	}
}
