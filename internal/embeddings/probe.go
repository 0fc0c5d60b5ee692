package embeddings

// Capability reports whether the semantic backend can be used in this process.
type Capability struct {
	Available bool
	Reason    string
}

// Available is the capability of a usable backend.
func Available() Capability { return Capability{Available: true} }

// Unavailable returns a capability that records why the backend is unusable.
func Unavailable(reason string) Capability { return Capability{Reason: reason} }

// Probe resolves configuration and constructs a provider without contacting it.
// It never fails: every problem is reported as an unavailable capability.
func Probe(load func() (*Config, error)) (Provider, Capability) {
	cfg, err := load()
	if err != nil {
		return nil, Unavailable("cannot load embeddings config: " + err.Error())
	}
	if cfg.Provider == "" {
		return nil, Unavailable("embeddings provider is not configured")
	}
	if cfg.Provider == "openai" && cfg.APIKey == "" {
		return nil, Unavailable("embeddings API key is not configured (set HR_EMBED_API_KEY)")
	}
	prov, err := NewFromConfig(cfg)
	if err != nil {
		return nil, Unavailable(err.Error())
	}
	return prov, Available()
}
