package config

// ChainLoader merges the output of its loaders in order; later loaders
// override earlier ones key by key. A loader whose files are all missing is
// skipped, any other failure aborts the chain.
type ChainLoader struct {
	loaders []Loader
}

func NewChainLoader(loaders ...Loader) *ChainLoader {
	return &ChainLoader{loaders: loaders}
}

func (c *ChainLoader) Load() (map[string]any, error) {
	final := make(map[string]any)
	var lastErr error
	loaded := false

	for _, loader := range c.loaders {
		config, err := loader.Load()
		if err != nil {
			if ErrPathNotFound.Is(err) {
				lastErr = err
				continue
			}
			return nil, err
		}
		loaded = true

		if err = mergeMaps(final, config); err != nil {
			return nil, ErrMergeFailed.WithCause(err)
		}
	}

	if !loaded {
		return nil, ErrNoConfigSource.WithCause(lastErr)
	}

	return final, nil
}

func mergeMaps(dst, src map[string]any) error {
	for k, v := range src {
		if vMap, ok := v.(map[string]any); ok {
			if dstMap, ok := dst[k].(map[string]any); ok {
				if err := mergeMaps(dstMap, vMap); err != nil {
					return err
				}
				continue
			}
			cp := make(map[string]any, len(vMap))
			if err := mergeMaps(cp, vMap); err != nil {
				return err
			}
			v = cp
		}
		dst[k] = v
	}
	return nil
}
