package domain

// CacheKey combines the corpus hash with everything else that influences the result.
func CacheKey(corpusHash, rulesVersion string, cfg EngineConfig) string {
	return rulesVersion + "|" + cfg.Fingerprint() + "|" + corpusHash
}
