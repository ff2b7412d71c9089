package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Embedding.ModelPath == "" {
		cfg.Embedding.ModelPath = "/usr/local/var/kaiwa/models/all-MiniLM-L6-v2.onnx"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 384
	}
	if cfg.Embedding.MaxTokens == 0 {
		cfg.Embedding.MaxTokens = 256
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 10000
	}
	if cfg.Search.ChunkSize == 0 {
		cfg.Search.ChunkSize = 500
	}
	if cfg.Search.ChunkOverlap == 0 {
		cfg.Search.ChunkOverlap = 30
	}
	// Fixed retrieval depth rather than an implicit library default.
	if cfg.Search.TopK == 0 {
		cfg.Search.TopK = 4
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "llama-3.3-70b-versatile"
	}
	if cfg.LLM.APIKeyEnv == "" {
		cfg.LLM.APIKeyEnv = "GROQ_API_KEY"
	}
}
