package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
llm:
  model: "llama-3.1-8b-instant"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.LLM.Model != "llama-3.1-8b-instant" {
		t.Errorf("llm model: got %s", cfg.LLM.Model)
	}
	if cfg.LLM.BaseURL == "" {
		t.Error("llm base_url should get a default")
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_missingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoad_expandModelPathRelativeToConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
embedding:
  model_path: "./models/minilm.onnx"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "models", "minilm.onnx")
	if cfg.Embedding.ModelPath != want {
		t.Errorf("model_path = %s, want %s", cfg.Embedding.ModelPath, want)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Server.Host != "localhost" {
		t.Errorf("default host: got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("default port: got %d", cfg.Server.Port)
	}
	if cfg.Search.ChunkSize != 500 || cfg.Search.ChunkOverlap != 30 {
		t.Errorf("default chunking: got size=%d overlap=%d", cfg.Search.ChunkSize, cfg.Search.ChunkOverlap)
	}
	if cfg.Search.TopK != 4 {
		t.Errorf("default top_k: got %d, want 4", cfg.Search.TopK)
	}
	if cfg.Embedding.Dimensions != 384 {
		t.Errorf("default dimensions: got %d", cfg.Embedding.Dimensions)
	}
	if cfg.LLM.APIKeyEnv != "GROQ_API_KEY" {
		t.Errorf("default api_key_env: got %s", cfg.LLM.APIKeyEnv)
	}
	if cfg.LLM.Model != "llama-3.3-70b-versatile" {
		t.Errorf("default model: got %s", cfg.LLM.Model)
	}
}

func TestApplyDefaults_keepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Search.TopK = 8
	cfg.Server.Port = 9999
	ApplyDefaults(cfg)
	if cfg.Search.TopK != 8 {
		t.Errorf("top_k overwritten: got %d", cfg.Search.TopK)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("port overwritten: got %d", cfg.Server.Port)
	}
}
