//go:build !cgo
// +build !cgo

package embedding

import (
	"context"
	"errors"
)

// ONNXEmbedder stub type when built without CGO (see onnx.go for the real implementation).
type ONNXEmbedder struct{}

// NewONNXEmbedder returns an error when built without CGO.
func NewONNXEmbedder(_ string, _, _, _ int) (*ONNXEmbedder, error) {
	return nil, errors.New("ONNX embedder requires CGO; build with CGO_ENABLED=1 and onnxruntime installed")
}

// Embed is unavailable when built without CGO.
func (e *ONNXEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return nil, errors.New("ONNX embedder requires CGO")
}

// EmbedBatch is unavailable when built without CGO.
func (e *ONNXEmbedder) EmbedBatch(_ context.Context, _ []string) ([][]float32, error) {
	return nil, errors.New("ONNX embedder requires CGO")
}

// Dimensions is unavailable when built without CGO.
func (e *ONNXEmbedder) Dimensions() int { return 0 }

// Close is a no-op when built without CGO.
func (e *ONNXEmbedder) Close() error { return nil }
