package rag

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// EmbeddingDim is the output dimensionality requested from the embedding
// model; it must match the vector column width.
const EmbeddingDim = 768

// Embedder turns text into dense vectors.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// GeminiEmbedder embeds text through the Gemini embedContent API.
type GeminiEmbedder struct {
	client *genai.Client
	model  string
}

func NewGeminiEmbedder(client *genai.Client, model string) *GeminiEmbedder {
	if model == "" {
		model = "gemini-embedding-001"
	}
	return &GeminiEmbedder{client: client, model: model}
}

func (e *GeminiEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, t := range texts {
		contents = append(contents, genai.NewContentFromText(t, genai.RoleUser))
	}

	resp, err := e.client.Models.EmbedContent(ctx, e.model, contents, &genai.EmbedContentConfig{
		OutputDimensionality: genai.Ptr(int32(EmbeddingDim)),
	})
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: got %d, want %d", len(resp.Embeddings), len(texts))
	}

	vectors := make([][]float32, 0, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, fmt.Errorf("empty embedding at index %d", i)
		}
		vectors = append(vectors, emb.Values)
	}
	return vectors, nil
}
