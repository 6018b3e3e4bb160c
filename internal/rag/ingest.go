package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/priyaank17/real-estate-ai-assistant/internal/estate"
	logx "github.com/priyaank17/real-estate-ai-assistant/pkg/logger"
)

const ingestBatchSize = 10

// IngestProjects embeds every project description into the vector store.
// Batches keep embedding requests small; a failing batch falls back to
// per-document indexing so one bad row cannot sink the run.
func IngestProjects(ctx context.Context, store *Store, projects []estate.Project) (int, error) {
	if len(projects) == 0 {
		return 0, fmt.Errorf("no projects to ingest, seed the database first")
	}

	docs := make([]Document, 0, len(projects))
	for _, p := range projects {
		docs = append(docs, Document{
			ProjectID:   p.ID,
			ProjectName: p.Name,
			City:        p.City,
			Content:     ComposeContent(p),
		})
	}

	indexed := 0
	for i := 0; i < len(docs); i += ingestBatchSize {
		end := i + ingestBatchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[i:end]

		if err := store.Index(ctx, batch); err != nil {
			logx.Warn().Err(err).Int("batch_start", i).Msg("Batch indexing failed, retrying per document")
			for _, doc := range batch {
				if err := store.Index(ctx, []Document{doc}); err != nil {
					logx.Error().Err(err).Str("project", doc.ProjectName).Msg("Failed to index project")
					continue
				}
				indexed++
			}
			continue
		}
		indexed += len(batch)
	}

	logx.Info().Int("indexed", indexed).Int("total", len(docs)).Msg("RAG ingestion complete")
	return indexed, nil
}

// ComposeContent builds the text indexed for semantic search. Key fields are
// combined so amenity and vibe queries land on the right project.
func ComposeContent(p estate.Project) string {
	lines := []string{
		"Project Name: " + p.Name,
		"Description: " + p.Description,
		"Features: " + p.Features,
		"Facilities: " + p.Facilities,
		"City: " + p.City,
		"Property Type: " + p.PropertyType,
	}
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(strings.SplitN(l, ":", 2)[1]) == "" {
			continue
		}
		out = append(out, l)
	}
	return strings.Join(out, "\n")
}
