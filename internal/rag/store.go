package rag

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	errx "github.com/priyaank17/real-estate-ai-assistant/internal/core/error"
)

// ProjectEmbedding is a semantic index row for one project description.
type ProjectEmbedding struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	ProjectID   uuid.UUID       `gorm:"column:project_id;type:uuid;index;not null"`
	ProjectName string          `gorm:"column:project_name;type:varchar(255)"`
	City        string          `gorm:"column:city;type:varchar(100)"`
	Content     string          `gorm:"column:content;type:text"`
	Embedding   pgvector.Vector `gorm:"column:embedding;type:vector(768)"`
}

func (ProjectEmbedding) TableName() string { return "project_embeddings" }

func (e *ProjectEmbedding) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Document is an input to indexing.
type Document struct {
	ProjectID   uuid.UUID
	ProjectName string
	City        string
	Content     string
}

// Match is a semantic search hit.
type Match struct {
	ProjectID   uuid.UUID
	ProjectName string
	City        string
	Content     string
	Distance    float64
}

// Store persists and queries project embeddings in Postgres via pgvector.
type Store struct {
	db       *gorm.DB
	embedder Embedder
}

func NewStore(db *gorm.DB, embedder Embedder) *Store {
	return &Store{db: db, embedder: embedder}
}

// Migrate creates the embeddings table. The vector extension is enabled by
// the estate schema migration.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&ProjectEmbedding{}); err != nil {
		return fmt.Errorf("migrate embeddings table: %w", err)
	}
	return nil
}

// Index embeds the documents and replaces any existing rows for the same
// projects.
func (s *Store) Index(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	texts := make([]string, 0, len(docs))
	for _, d := range docs {
		texts = append(texts, d.Content)
	}
	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return err
	}

	rows := make([]ProjectEmbedding, 0, len(docs))
	ids := make([]uuid.UUID, 0, len(docs))
	for i, d := range docs {
		rows = append(rows, ProjectEmbedding{
			ProjectID:   d.ProjectID,
			ProjectName: d.ProjectName,
			City:        d.City,
			Content:     d.Content,
			Embedding:   pgvector.NewVector(vectors[i]),
		})
		ids = append(ids, d.ProjectID)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id IN ?", ids).Delete(&ProjectEmbedding{}).Error; err != nil {
			return err
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return errx.WrapDB(err)
	}
	return nil
}

// Search returns the k nearest project descriptions by cosine distance.
func (s *Store) Search(ctx context.Context, query string, k int) ([]Match, error) {
	if k <= 0 {
		k = 5
	}

	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	qv := pgvector.NewVector(vectors[0])

	var rows []struct {
		ProjectID   uuid.UUID
		ProjectName string
		City        string
		Content     string
		Distance    float64
	}
	err = s.db.WithContext(ctx).
		Model(&ProjectEmbedding{}).
		Select("project_id, project_name, city, content, embedding <=> ? AS distance", qv).
		Clauses(clause.OrderBy{
			Expression: clause.Expr{
				SQL:  "embedding <=> ?",
				Vars: []interface{}{qv},
			},
		}).
		Limit(k).
		Find(&rows).Error
	if err != nil {
		return nil, errx.WrapDB(err)
	}

	matches := make([]Match, 0, len(rows))
	for _, r := range rows {
		matches = append(matches, Match{
			ProjectID:   r.ProjectID,
			ProjectName: r.ProjectName,
			City:        r.City,
			Content:     r.Content,
			Distance:    r.Distance,
		})
	}
	return matches, nil
}

// Count reports the number of indexed documents.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&ProjectEmbedding{}).Count(&n).Error; err != nil {
		return 0, errx.WrapDB(err)
	}
	return n, nil
}
