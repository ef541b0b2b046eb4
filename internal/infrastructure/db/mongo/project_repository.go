package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/developia/translation-office/internal/core/domain"
	"github.com/developia/translation-office/internal/core/ports"
)

const collectionProjects = "projects"

// ProjectRepository persists projects. It also reads the feedback collection
// for the has-feedback list filter.
type ProjectRepository struct {
	col      *mongo.Collection
	feedback *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{
		col:      db.Collection(collectionProjects),
		feedback: db.Collection(collectionFeedback),
	}
}

type projectDoc struct {
	ID             string `bson:"_id"`
	CustomerID     string `bson:"customer_id"`
	TranslatorID   string `bson:"translator_id,omitempty"`
	TargetLanguage string `bson:"target_language"`
	OriginalFile   string `bson:"original_file"`
	TranslatedFile string `bson:"translated_file,omitempty"`
	Status         string `bson:"status"`
	CreatedAt      int64  `bson:"created_at"`
}

func toProjectDoc(p *domain.Project) projectDoc {
	return projectDoc{
		ID:             p.ID,
		CustomerID:     p.CustomerID,
		TranslatorID:   p.TranslatorID,
		TargetLanguage: p.TargetLanguage,
		OriginalFile:   p.OriginalFile,
		TranslatedFile: p.TranslatedFile,
		Status:         string(p.Status),
		CreatedAt:      p.CreatedAt.Unix(),
	}
}

func (d projectDoc) toDomain() *domain.Project {
	return &domain.Project{
		ID:             d.ID,
		CustomerID:     d.CustomerID,
		TranslatorID:   d.TranslatorID,
		TargetLanguage: d.TargetLanguage,
		OriginalFile:   d.OriginalFile,
		TranslatedFile: d.TranslatedFile,
		Status:         domain.ProjectStatus(d.Status),
		CreatedAt:      time.Unix(d.CreatedAt, 0).UTC(),
	}
}

func (r *ProjectRepository) Save(ctx context.Context, p *domain.Project) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, toProjectDoc(p), options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%w: save project: %v", domain.ErrStorage, err)
	}
	return nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d projectDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("%w: find project: %v", domain.ErrStorage, err)
	}
	return d.toDomain(), nil
}

func (r *ProjectRepository) List(ctx context.Context, filter ports.ProjectFilter) ([]*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := bson.M{}
	if filter.Status != "" {
		q["status"] = string(filter.Status)
	}
	if filter.TargetLanguage != "" {
		q["target_language"] = filter.TargetLanguage
	}
	if filter.TranslatorID != "" {
		q["translator_id"] = filter.TranslatorID
	}
	if filter.CustomerID != "" {
		q["customer_id"] = filter.CustomerID
	}
	if filter.HasFeedback != nil {
		ids, err := r.feedback.Distinct(ctx, "project_id", bson.M{})
		if err != nil {
			return nil, fmt.Errorf("%w: feedback project ids: %v", domain.ErrStorage, err)
		}
		if *filter.HasFeedback {
			q["_id"] = bson.M{"$in": ids}
		} else {
			q["_id"] = bson.M{"$nin": ids}
		}
	}

	cur, err := r.col.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("%w: list projects: %v", domain.ErrStorage, err)
	}
	defer cur.Close(ctx)

	var out []*domain.Project
	for cur.Next(ctx) {
		var d projectDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("%w: decode project: %v", domain.ErrStorage, err)
		}
		out = append(out, d.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%w: list projects: %v", domain.ErrStorage, err)
	}
	return out, nil
}

// CountByTranslator counts the translator's open projects. Closed projects no
// longer contribute to load.
func (r *ProjectRepository) CountByTranslator(ctx context.Context, translatorID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{
		"translator_id": translatorID,
		"status":        bson.M{"$ne": string(domain.StatusClosed)},
	})
	if err != nil {
		return 0, fmt.Errorf("%w: count projects: %v", domain.ErrStorage, err)
	}
	return n, nil
}

func (r *ProjectRepository) ListIDs(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	raw, err := r.col.Distinct(ctx, "_id", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%w: list project ids: %v", domain.ErrStorage, err)
	}
	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *ProjectRepository) DeleteAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("%w: delete projects: %v", domain.ErrStorage, err)
	}
	return nil
}

// EnsureIndexes creates the indexes the queries above rely on.
func (r *ProjectRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
		{Keys: bson.D{{Key: "translator_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "target_language", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

var _ ports.ProjectRepository = (*ProjectRepository)(nil)
