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

const collectionFeedback = "feedback"

type FeedbackRepository struct {
	col *mongo.Collection
}

func NewFeedbackRepository(db *mongo.Database) *FeedbackRepository {
	return &FeedbackRepository{col: db.Collection(collectionFeedback)}
}

type feedbackDoc struct {
	ID        string `bson:"_id"`
	ProjectID string `bson:"project_id"`
	Reason    string `bson:"reason"`
	CreatedAt int64  `bson:"created_at"`
}

func toFeedbackDoc(f *domain.Feedback) feedbackDoc {
	return feedbackDoc{
		ID:        f.ID,
		ProjectID: f.ProjectID,
		Reason:    f.Reason,
		CreatedAt: f.CreatedAt.Unix(),
	}
}

func (d feedbackDoc) toDomain() *domain.Feedback {
	return &domain.Feedback{
		ID:        d.ID,
		ProjectID: d.ProjectID,
		Reason:    d.Reason,
		CreatedAt: time.Unix(d.CreatedAt, 0).UTC(),
	}
}

// GetByProjectID returns the project's current feedback; when the store holds
// more than one row the newest wins.
func (r *FeedbackRepository) GetByProjectID(ctx context.Context, projectID string) (*domain.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var d feedbackDoc
	if err := r.col.FindOne(ctx, bson.M{"project_id": projectID}, opts).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("%w: find feedback: %v", domain.ErrStorage, err)
	}
	return d.toDomain(), nil
}

func (r *FeedbackRepository) Save(ctx context.Context, f *domain.Feedback) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": f.ID}, toFeedbackDoc(f), options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%w: save feedback: %v", domain.ErrStorage, err)
	}
	return nil
}

func (r *FeedbackRepository) DeleteByProjectID(ctx context.Context, projectID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"project_id": projectID}); err != nil {
		return fmt.Errorf("%w: delete feedback: %v", domain.ErrStorage, err)
	}
	return nil
}

func (r *FeedbackRepository) DeleteAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("%w: delete feedback: %v", domain.ErrStorage, err)
	}
	return nil
}

func (r *FeedbackRepository) GetAllByProjectIDs(ctx context.Context, projectIDs []string) ([]*domain.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if len(projectIDs) == 0 {
		return nil, nil
	}

	cur, err := r.col.Find(ctx, bson.M{"project_id": bson.M{"$in": projectIDs}})
	if err != nil {
		return nil, fmt.Errorf("%w: bulk feedback: %v", domain.ErrStorage, err)
	}
	defer cur.Close(ctx)

	var out []*domain.Feedback
	for cur.Next(ctx) {
		var d feedbackDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("%w: decode feedback: %v", domain.ErrStorage, err)
		}
		out = append(out, d.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%w: bulk feedback: %v", domain.ErrStorage, err)
	}
	return out, nil
}

// EnsureIndexes creates the project_id index backing lookups and deletes.
func (r *FeedbackRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "project_id", Value: 1}},
	})
	return err
}

var _ ports.FeedbackRepository = (*FeedbackRepository)(nil)
