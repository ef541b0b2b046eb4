package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/developia/translation-office/internal/core/domain"
	"github.com/developia/translation-office/internal/core/ports"
)

const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type userDoc struct {
	ID           string   `bson:"_id"`
	Name         string   `bson:"name"`
	Email        string   `bson:"email"`
	Role         string   `bson:"role"`
	Languages    []string `bson:"languages,omitempty"`
	PasswordHash string   `bson:"password_hash,omitempty"`
	CreatedAt    int64    `bson:"created_at"`
}

func toUserDoc(u *domain.User) userDoc {
	return userDoc{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         string(u.Role),
		Languages:    u.Languages,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt.Unix(),
	}
}

func (d userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID,
		Name:         d.Name,
		Email:        d.Email,
		Role:         domain.Role(d.Role),
		Languages:    d.Languages,
		PasswordHash: d.PasswordHash,
		CreatedAt:    time.Unix(d.CreatedAt, 0).UTC(),
	}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(email)})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: find user: %v", domain.ErrStorage, err)
	}
	return d.toDomain(), nil
}

func (r *UserRepository) Save(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": u.ID}, toUserDoc(u), options.Replace().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailInUse
		}
		return fmt.Errorf("%w: save user: %v", domain.ErrStorage, err)
	}
	return nil
}

func (r *UserRepository) EmailInUse(ctx context.Context, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"email": strings.ToLower(email)})
	if err != nil {
		return false, fmt.Errorf("%w: count email: %v", domain.ErrStorage, err)
	}
	return n > 0, nil
}

func (r *UserRepository) List(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := bson.M{}
	if filter.Role != "" {
		q["role"] = string(filter.Role)
	}
	if filter.Language != "" {
		q["languages"] = strings.ToLower(filter.Language)
	}

	cur, err := r.col.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %v", domain.ErrStorage, err)
	}
	defer cur.Close(ctx)

	var out []*domain.User
	for cur.Next(ctx) {
		var d userDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("%w: decode user: %v", domain.ErrStorage, err)
		}
		out = append(out, d.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%w: list users: %v", domain.ErrStorage, err)
	}
	return out, nil
}

// TranslatorIDsByLanguage returns translator ids proficient in lang, sorted
// by creation time so the assignment policy sees a stable order.
func (r *UserRepository) TranslatorIDsByLanguage(ctx context.Context, lang string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := bson.M{"role": string(domain.RoleTranslator), "languages": strings.ToLower(lang)}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetProjection(bson.M{"_id": 1})

	cur, err := r.col.Find(ctx, q, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: list translator ids: %v", domain.ErrStorage, err)
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var d struct {
			ID string `bson:"_id"`
		}
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("%w: decode translator id: %v", domain.ErrStorage, err)
		}
		ids = append(ids, d.ID)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%w: list translator ids: %v", domain.ErrStorage, err)
	}
	return ids, nil
}

func (r *UserRepository) RoleByID(ctx context.Context, id string) (domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d struct {
		Role string `bson:"role"`
	}
	err := r.col.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{"role": 1})).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("%w: find role: %v", domain.ErrStorage, err)
	}
	return domain.Role(d.Role), nil
}

func (r *UserRepository) LanguagesByID(ctx context.Context, id string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d struct {
		Languages []string `bson:"languages"`
	}
	err := r.col.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{"languages": 1})).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: find languages: %v", domain.ErrStorage, err)
	}
	return d.Languages, nil
}

// EnsureIndexes creates the indexes the queries above rely on.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}, {Key: "languages", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

var _ ports.UserRepository = (*UserRepository)(nil)
