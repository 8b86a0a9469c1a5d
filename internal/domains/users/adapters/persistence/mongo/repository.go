package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Apurer/quickbite-api/internal/domains/users/domain"
	"github.com/Apurer/quickbite-api/internal/domains/users/ports"
)

// CollectionName is the MongoDB collection holding accounts.
const CollectionName = "users"

var _ ports.Repository = (*Repository)(nil)

// Repository persists users in a MongoDB collection.
type Repository struct {
	col *mongo.Collection
}

// NewRepository binds the users collection and ensures the unique username index.
func NewRepository(ctx context.Context, db *mongo.Database) (*Repository, error) {
	col := db.Collection(CollectionName)
	_, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_username"),
	})
	if err != nil {
		return nil, err
	}
	return &Repository{col: col}, nil
}

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	OrderIDs     []string           `bson:"order_ids"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := userDocument{
		ID:           primitive.NewObjectID(),
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Role:         string(user.RoleOrDefault()),
		OrderIDs:     append([]string{}, user.OrderIDs...),
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ports.ErrAlreadyExists
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *Repository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return nil, ports.ErrNotFound
	}
	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"username":      user.Username,
		"password_hash": user.PasswordHash,
		"role":          string(user.Role),
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ports.ErrAlreadyExists
		}
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, user.ID)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ports.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *Repository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *Repository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *Repository) List(ctx context.Context) ([]*domain.User, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(docs))
	for i := range docs {
		users = append(users, docs[i].toDomain())
	}
	return users, nil
}

// AppendOrder uses $push so concurrent placements never overwrite each other.
func (r *Repository) AppendOrder(ctx context.Context, userID, orderID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ports.ErrNotFound
	}
	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$push": bson.M{"order_ids": orderID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (d userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		Role:         domain.Role(d.Role),
		OrderIDs:     d.OrderIDs,
	}
}
