package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sngm3741/delivery-availability/api/internal/availability"
	"github.com/sngm3741/delivery-availability/api/internal/public/application"
	"github.com/sngm3741/delivery-availability/api/internal/public/domain"
)

// StoreRepository implements application.StoreRepository using MongoDB.
type StoreRepository struct {
	collection *mongo.Collection
}

// NewStoreRepository creates a new Mongo-backed store repository.
func NewStoreRepository(db *mongo.Database, collectionName string) *StoreRepository {
	return &StoreRepository{collection: db.Collection(collectionName)}
}

// Find returns every store matching the filter, ordered by name. Blocked stores are
// excluded up front when only open stores are wanted.
func (r *StoreRepository) Find(ctx context.Context, filter application.StoreFilter) ([]domain.Store, error) {
	mongoFilter := bson.M{}
	if filter.Category != "" {
		mongoFilter["category"] = strings.ToLower(strings.TrimSpace(filter.Category))
	}
	if filter.Keyword != "" {
		regex := primitive.Regex{Pattern: regexp.QuoteMeta(strings.TrimSpace(filter.Keyword)), Options: "i"}
		mongoFilter["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"description": regex},
		}
	}
	if filter.OpenOnly {
		mongoFilter["isActive"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, mongoFilter, opts)
	if err != nil {
		return nil, fmt.Errorf("find stores: %w", err)
	}
	defer cursor.Close(ctx)

	stores := make([]domain.Store, 0)
	for cursor.Next(ctx) {
		var doc StoreDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode store: %w", err)
		}
		stores = append(stores, mapStoreDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate stores: %w", err)
	}
	return stores, nil
}

// FindByID returns a single store by its identifier.
func (r *StoreRepository) FindByID(ctx context.Context, id string) (*domain.Store, error) {
	objectID, err := parseStoreID(id)
	if err != nil {
		return nil, err
	}
	var doc StoreDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, availability.ErrStoreNotFound
		}
		return nil, fmt.Errorf("find store %s: %w", id, err)
	}
	store := mapStoreDocument(doc)
	return &store, nil
}

func mapStoreDocument(doc StoreDocument) domain.Store {
	return domain.Store{
		ID:          doc.ID.Hex(),
		Name:        strings.TrimSpace(doc.Name),
		Category:    doc.Category,
		Description: doc.Description,
		Schedule:    mapSchedule(doc.Schedule),
		Pause:       mapPause(doc.Pause),
		Block:       mapBlock(doc.Block),
		CreatedAt:   timeValue(doc.CreatedAt),
		UpdatedAt:   timeValue(doc.UpdatedAt),
	}
}
