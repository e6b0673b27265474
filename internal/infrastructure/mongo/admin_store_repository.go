package mongo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sngm3741/delivery-availability/api/internal/admin/application"
	admindomain "github.com/sngm3741/delivery-availability/api/internal/admin/domain"
	"github.com/sngm3741/delivery-availability/api/internal/availability"
)

const (
	defaultAdminPageSize = 20
	maxAdminPageSize     = 100
)

// AdminStoreRepository is the MongoDB implementation of the admin store port.
type AdminStoreRepository struct {
	collection *mongo.Collection
}

// NewAdminStoreRepository binds the repository to a collection.
func NewAdminStoreRepository(db *mongo.Database, collection string) *AdminStoreRepository {
	return &AdminStoreRepository{collection: db.Collection(collection)}
}

// Find returns stores matching the filter ordered by name.
func (r *AdminStoreRepository) Find(ctx context.Context, filter application.StoreFilter, paging application.Paging) ([]admindomain.Store, error) {
	clauses := make([]bson.M, 0)
	if filter.Category != "" {
		clauses = append(clauses, bson.M{"category": strings.ToLower(strings.TrimSpace(filter.Category))})
	}
	if filter.Keyword != "" {
		regex := primitive.Regex{Pattern: regexp.QuoteMeta(strings.TrimSpace(filter.Keyword)), Options: "i"}
		clauses = append(clauses, bson.M{"$or": bson.A{
			bson.M{"name": regex},
			bson.M{"description": regex},
		}})
	}
	if filter.BlockedOnly {
		clauses = append(clauses, bson.M{"isActive": false})
	}
	mongoFilter := bson.M{}
	if len(clauses) == 1 {
		mongoFilter = clauses[0]
	} else if len(clauses) > 1 {
		mongoFilter["$and"] = clauses
	}

	limit := paging.Limit
	if limit <= 0 {
		limit = defaultAdminPageSize
	}
	if limit > maxAdminPageSize {
		limit = maxAdminPageSize
	}
	page := paging.Page
	if page <= 0 {
		page = 1
	}

	// A page whose offset does not fit in int64 is past every document.
	if int64(page-1) > math.MaxInt64/int64(limit) {
		return []admindomain.Store{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	opts.SetLimit(int64(limit))
	opts.SetSkip(int64(page-1) * int64(limit))

	cursor, err := r.collection.Find(ctx, mongoFilter, opts)
	if err != nil {
		return nil, fmt.Errorf("find stores: %w", err)
	}
	defer cursor.Close(ctx)

	stores := make([]admindomain.Store, 0)
	for cursor.Next(ctx) {
		var doc StoreDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode store: %w", err)
		}
		stores = append(stores, mapAdminStore(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate stores: %w", err)
	}
	return stores, nil
}

// FindByID loads one store. Unknown or malformed ids yield availability.ErrStoreNotFound.
func (r *AdminStoreRepository) FindByID(ctx context.Context, id string) (*admindomain.Store, error) {
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
	store := mapAdminStore(doc)
	return &store, nil
}

// Create inserts a new store and assigns its id.
func (r *AdminStoreRepository) Create(ctx context.Context, store *admindomain.Store) error {
	if store == nil {
		return fmt.Errorf("store payload is nil")
	}
	doc := buildStoreDocument(store)
	doc.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert store: %w", err)
	}
	store.ID = doc.ID.Hex()
	return nil
}

func (r *AdminStoreRepository) SaveSchedule(ctx context.Context, id string, schedule availability.WeeklySchedule, updatedAt time.Time) error {
	return r.set(ctx, id, bson.M{
		"schedule":  buildScheduleDocument(schedule),
		"updatedAt": updatedAt.UTC(),
	})
}

func (r *AdminStoreRepository) SavePause(ctx context.Context, id string, pause availability.Pause, updatedAt time.Time) error {
	return r.set(ctx, id, bson.M{
		"pause":     buildPauseDocument(pause),
		"updatedAt": updatedAt.UTC(),
	})
}

// SaveBlock writes the block together with the derived isActive flag.
func (r *AdminStoreRepository) SaveBlock(ctx context.Context, id string, block availability.Block, updatedAt time.Time) error {
	return r.set(ctx, id, bson.M{
		"block":     buildBlockDocument(block),
		"isActive":  !block.Blocked,
		"updatedAt": updatedAt.UTC(),
	})
}

// ClearExpiredPause resets the pause only while it is still the one that started at
// startedAt. A pause replaced in the meantime is left alone and nil is returned.
// A zero startedAt matches a stored pause without startedAt.
func (r *AdminStoreRepository) ClearExpiredPause(ctx context.Context, id string, startedAt time.Time) error {
	objectID, err := parseStoreID(id)
	if err != nil {
		return err
	}
	filter := bson.M{
		"_id":          objectID,
		"pause.active": true,
	}
	if startedAt.IsZero() {
		filter["pause.startedAt"] = bson.M{"$exists": false}
	} else {
		filter["pause.startedAt"] = startedAt.UTC()
	}
	update := bson.M{"$set": bson.M{"pause": PauseDocument{}}}
	if _, err := r.collection.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("clear expired pause %s: %w", id, err)
	}
	return nil
}

func (r *AdminStoreRepository) set(ctx context.Context, id string, fields bson.M) error {
	objectID, err := parseStoreID(id)
	if err != nil {
		return err
	}
	result, err := r.collection.UpdateByID(ctx, objectID, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update store %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return availability.ErrStoreNotFound
	}
	return nil
}

// parseStoreID treats a malformed hex id as an unknown store.
func parseStoreID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid id %q", availability.ErrStoreNotFound, id)
	}
	return objectID, nil
}

func mapAdminStore(doc StoreDocument) admindomain.Store {
	return admindomain.Store{
		ID:          doc.ID.Hex(),
		Name:        admindomain.StoreName(strings.TrimSpace(doc.Name)),
		Category:    admindomain.Category(doc.Category),
		Description: admindomain.Description(doc.Description),
		Schedule:    mapSchedule(doc.Schedule),
		Pause:       mapPause(doc.Pause),
		Block:       mapBlock(doc.Block),
		CreatedAt:   timeValue(doc.CreatedAt),
		UpdatedAt:   timeValue(doc.UpdatedAt),
	}
}

func buildStoreDocument(store *admindomain.Store) StoreDocument {
	doc := StoreDocument{
		Name:        store.Name.String(),
		Category:    store.Category.String(),
		Description: store.Description.String(),
		Schedule:    buildScheduleDocument(store.Schedule),
		Pause:       buildPauseDocument(store.Pause),
		Block:       buildBlockDocument(store.Block),
		IsActive:    store.IsActive(),
	}
	if !store.CreatedAt.IsZero() {
		createdAt := store.CreatedAt.UTC()
		doc.CreatedAt = &createdAt
	}
	if !store.UpdatedAt.IsZero() {
		updatedAt := store.UpdatedAt.UTC()
		doc.UpdatedAt = &updatedAt
	}
	return doc
}
