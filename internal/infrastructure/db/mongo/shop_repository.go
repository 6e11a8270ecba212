package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Flasky06/unify-pos/internal/core/domain"
)

const shopsCollection = "shops"

type MongoShopRepository struct {
	coll *mongo.Collection
}

func NewShopRepository(db *mongo.Database) *MongoShopRepository {
	return &MongoShopRepository{coll: db.Collection(shopsCollection)}
}

type shopDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Location  string             `bson:"location,omitempty"`
	OwnerID   string             `bson:"owner_id"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (r *MongoShopRepository) Create(ctx context.Context, shop *domain.Shop) (*domain.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := shopDoc{
		Name:      shop.Name,
		Location:  shop.Location,
		OwnerID:   shop.OwnerID,
		CreatedAt: shop.CreatedAt,
		UpdatedAt: shop.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert shop: %w", err)
	}

	created := *shop
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoShopRepository) FindByID(ctx context.Context, id string) (*domain.Shop, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrShopNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc shopDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShopNotFound
		}
		return nil, fmt.Errorf("find shop: %w", err)
	}
	return docToShop(doc), nil
}

// List returns shops for the given owner; an empty ownerID returns all shops.
func (r *MongoShopRepository) List(ctx context.Context, ownerID string) ([]*domain.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if ownerID != "" {
		filter["owner_id"] = ownerID
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	defer cur.Close(ctx)

	var shops []*domain.Shop
	for cur.Next(ctx) {
		var doc shopDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode shop: %w", err)
		}
		shops = append(shops, docToShop(doc))
	}
	return shops, cur.Err()
}

func (r *MongoShopRepository) Update(ctx context.Context, shop *domain.Shop) error {
	oid, err := primitive.ObjectIDFromHex(shop.ID)
	if err != nil {
		return domain.ErrShopNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":       shop.Name,
		"location":   shop.Location,
		"updated_at": shop.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update shop: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrShopNotFound
	}
	return nil
}

func (r *MongoShopRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrShopNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete shop: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrShopNotFound
	}
	return nil
}

func docToShop(doc shopDoc) *domain.Shop {
	return &domain.Shop{
		ID:        doc.ID.Hex(),
		Name:      doc.Name,
		Location:  doc.Location,
		OwnerID:   doc.OwnerID,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
