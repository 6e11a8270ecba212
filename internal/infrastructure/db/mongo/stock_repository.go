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

const stocksCollection = "stocks"

type MongoStockRepository struct {
	coll *mongo.Collection
}

func NewStockRepository(db *mongo.Database) *MongoStockRepository {
	return &MongoStockRepository{coll: db.Collection(stocksCollection)}
}

type stockDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	ShopID       string             `bson:"shop_id"`
	ProductID    string             `bson:"product_id"`
	ProductName  string             `bson:"product_name"`
	SellingPrice float64            `bson:"selling_price"`
	Quantity     int                `bson:"quantity"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (r *MongoStockRepository) Create(ctx context.Context, entry *domain.StockEntry) (*domain.StockEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := stockDoc{
		ShopID:       entry.ShopID,
		ProductID:    entry.ProductID,
		ProductName:  entry.ProductName,
		SellingPrice: entry.SellingPrice,
		Quantity:     entry.Quantity,
		CreatedAt:    entry.CreatedAt,
		UpdatedAt:    entry.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert stock: %w", err)
	}

	created := *entry
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoStockRepository) FindByID(ctx context.Context, id string) (*domain.StockEntry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrStockNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc stockDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStockNotFound
		}
		return nil, fmt.Errorf("find stock: %w", err)
	}
	return docToStock(doc), nil
}

func (r *MongoStockRepository) ListByShop(ctx context.Context, shopID string) ([]*domain.StockEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"shop_id": shopID},
		options.Find().SetSort(bson.D{{Key: "product_name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list stocks: %w", err)
	}
	defer cur.Close(ctx)

	var entries []*domain.StockEntry
	for cur.Next(ctx) {
		var doc stockDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode stock: %w", err)
		}
		entries = append(entries, docToStock(doc))
	}
	return entries, cur.Err()
}

func (r *MongoStockRepository) Update(ctx context.Context, entry *domain.StockEntry) error {
	oid, err := primitive.ObjectIDFromHex(entry.ID)
	if err != nil {
		return domain.ErrStockNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"selling_price": entry.SellingPrice,
		"quantity":      entry.Quantity,
		"updated_at":    entry.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrStockNotFound
	}
	return nil
}

// Decrement atomically subtracts n units, matching only when at least n
// remain. The conditional filter is what keeps two concurrent sales from
// overselling the same entry.
func (r *MongoStockRepository) Decrement(ctx context.Context, stockID string, n int) (int, error) {
	oid, err := primitive.ObjectIDFromHex(stockID)
	if err != nil {
		return 0, domain.ErrStockNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "quantity": bson.M{"$gte": n}}
	update := bson.M{
		"$inc": bson.M{"quantity": -n},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}

	var doc stockDoc
	err = r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err == nil {
		return doc.Quantity, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return 0, fmt.Errorf("decrement stock: %w", err)
	}

	// No match: either the entry is gone or the condition failed.
	if _, findErr := r.FindByID(ctx, stockID); findErr != nil {
		return 0, findErr
	}
	return 0, domain.ErrInsufficientStock
}

// Increment adds n units back, compensating a partially applied sale.
func (r *MongoStockRepository) Increment(ctx context.Context, stockID string, n int) error {
	oid, err := primitive.ObjectIDFromHex(stockID)
	if err != nil {
		return domain.ErrStockNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$inc": bson.M{"quantity": n},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrStockNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the stocks collection.
func (r *MongoStockRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "shop_id", Value: 1}}},
		{Keys: bson.D{{Key: "shop_id", Value: 1}, {Key: "product_name", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func docToStock(doc stockDoc) *domain.StockEntry {
	return &domain.StockEntry{
		ID:           doc.ID.Hex(),
		ShopID:       doc.ShopID,
		ProductID:    doc.ProductID,
		ProductName:  doc.ProductName,
		SellingPrice: doc.SellingPrice,
		Quantity:     doc.Quantity,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}
