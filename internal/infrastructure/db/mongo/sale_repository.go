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

const (
	salesCollection     = "sales"
	movementsCollection = "stock_movements"
)

type MongoSaleRepository struct {
	coll *mongo.Collection
}

func NewSaleRepository(db *mongo.Database) *MongoSaleRepository {
	return &MongoSaleRepository{coll: db.Collection(salesCollection)}
}

type saleDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	ShopID          string             `bson:"shop_id"`
	CashierID       string             `bson:"cashier_id"`
	PaymentMethodID string             `bson:"payment_method_id"`
	Items           []domain.SaleItem  `bson:"items"`
	Total           float64            `bson:"total"`
	IdempotencyKey  string             `bson:"idempotency_key,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"`
}

func (r *MongoSaleRepository) Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := saleDoc{
		ShopID:          sale.ShopID,
		CashierID:       sale.CashierID,
		PaymentMethodID: sale.PaymentMethodID,
		Items:           sale.Items,
		Total:           sale.Total,
		IdempotencyKey:  sale.IdempotencyKey,
		CreatedAt:       sale.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		// A duplicate key on idempotency_key means a concurrent retry won the
		// race. Return that sale so the caller replays it.
		if mongo.IsDuplicateKeyError(err) && sale.IdempotencyKey != "" {
			return r.FindByIdempotencyKey(ctx, sale.IdempotencyKey)
		}
		return nil, fmt.Errorf("insert sale: %w", err)
	}

	created := *sale
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoSaleRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Sale, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc saleDoc
	if err := r.coll.FindOne(ctx, bson.M{"idempotency_key": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSaleNotFound
		}
		return nil, fmt.Errorf("find sale: %w", err)
	}
	return docToSale(doc), nil
}

// EnsureIndexes creates the unique sparse index backing idempotent checkout.
func (r *MongoSaleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "idempotency_key", Value: 1}},
		Options: options.Index().SetUnique(true).SetSparse(true),
	})
	return err
}

func docToSale(doc saleDoc) *domain.Sale {
	return &domain.Sale{
		ID:              doc.ID.Hex(),
		ShopID:          doc.ShopID,
		CashierID:       doc.CashierID,
		PaymentMethodID: doc.PaymentMethodID,
		Items:           doc.Items,
		Total:           doc.Total,
		IdempotencyKey:  doc.IdempotencyKey,
		CreatedAt:       doc.CreatedAt,
	}
}

// MongoMovementRepository persists the stock movement audit trail written by
// the background workers.
type MongoMovementRepository struct {
	coll *mongo.Collection
}

func NewMovementRepository(db *mongo.Database) *MongoMovementRepository {
	return &MongoMovementRepository{coll: db.Collection(movementsCollection)}
}

func (r *MongoMovementRepository) Insert(ctx context.Context, m *domain.StockMovement) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

func (r *MongoMovementRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "sale_id", Value: 1}, {Key: "stock_id", Value: 1}},
	})
	return err
}
