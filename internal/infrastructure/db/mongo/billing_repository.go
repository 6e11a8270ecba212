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
	paymentMethodsCollection = "payment_methods"
	plansCollection          = "subscription_plans"
	subscriptionsCollection  = "subscriptions"
)

type MongoPaymentMethodRepository struct {
	coll *mongo.Collection
}

func NewPaymentMethodRepository(db *mongo.Database) *MongoPaymentMethodRepository {
	return &MongoPaymentMethodRepository{coll: db.Collection(paymentMethodsCollection)}
}

type paymentMethodDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	IsActive bool               `bson:"is_active"`
}

func (r *MongoPaymentMethodRepository) List(ctx context.Context) ([]*domain.PaymentMethod, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	defer cur.Close(ctx)

	var methods []*domain.PaymentMethod
	for cur.Next(ctx) {
		var doc paymentMethodDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode payment method: %w", err)
		}
		methods = append(methods, docToPaymentMethod(doc))
	}
	return methods, cur.Err()
}

func (r *MongoPaymentMethodRepository) FindByID(ctx context.Context, id string) (*domain.PaymentMethod, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPaymentMethodNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc paymentMethodDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPaymentMethodNotFound
		}
		return nil, fmt.Errorf("find payment method: %w", err)
	}
	return docToPaymentMethod(doc), nil
}

func (r *MongoPaymentMethodRepository) Create(ctx context.Context, pm *domain.PaymentMethod) (*domain.PaymentMethod, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, paymentMethodDoc{Name: pm.Name, IsActive: pm.IsActive})
	if err != nil {
		return nil, fmt.Errorf("insert payment method: %w", err)
	}

	created := *pm
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoPaymentMethodRepository) Update(ctx context.Context, pm *domain.PaymentMethod) error {
	oid, err := primitive.ObjectIDFromHex(pm.ID)
	if err != nil {
		return domain.ErrPaymentMethodNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":      pm.Name,
		"is_active": pm.IsActive,
	}})
	if err != nil {
		return fmt.Errorf("update payment method: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPaymentMethodNotFound
	}
	return nil
}

func (r *MongoPaymentMethodRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPaymentMethodNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete payment method: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPaymentMethodNotFound
	}
	return nil
}

func docToPaymentMethod(doc paymentMethodDoc) *domain.PaymentMethod {
	return &domain.PaymentMethod{
		ID:       doc.ID.Hex(),
		Name:     doc.Name,
		IsActive: doc.IsActive,
	}
}

type MongoPlanRepository struct {
	coll *mongo.Collection
}

func NewPlanRepository(db *mongo.Database) *MongoPlanRepository {
	return &MongoPlanRepository{coll: db.Collection(plansCollection)}
}

type planDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	PlanName      string             `bson:"plan_name"`
	Price         float64            `bson:"price"`
	BillingPeriod string             `bson:"billing_period"`
	MaxShops      int                `bson:"max_shops"`
	MaxUsers      int                `bson:"max_users"`
	IsActive      bool               `bson:"is_active"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

// List returns all plans, cheapest first.
func (r *MongoPlanRepository) List(ctx context.Context) ([]*domain.SubscriptionPlan, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "price", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer cur.Close(ctx)

	var plans []*domain.SubscriptionPlan
	for cur.Next(ctx) {
		var doc planDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode plan: %w", err)
		}
		plans = append(plans, docToPlan(doc))
	}
	return plans, cur.Err()
}

func (r *MongoPlanRepository) FindByID(ctx context.Context, id string) (*domain.SubscriptionPlan, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPlanNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc planDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, fmt.Errorf("find plan: %w", err)
	}
	return docToPlan(doc), nil
}

func (r *MongoPlanRepository) Create(ctx context.Context, plan *domain.SubscriptionPlan) (*domain.SubscriptionPlan, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := planDoc{
		PlanName:      plan.PlanName,
		Price:         plan.Price,
		BillingPeriod: plan.BillingPeriod,
		MaxShops:      plan.MaxShops,
		MaxUsers:      plan.MaxUsers,
		IsActive:      plan.IsActive,
		CreatedAt:     plan.CreatedAt,
		UpdatedAt:     plan.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert plan: %w", err)
	}

	created := *plan
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoPlanRepository) Update(ctx context.Context, plan *domain.SubscriptionPlan) error {
	oid, err := primitive.ObjectIDFromHex(plan.ID)
	if err != nil {
		return domain.ErrPlanNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"plan_name":      plan.PlanName,
		"price":          plan.Price,
		"billing_period": plan.BillingPeriod,
		"max_shops":      plan.MaxShops,
		"max_users":      plan.MaxUsers,
		"is_active":      plan.IsActive,
		"updated_at":     plan.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPlanNotFound
	}
	return nil
}

func docToPlan(doc planDoc) *domain.SubscriptionPlan {
	return &domain.SubscriptionPlan{
		ID:            doc.ID.Hex(),
		PlanName:      doc.PlanName,
		Price:         doc.Price,
		BillingPeriod: doc.BillingPeriod,
		MaxShops:      doc.MaxShops,
		MaxUsers:      doc.MaxUsers,
		IsActive:      doc.IsActive,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}

type MongoSubscriptionRepository struct {
	coll *mongo.Collection
}

func NewSubscriptionRepository(db *mongo.Database) *MongoSubscriptionRepository {
	return &MongoSubscriptionRepository{coll: db.Collection(subscriptionsCollection)}
}

type subscriptionDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	BusinessID string             `bson:"business_id"`
	PlanID     string             `bson:"plan_id"`
	Status     string             `bson:"status"`
	StartedAt  time.Time          `bson:"started_at"`
	RenewsAt   time.Time          `bson:"renews_at"`
}

func (r *MongoSubscriptionRepository) List(ctx context.Context) ([]*domain.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "started_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer cur.Close(ctx)

	var subs []*domain.Subscription
	for cur.Next(ctx) {
		var doc subscriptionDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode subscription: %w", err)
		}
		subs = append(subs, docToSubscription(doc))
	}
	return subs, cur.Err()
}

func (r *MongoSubscriptionRepository) FindByID(ctx context.Context, id string) (*domain.Subscription, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSubscriptionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc subscriptionDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	return docToSubscription(doc), nil
}

func (r *MongoSubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) (*domain.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := subscriptionDoc{
		BusinessID: sub.BusinessID,
		PlanID:     sub.PlanID,
		Status:     string(sub.Status),
		StartedAt:  sub.StartedAt,
		RenewsAt:   sub.RenewsAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert subscription: %w", err)
	}

	created := *sub
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoSubscriptionRepository) UpdateStatus(ctx context.Context, id string, status domain.SubscriptionStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrSubscriptionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": string(status)}})
	if err != nil {
		return fmt.Errorf("update subscription status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}

func docToSubscription(doc subscriptionDoc) *domain.Subscription {
	return &domain.Subscription{
		ID:         doc.ID.Hex(),
		BusinessID: doc.BusinessID,
		PlanID:     doc.PlanID,
		Status:     domain.SubscriptionStatus(doc.Status),
		StartedAt:  doc.StartedAt,
		RenewsAt:   doc.RenewsAt,
	}
}
