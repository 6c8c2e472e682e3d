package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/fuelshare/internal/domain/models"
)

const (
	snapshotsCollection    = "stock_snapshots"
	priceChangesCollection = "price_changes"
)

// Repository defines the persistence used for reports and price audits.
type Repository interface {
	SaveStockSnapshot(ctx context.Context, snapshot models.StockSnapshot) error
	SavePriceChange(ctx context.Context, audit models.PriceChangeAudit) error
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{client: client, dbName: dbName}, nil
}

// SaveStockSnapshot stores a stock snapshot.
func (r *MongoDBRepository) SaveStockSnapshot(ctx context.Context, snapshot models.StockSnapshot) error {
	collection := r.client.Database(r.dbName).Collection(snapshotsCollection)
	if _, err := collection.InsertOne(ctx, snapshotDocument(snapshot)); err != nil {
		return fmt.Errorf("failed to insert stock snapshot: %w", err)
	}
	return nil
}

// SavePriceChange stores the audit trail of a committed price change.
func (r *MongoDBRepository) SavePriceChange(ctx context.Context, audit models.PriceChangeAudit) error {
	collection := r.client.Database(r.dbName).Collection(priceChangesCollection)
	if _, err := collection.InsertOne(ctx, priceChangeDocument(audit)); err != nil {
		return fmt.Errorf("failed to insert price change: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
