// Package repository provides methods to initialize db and store analysis results.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/katiamach/ev-charging-analysis/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DB collections.
const (
	reportsCollection  = "reports"
	chargersCollection = "chargers"
)

// insertBatchSize limits documents per InsertMany call.
const insertBatchSize = 5000

// DB errors.
var (
	ErrNoReports  = errors.New("there are no analysis reports yet")
	ErrNoChargers = errors.New("there are no chargers yet")
)

// Repository wraps database and mongo client.
type Repository struct {
	client *mongo.Client
	db     *mongo.Database
}

// New creates new repository from mongo database.
func New(connString, dbName string) (*Repository, error) {
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := NewMongoDBClient(ctxWithTimeout, connString, dbName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	db := client.Database(dbName)

	err = createIndexes(ctxWithTimeout, db)
	if err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return &Repository{
		client: client,
		db:     db,
	}, nil
}

// CreateIndexes creates necessary indexes for collections.
func createIndexes(ctx context.Context, db *mongo.Database) error {
	indexModelReports := mongo.IndexModel{
		Keys: bson.M{"createdAt": -1},
	}

	_, err := db.Collection(reportsCollection).Indexes().CreateOne(ctx, indexModelReports)
	if err != nil {
		return fmt.Errorf("failed to create report creation date index: %w", err)
	}

	indexModelChargers := mongo.IndexModel{
		Keys: bson.M{"chargeDeviceID": 1},
	}

	_, err = db.Collection(chargersCollection).Indexes().CreateOne(ctx, indexModelChargers)
	if err != nil {
		return fmt.Errorf("failed to create charger id index: %w", err)
	}

	return nil
}

// Close closes mongo db connection.
func (r *Repository) Close() error {
	if err := r.client.Disconnect(context.TODO()); err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}

	return nil
}

// InsertReport inserts analysis report into reports collection.
func (r *Repository) InsertReport(ctx context.Context, report *model.Report) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Collection(reportsCollection).InsertOne(ctxWithTimeout, report)

	return err
}

// GetLatestReport gets the most recent analysis report.
func (r *Repository) GetLatestReport(ctx context.Context) (*model.Report, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.M{"createdAt": -1})

	report := new(model.Report)
	err := r.db.Collection(reportsCollection).FindOne(ctxWithTimeout, bson.M{}, opts).Decode(report)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNoReports
	}
	if err != nil {
		return nil, err
	}

	return report, nil
}

// ReplaceChargers replaces stored chargers with the given ones.
func (r *Repository) ReplaceChargers(ctx context.Context, chargers []*model.ChargerRecord) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	coll := r.db.Collection(chargersCollection)

	_, err := coll.DeleteMany(ctxWithTimeout, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to delete previous chargers: %w", err)
	}

	for start := 0; start < len(chargers); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(chargers) {
			end = len(chargers)
		}

		m := make([]interface{}, 0, end-start)
		for _, v := range chargers[start:end] {
			m = append(m, v)
		}

		res, err := coll.InsertMany(ctxWithTimeout, m)
		if err != nil {
			return err
		}
		if len(res.InsertedIDs) != len(m) {
			return errors.New("not all data was inserted")
		}
	}

	return nil
}

// GetChargersCoordinates gets stored chargers.
func (r *Repository) GetChargersCoordinates(ctx context.Context) ([]*model.ChargerRecord, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	chargers, err := r.filterChargers(ctxWithTimeout, bson.M{}, nil)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNoChargers
	}
	if err != nil {
		return nil, err
	}

	return chargers, nil
}

func (r *Repository) filterChargers(ctx context.Context, filter primitive.M, opts *options.FindOptions) ([]*model.ChargerRecord, error) {
	var chargers []*model.ChargerRecord

	cur, err := r.db.Collection(chargersCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		ch := model.ChargerRecord{}
		err := cur.Decode(&ch)
		if err != nil {
			return nil, err
		}

		chargers = append(chargers, &ch)
	}

	if err := cur.Err(); err != nil {
		return nil, err
	}

	if len(chargers) == 0 {
		return nil, mongo.ErrNoDocuments
	}

	return chargers, nil
}
