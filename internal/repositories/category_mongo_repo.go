package repositories

import (
	"context"
	"fmt"

	"marketadmin/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// CategoryCollection is the collection the API reads the taxonomy from
const CategoryCollection = "categoryhierarchies"

type categoryDocument struct {
	ID                  primitive.ObjectID `bson:"_id"`
	models.CategoryNode `bson:",inline"`
}

type categoryMongoRepo struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// ConnectMongo opens a client for uri and checks the primary is reachable
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// NewCategoryMongoRepo creates a repository over database's category collection
func NewCategoryMongoRepo(client *mongo.Client, database string) CategoryHierarchyRepository {
	return &categoryMongoRepo{
		client:     client,
		collection: client.Database(database).Collection(CategoryCollection),
	}
}

func (r *categoryMongoRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("delete category hierarchies: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *categoryMongoRepo) Insert(ctx context.Context, node models.CategoryNode) error {
	doc := categoryDocument{ID: primitive.NewObjectID(), CategoryNode: node}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert category hierarchy: %w", err)
	}
	return nil
}

func (r *categoryMongoRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count category hierarchies: %w", err)
	}
	return n, nil
}

func (r *categoryMongoRepo) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
