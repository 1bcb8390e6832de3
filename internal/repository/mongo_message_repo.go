package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"komal-chat/internal/models"
)

const messagesCollection = "messages"

// legacyAssistantRole is how replies were written before roles were
// normalised; existing collections still hold it.
const legacyAssistantRole = "komal"

type messageDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Role      string             `bson:"role"`
	Text      string             `bson:"text"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d *messageDoc) toModel() *models.Message {
	return &models.Message{
		ID:        d.ID.Hex(),
		Role:      storedRole(d.Role),
		Text:      d.Text,
		CreatedAt: d.CreatedAt,
	}
}

func storedRole(raw string) models.Role {
	if raw == legacyAssistantRole {
		return models.RoleAssistant
	}
	return models.Role(raw)
}

// MongoMessageRepo stores turns in a MongoDB "messages" collection.
type MongoMessageRepo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewMongoMessageRepo(client *mongo.Client, dbName string) *MongoMessageRepo {
	return &MongoMessageRepo{
		client: client,
		coll:   client.Database(dbName).Collection(messagesCollection),
	}
}

// EnsureIndexes creates the createdAt index used by history listing.
func (r *MongoMessageRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
	})
	if err != nil {
		return &models.PersistenceError{Op: "create index", Err: err}
	}
	return nil
}

func (r *MongoMessageRepo) Insert(ctx context.Context, role models.Role, text string) (*models.Message, error) {
	if err := models.ValidateTurn(role, text); err != nil {
		return nil, err
	}

	// BSON dates carry millisecond precision.
	doc := &messageDoc{
		ID:        primitive.NewObjectID(),
		Role:      string(role),
		Text:      text,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, &models.PersistenceError{Op: "insert", Err: err}
	}
	return doc.toModel(), nil
}

// ListRecent returns the newest limit turns, oldest first.
func (r *MongoMessageRepo) ListRecent(ctx context.Context, limit int) ([]*models.Message, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(normalizeLimit(limit)))

	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, &models.PersistenceError{Op: "list", Err: err}
	}

	var docs []messageDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, &models.PersistenceError{Op: "list", Err: err}
	}

	msgs := make([]*models.Message, 0, len(docs))
	for i := range docs {
		msgs = append(msgs, docs[i].toModel())
	}
	return reverse(msgs), nil
}

// DeleteByID reports false for ids that do not exist, including ids that are
// not ObjectIDs at all.
func (r *MongoMessageRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, &models.PersistenceError{Op: "delete", Err: err}
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoMessageRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, &models.PersistenceError{Op: "delete all", Err: err}
	}
	return res.DeletedCount, nil
}

func (r *MongoMessageRepo) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
