package slotRepo

import (
	"context"
	"errors"
	"time"

	"inkbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// maxToggleAttempts bounds the delete/insert loop in Toggle. Each retry means
// another toggler won a race, so a handful is plenty.
const maxToggleAttempts = 8

var errToggleContention = errors.New("toggle did not settle under contention")

// slotDoc is one booked slot. The slot key is the _id, which gives set semantics.
type slotDoc struct {
	Key      string    `bson:"_id"`
	Date     string    `bson:"date"`
	Time     string    `bson:"time"`
	BookedAt time.Time `bson:"bookedAt"`
}

type mongoSlotRepo struct {
	client *mongo.Client
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewMongoSlotRepo stores booked slots in the "booked_slots" collection of dbName.
func NewMongoSlotRepo(client *mongo.Client, dbName string, logger *zap.Logger) SlotRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &mongoSlotRepo{
		client: client,
		coll:   client.Database(dbName).Collection("booked_slots"),
		logger: logger,
	}
}

func (r *mongoSlotRepo) List(ctx context.Context) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, unavailable("mongo", "list", err)
	}
	defer cursor.Close(ctx)

	var docs []slotDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, unavailable("mongo", "list", err)
	}
	members := make([]string, len(docs))
	for i, d := range docs {
		members[i] = d.Key
	}
	return decodeMembers(members, func(m string, err error) {
		r.logger.Debug("skipping unreadable slot document", zap.String("id", m), zap.Error(err))
	}), nil
}

func (r *mongoSlotRepo) IsBooked(ctx context.Context, date, t string) (bool, error) {
	key, err := models.EncodeSlotKey(date, t)
	if err != nil {
		return false, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": string(key)}, options.Count().SetLimit(1))
	if err != nil {
		return false, unavailable("mongo", "isBooked", err)
	}
	return n > 0, nil
}

// Toggle deletes the slot if present, otherwise inserts it. A duplicate-key
// failure on insert means a concurrent toggler booked it first; looping
// again turns our call into the unbooking flip so no call is lost.
func (r *mongoSlotRepo) Toggle(ctx context.Context, date, t string) (bool, error) {
	key, err := models.EncodeSlotKey(date, t)
	if err != nil {
		return false, err
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	for attempt := 0; attempt < maxToggleAttempts; attempt++ {
		res, err := r.coll.DeleteOne(ctx, bson.M{"_id": string(key)})
		if err != nil {
			return false, unavailable("mongo", "toggle", err)
		}
		if res.DeletedCount == 1 {
			return false, nil
		}
		_, err = r.coll.InsertOne(ctx, newSlotDoc(key))
		if err == nil {
			return true, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return false, unavailable("mongo", "toggle", err)
		}
		r.logger.Debug("toggle raced with another writer, retrying", zap.String("slot", string(key)), zap.Int("attempt", attempt+1))
	}
	return false, unavailable("mongo", "toggle", errToggleContention)
}

func (r *mongoSlotRepo) Add(ctx context.Context, date, t string) error {
	key, err := models.EncodeSlotKey(date, t)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	doc := newSlotDoc(key)
	update := bson.M{"$setOnInsert": bson.M{"date": doc.Date, "time": doc.Time, "bookedAt": doc.BookedAt}}
	_, err = r.coll.UpdateOne(ctx, bson.M{"_id": doc.Key}, update, options.Update().SetUpsert(true))
	// Two concurrent upserts can collide on _id; the slot is booked either way.
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return unavailable("mongo", "add", err)
	}
	return nil
}

func (r *mongoSlotRepo) Remove(ctx context.Context, date, t string) error {
	key, err := models.EncodeSlotKey(date, t)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": string(key)}); err != nil {
		return unavailable("mongo", "remove", err)
	}
	return nil
}

func (r *mongoSlotRepo) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx, readpref.Primary()); err != nil {
		return unavailable("mongo", "ping", err)
	}
	return nil
}

func (r *mongoSlotRepo) Backend() string { return "mongo" }

func (r *mongoSlotRepo) Shared() bool { return true }

func newSlotDoc(key models.SlotKey) slotDoc {
	b, _ := key.Booking()
	return slotDoc{Key: string(key), Date: b.Date, Time: b.Time, BookedAt: time.Now().UTC()}
}
