package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/gatherly/notify/pkg/notification"
)

// MongoStorage is a Storage implementation backed by a MongoDB
// collection.
type MongoStorage struct {
	coll *mongo.Collection
}

// NewMongoStorage creates a Mongo-backed notification storage using the
// "notifications" collection of db.
func NewMongoStorage(db *mongo.Database) *MongoStorage {
	return &MongoStorage{coll: db.Collection("notifications")}
}

// EnsureIndexes creates the indexes the storage queries rely on.
func (s *MongoStorage) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "is_read", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	return nil
}

// notificationDoc is the BSON shape stored in the collection. The payload
// is kept as raw JSON so the tagged union round-trips unchanged.
type notificationDoc struct {
	ID         string     `bson:"_id"`
	UserID     string     `bson:"user_id"`
	SourceType string     `bson:"source_type"`
	Priority   int        `bson:"priority"`
	Message    string     `bson:"message"`
	Link       string     `bson:"link,omitempty"`
	Payload    []byte     `bson:"payload,omitempty"`
	IsRead     bool       `bson:"is_read"`
	ReadAt     *time.Time `bson:"read_at,omitempty"`
	CreatedAt  time.Time  `bson:"created_at"`
}

func toDoc(n notification.Notification) (notificationDoc, error) {
	payload, err := notification.EncodePayload(n.SourceType, n.Payload)
	if err != nil {
		return notificationDoc{}, err
	}
	return notificationDoc{
		ID:         n.ID,
		UserID:     n.TargetUserID,
		SourceType: string(n.SourceType),
		Priority:   int(n.Priority),
		Message:    n.Message,
		Link:       n.Link,
		Payload:    payload,
		IsRead:     n.IsRead,
		ReadAt:     n.ReadAt,
		CreatedAt:  n.CreatedAt,
	}, nil
}

func (d notificationDoc) toNotification() (notification.Notification, error) {
	n := notification.Notification{
		ID:           d.ID,
		TargetUserID: d.UserID,
		SourceType:   notification.SourceType(d.SourceType),
		Priority:     notification.Priority(d.Priority),
		Message:      d.Message,
		Link:         d.Link,
		IsRead:       d.IsRead,
		ReadAt:       d.ReadAt,
		CreatedAt:    d.CreatedAt,
	}
	p, err := notification.DecodePayload(n.SourceType, d.Payload)
	if err != nil {
		return notification.Notification{}, err
	}
	n.Payload = p
	return n, nil
}

func (s *MongoStorage) Create(ctx context.Context, n notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}
	if n.TargetUserID == "" {
		return ErrMissingUserID
	}

	doc, err := toDoc(n)
	if err != nil {
		return err
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (s *MongoStorage) Get(ctx context.Context, userID, id string) (*notification.Notification, error) {
	var doc notificationDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find notification: %w", err)
	}
	n, err := doc.toNotification()
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *MongoStorage) List(ctx context.Context, userID string, opts ListOptions) ([]notification.Notification, error) {
	filter := bson.M{"user_id": userID}

	if len(opts.Types) > 0 {
		types := make([]string, 0, len(opts.Types))
		for _, st := range opts.Types {
			types = append(types, string(st))
		}
		filter["source_type"] = bson.M{"$in": types}
	}
	if opts.OnlyUnread {
		filter["is_read"] = false
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	if opts.Limit > 0 {
		findOpts.SetLimit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		findOpts.SetSkip(int64(opts.Offset))
	}

	cur, err := s.coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer cur.Close(ctx) //nolint:errcheck

	out := make([]notification.Notification, 0)
	for cur.Next(ctx) {
		var doc notificationDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode notification: %w", err)
		}
		n, err := doc.toNotification()
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return out, nil
}

func (s *MongoStorage) MarkRead(ctx context.Context, userID string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.coll.UpdateMany(ctx,
		bson.M{"user_id": userID, "_id": bson.M{"$in": ids}, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true, "read_at": nowUTC()}},
	)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}

func (s *MongoStorage) MarkAllRead(ctx context.Context, userID string) error {
	_, err := s.coll.UpdateMany(ctx,
		bson.M{"user_id": userID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true, "read_at": nowUTC()}},
	)
	if err != nil {
		return fmt.Errorf("mark all read: %w", err)
	}
	return nil
}

func (s *MongoStorage) Delete(ctx context.Context, userID string, ids ...string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.coll.DeleteMany(ctx, bson.M{"user_id": userID, "_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("delete notifications: %w", err)
	}
	return int(res.DeletedCount), nil
}

func (s *MongoStorage) DeleteAllRead(ctx context.Context, userID string) (int, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"user_id": userID, "is_read": true})
	if err != nil {
		return 0, fmt.Errorf("delete read notifications: %w", err)
	}
	return int(res.DeletedCount), nil
}

func (s *MongoStorage) CountUnread(ctx context.Context, userID string) (int, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{"user_id": userID, "is_read": false})
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return int(count), nil
}
