package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique and lookup indexes both repositories rely on.
// It is safe to call on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_key"),
	})
	if err != nil {
		return fmt.Errorf("create users index: %w", err)
	}

	_, err = db.Collection(contactsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("contacts_owner_email_key"),
		},
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "type", Value: 1}},
			Options: options.Index().SetName("contacts_owner_type_idx"),
		},
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "name", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("contacts_owner_name_idx"),
		},
	})
	if err != nil {
		return fmt.Errorf("create contacts indexes: %w", err)
	}
	return nil
}
