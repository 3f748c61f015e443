package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainlistings "stayhub/internal/domain/listings"
)

// FavoritesStore keeps one document per (user, listing) pair. Create and
// Delete are idempotent upserts and deletes, which the synchronizer's
// convergence contract requires.
type FavoritesStore struct {
	col *mongo.Collection
}

func NewFavoritesStore(db *mongo.Database) *FavoritesStore {
	return &FavoritesStore{col: db.Collection("favorites")}
}

func (s *FavoritesStore) ListByUser(ctx context.Context, userID string) ([]domainlistings.ListingID, error) {
	cursor, err := s.col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []domainlistings.ListingID
	for cursor.Next(ctx) {
		var doc favoriteDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, domainlistings.ListingID(doc.ListingID))
	}
	return out, cursor.Err()
}

func (s *FavoritesStore) Create(ctx context.Context, userID string, id domainlistings.ListingID) error {
	doc := favoriteDocument{
		ID:        favoriteKey(userID, id),
		UserID:    userID,
		ListingID: string(id),
	}
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": doc.ID},
		bson.M{"$set": doc},
		options.Update().SetUpsert(true))
	return err
}

func (s *FavoritesStore) Delete(ctx context.Context, userID string, id domainlistings.ListingID) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": favoriteKey(userID, id)})
	return err
}

func favoriteKey(userID string, id domainlistings.ListingID) string {
	return userID + ":" + string(id)
}

type favoriteDocument struct {
	ID        string `bson:"_id"`
	UserID    string `bson:"user_id"`
	ListingID string `bson:"listing_id"`
}
