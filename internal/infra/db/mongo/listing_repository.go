package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainlistings "stayhub/internal/domain/listings"
	"stayhub/internal/domain/shared/money"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type ListingRepository struct {
	col *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{col: db.Collection("listings")}
}

func (r *ListingRepository) ByID(ctx context.Context, id domainlistings.ListingID) (*domainlistings.Listing, error) {
	var doc listingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainlistings.ErrNotFound
		}
		return nil, err
	}
	return doc.toModel(), nil
}

func (r *ListingRepository) Search(ctx context.Context, params domainlistings.SearchParams) (domainlistings.SearchResult, error) {
	p := params.Normalized()
	filter := bson.M{}
	if p.OnlyActive {
		filter["status"] = string(domainlistings.StatusActive)
	}
	if p.City != "" {
		filter["city"] = p.City
	}
	if p.Country != "" {
		filter["country"] = p.Country
	}
	if p.Category != "" {
		filter["category"] = p.Category
	}
	if p.MinGuests > 0 {
		// guests_limit 0 means unlimited and always qualifies
		filter["$or"] = bson.A{
			bson.M{"guests_limit": 0},
			bson.M{"guests_limit": bson.M{"$gte": p.MinGuests}},
		}
	}
	rate := bson.M{}
	if p.PriceMin > 0 {
		rate["$gte"] = p.PriceMin
	}
	if p.PriceMax > 0 {
		rate["$lte"] = p.PriceMax
	}
	if len(rate) > 0 {
		filter["nightly_rate.amount"] = rate
		filter["nightly_rate.currency"] = bson.M{"$ne": ""}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return domainlistings.SearchResult{}, err
	}

	findOpts := options.Find().
		SetSort(sortSpec(p.Sort)).
		SetSkip(int64(p.Offset)).
		SetLimit(int64(p.Limit))
	cursor, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return domainlistings.SearchResult{}, err
	}
	defer cursor.Close(ctx)

	items := make([]*domainlistings.Listing, 0, p.Limit)
	for cursor.Next(ctx) {
		var doc listingDocument
		if err := cursor.Decode(&doc); err != nil {
			return domainlistings.SearchResult{}, err
		}
		items = append(items, doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return domainlistings.SearchResult{}, err
	}
	return domainlistings.SearchResult{Items: items, Total: int(total)}, nil
}

func (r *ListingRepository) Save(ctx context.Context, listing *domainlistings.Listing) error {
	doc := newListingDocument(listing)
	filter := bson.M{"_id": doc.ID, "version": listing.Version}
	doc.Version = listing.Version + 1
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": doc}, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	listing.Version = doc.Version
	return nil
}

func sortSpec(sort domainlistings.CatalogSort) bson.D {
	switch sort {
	case domainlistings.SortByPriceAsc:
		return bson.D{{Key: "nightly_rate.amount", Value: 1}}
	case domainlistings.SortByPriceDesc:
		return bson.D{{Key: "nightly_rate.amount", Value: -1}}
	case domainlistings.SortByNewest:
		return bson.D{{Key: "created_at", Value: -1}}
	default:
		return bson.D{{Key: "rating", Value: -1}}
	}
}

type moneyDocument struct {
	Amount   int64  `bson:"amount"`
	Currency string `bson:"currency"`
}

type listingDocument struct {
	ID              string        `bson:"_id"`
	HostID          string        `bson:"host_id"`
	Title           string        `bson:"title"`
	Description     string        `bson:"description"`
	City            string        `bson:"city"`
	Country         string        `bson:"country"`
	Category        string        `bson:"category"`
	NightlyRate     moneyDocument `bson:"nightly_rate"`
	DiscountPercent int           `bson:"discount_percent"`
	PromoCode       string        `bson:"promo_code"`
	GuestsLimit     int           `bson:"guests_limit"`
	AvailableFrom   int64         `bson:"available_from"`
	AvailableUntil  int64         `bson:"available_until"`
	Amenities       []string      `bson:"amenities"`
	ThumbnailURL    string        `bson:"thumbnail_url"`
	Rating          float64       `bson:"rating"`
	Status          string        `bson:"status"`
	CreatedAt       int64         `bson:"created_at"`
	UpdatedAt       int64         `bson:"updated_at"`
	Version         int64         `bson:"version"`
}

func newListingDocument(l *domainlistings.Listing) listingDocument {
	return listingDocument{
		ID:              string(l.ID),
		HostID:          string(l.Host),
		Title:           l.Title,
		Description:     l.Description,
		City:            l.City,
		Country:         l.Country,
		Category:        l.Category,
		NightlyRate:     moneyDocument{Amount: l.NightlyRate.Amount, Currency: l.NightlyRate.Currency},
		DiscountPercent: l.DiscountPercent,
		PromoCode:       l.PromoCode,
		GuestsLimit:     l.GuestsLimit,
		AvailableFrom:   timeToMillis(l.AvailableFrom),
		AvailableUntil:  timeToMillis(l.AvailableUntil),
		Amenities:       l.Amenities,
		ThumbnailURL:    l.ThumbnailURL,
		Rating:          l.Rating,
		Status:          string(l.Status),
		CreatedAt:       l.CreatedAt.UnixMilli(),
		UpdatedAt:       l.UpdatedAt.UnixMilli(),
		Version:         l.Version,
	}
}

func (d listingDocument) toModel() *domainlistings.Listing {
	return &domainlistings.Listing{
		ID:              domainlistings.ListingID(d.ID),
		Host:            domainlistings.HostID(d.HostID),
		Title:           d.Title,
		Description:     d.Description,
		City:            d.City,
		Country:         d.Country,
		Category:        d.Category,
		NightlyRate:     money.Money{Amount: d.NightlyRate.Amount, Currency: d.NightlyRate.Currency},
		DiscountPercent: d.DiscountPercent,
		PromoCode:       d.PromoCode,
		GuestsLimit:     d.GuestsLimit,
		AvailableFrom:   millisToTime(d.AvailableFrom),
		AvailableUntil:  millisToTime(d.AvailableUntil),
		Amenities:       d.Amenities,
		ThumbnailURL:    d.ThumbnailURL,
		Rating:          d.Rating,
		Status:          domainlistings.Status(d.Status),
		CreatedAt:       millisToTime(d.CreatedAt),
		UpdatedAt:       millisToTime(d.UpdatedAt),
		Version:         d.Version,
	}
}

func timeToMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func millisToTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
