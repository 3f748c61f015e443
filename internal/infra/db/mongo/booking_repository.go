package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "stayhub/internal/domain/booking"
	domainlistings "stayhub/internal/domain/listings"
	"stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/money"
)

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection("bookings")}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	doc := newBookingDocument(b)
	filter := bson.M{"_id": doc.ID, "version": b.Version}
	doc.Version = b.Version + 1
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
	b.Version = doc.Version
	return nil
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guestID string) ([]*domainbooking.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"guest_id": guestID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domainbooking.Booking
	for cursor.Next(ctx) {
		var doc bookingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

type stayDocument struct {
	CheckIn  int64 `bson:"check_in"`
	CheckOut int64 `bson:"check_out"`
}

type bookingDocument struct {
	ID              string        `bson:"_id"`
	ListingID       string        `bson:"listing_id"`
	HostID          string        `bson:"host_id"`
	GuestID         string        `bson:"guest_id"`
	Stay            stayDocument  `bson:"stay"`
	Guests          int           `bson:"guests"`
	Nights          int           `bson:"nights"`
	Total           moneyDocument `bson:"total"`
	PromoCode       string        `bson:"promo_code"`
	PromoApplied    bool          `bson:"promo_applied"`
	DiscountPercent int           `bson:"discount_percent"`
	PaymentMethod   string        `bson:"payment_method"`
	Paid            bool          `bson:"paid"`
	PaymentRef      string        `bson:"payment_ref"`
	Status          string        `bson:"status"`
	CreatedAt       int64         `bson:"created_at"`
	UpdatedAt       int64         `bson:"updated_at"`
	Version         int64         `bson:"version"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	return bookingDocument{
		ID:              string(b.ID),
		ListingID:       string(b.ListingID),
		HostID:          string(b.HostID),
		GuestID:         b.GuestID,
		Stay:            stayDocument{CheckIn: b.Stay.CheckIn.UnixMilli(), CheckOut: b.Stay.CheckOut.UnixMilli()},
		Guests:          b.Guests,
		Nights:          b.Nights,
		Total:           moneyDocument{Amount: b.Total.Amount, Currency: b.Total.Currency},
		PromoCode:       b.PromoCode,
		PromoApplied:    b.PromoApplied,
		DiscountPercent: b.DiscountPercent,
		PaymentMethod:   string(b.PaymentMethod),
		Paid:            b.Paid,
		PaymentRef:      b.PaymentRef,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt.UnixMilli(),
		UpdatedAt:       b.UpdatedAt.UnixMilli(),
		Version:         b.Version,
	}
}

func (d bookingDocument) toAggregate() *domainbooking.Booking {
	return &domainbooking.Booking{
		ID:              domainbooking.BookingID(d.ID),
		ListingID:       domainlistings.ListingID(d.ListingID),
		HostID:          domainlistings.HostID(d.HostID),
		GuestID:         d.GuestID,
		Stay:            daterange.Stay{CheckIn: millisToTime(d.Stay.CheckIn), CheckOut: millisToTime(d.Stay.CheckOut)},
		Guests:          d.Guests,
		Nights:          d.Nights,
		Total:           money.Money{Amount: d.Total.Amount, Currency: d.Total.Currency},
		PromoCode:       d.PromoCode,
		PromoApplied:    d.PromoApplied,
		DiscountPercent: d.DiscountPercent,
		PaymentMethod:   domainbooking.PaymentMethod(d.PaymentMethod),
		Paid:            d.Paid,
		PaymentRef:      d.PaymentRef,
		Status:          domainbooking.Status(d.Status),
		CreatedAt:       millisToTime(d.CreatedAt),
		UpdatedAt:       millisToTime(d.UpdatedAt),
		Version:         d.Version,
	}
}
