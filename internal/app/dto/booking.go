package dto

import (
	"time"

	domainbooking "stayhub/internal/domain/booking"
	domainlistings "stayhub/internal/domain/listings"
)

type BookingListingSnapshot struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	City         string `json:"city"`
	Country      string `json:"country"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type GuestBookingSummary struct {
	ID            string                 `json:"id"`
	Listing       BookingListingSnapshot `json:"listing"`
	CheckIn       time.Time              `json:"check_in"`
	CheckOut      time.Time              `json:"check_out"`
	Guests        int                    `json:"guests"`
	Nights        int                    `json:"nights"`
	Total         MoneyDTO               `json:"total"`
	PaymentMethod string                 `json:"payment_method"`
	Paid          bool                   `json:"paid"`
	Status        string                 `json:"status"`
	CreatedAt     time.Time              `json:"created_at"`
}

type GuestBookingCollection struct {
	Items []GuestBookingSummary `json:"items"`
}

func MapGuestBookingSummary(booking *domainbooking.Booking, listing *domainlistings.Listing) GuestBookingSummary {
	snapshot := BookingListingSnapshot{ID: string(booking.ListingID)}
	if listing != nil {
		snapshot.Title = listing.Title
		snapshot.City = listing.City
		snapshot.Country = listing.Country
		snapshot.ThumbnailURL = listing.ThumbnailURL
	}
	return GuestBookingSummary{
		ID:            string(booking.ID),
		Listing:       snapshot,
		CheckIn:       booking.Stay.CheckIn,
		CheckOut:      booking.Stay.CheckOut,
		Guests:        booking.Guests,
		Nights:        booking.Nights,
		Total:         MapMoney(booking.Total),
		PaymentMethod: string(booking.PaymentMethod),
		Paid:          booking.Paid,
		Status:        string(booking.Status),
		CreatedAt:     booking.CreatedAt,
	}
}
