package memory

import (
	"context"
	"fmt"
	"time"

	domainlistings "stayhub/internal/domain/listings"
	"stayhub/internal/domain/shared/money"
	domainuser "stayhub/internal/domain/user"
	domainwallet "stayhub/internal/domain/wallet"
)

// PasswordHasher matches the auth service port so fixtures can seed a demo
// account with a real hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

const (
	DemoEmail    = "demo@stayhub.local"
	DemoPassword = "demo-password"
)

// SeedFixtures fills the stores with a browsable catalog, the host accounts
// behind it and a demo guest whose wallet can pay for a short stay.
func SeedFixtures(ctx context.Context, f *Factory, hasher PasswordHasher) error {
	now := time.Now().UTC()

	hosts := []struct {
		id    domainuser.ID
		email string
		name  string
	}{
		{"host-ana", "ana@stayhub.local", "Ana Petrova"},
		{"host-marco", "marco@stayhub.local", "Marco Ricci"},
	}
	hash, err := hasher.Hash(DemoPassword)
	if err != nil {
		return err
	}
	for _, h := range hosts {
		u, err := domainuser.New(domainuser.CreateParams{
			ID:           h.id,
			Email:        h.email,
			Name:         h.name,
			PasswordHash: hash,
			Roles:        []domainuser.Role{domainuser.RoleHost},
			CreatedAt:    now,
		})
		if err != nil {
			return err
		}
		if err := f.UsersRepo.Save(ctx, u); err != nil {
			return err
		}
	}

	demo, err := domainuser.New(domainuser.CreateParams{
		ID:           "user-demo",
		Email:        DemoEmail,
		Name:         "Demo Guest",
		PasswordHash: hash,
		CreatedAt:    now,
	})
	if err != nil {
		return err
	}
	if err := f.UsersRepo.Save(ctx, demo); err != nil {
		return err
	}
	wallet, err := domainwallet.New(demo.ID, money.Money{Amount: 150000, Currency: "EUR"}, now)
	if err != nil {
		return err
	}
	if err := f.WalletsRepo.Save(ctx, wallet); err != nil {
		return err
	}

	seeds := []domainlistings.CreateParams{
		{
			ID:              "lst-riga-loft",
			Host:            "host-ana",
			Title:           "Old Town loft with river view",
			Description:     "Top floor loft a short walk from the central market.",
			City:            "Riga",
			Country:         "Latvia",
			Category:        "apartment",
			NightlyRate:     money.Money{Amount: 8900, Currency: "EUR"},
			DiscountPercent: 15,
			PromoCode:       "RIGA15",
			GuestsLimit:     4,
			Amenities:       []string{"wifi", "kitchen", "washer"},
			Rating:          4.8,
		},
		{
			ID:          "lst-tuscany-villa",
			Host:        "host-marco",
			Title:       "Hillside villa with pool",
			Description: "Stone villa between vineyards, twenty minutes from Siena.",
			City:        "Siena",
			Country:     "Italy",
			Category:    "villa",
			NightlyRate: money.Money{Amount: 24500, Currency: "EUR"},
			GuestsLimit: 8,
			AvailableFrom: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
				AddDate(0, 1, 0),
			AvailableUntil: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
				AddDate(0, 7, 0),
			Amenities: []string{"pool", "parking", "wifi"},
			Rating:    4.9,
		},
		{
			ID:              "lst-berlin-studio",
			Host:            "host-ana",
			Title:           "Quiet studio in Kreuzberg",
			Description:     "Compact studio near the canal, ideal for solo trips.",
			City:            "Berlin",
			Country:         "Germany",
			Category:        "studio",
			NightlyRate:     money.Money{Amount: 6200, Currency: "EUR"},
			DiscountPercent: 10,
			PromoCode:       "WELCOME10",
			GuestsLimit:     2,
			Amenities:       []string{"wifi", "heating"},
			Rating:          4.5,
		},
		{
			ID:          "lst-lisbon-rooms",
			Host:        "host-marco",
			Title:       "Alfama guesthouse rooms",
			Description: "Family run guesthouse with tiled facades and rooftop breakfast.",
			City:        "Lisbon",
			Country:     "Portugal",
			Category:    "guesthouse",
			GuestsLimit: 3,
			Amenities:   []string{"breakfast", "wifi"},
			Rating:      4.2,
		},
	}
	for i, seed := range seeds {
		seed.Now = now.Add(-time.Duration(len(seeds)-i) * time.Hour)
		listing, err := domainlistings.New(seed)
		if err != nil {
			return fmt.Errorf("fixtures: listing %s: %w", seed.ID, err)
		}
		if err := f.ListingsRepo.Save(ctx, listing); err != nil {
			return err
		}
	}
	return nil
}
