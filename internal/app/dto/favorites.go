package dto

import domainfavorites "stayhub/internal/domain/favorites"

// FavoriteState mirrors the heart on a listing card.
type FavoriteState struct {
	ListingID     string `json:"listing_id"`
	Favorited     bool   `json:"favorited"`
	PendingRemote bool   `json:"pending_remote"`
}

type FavoriteCollection struct {
	Items []FavoriteState `json:"items"`
}

func MapFavoriteState(listingID string, state domainfavorites.ListingState) FavoriteState {
	return FavoriteState{
		ListingID:     listingID,
		Favorited:     state.Favorited,
		PendingRemote: state.PendingRemote,
	}
}
