package dto

import (
	"time"

	domainuser "stayhub/internal/domain/user"
	domainwallet "stayhub/internal/domain/wallet"
)

type UserProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Roles     []string  `json:"roles"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

type WalletSummary struct {
	Balance      MoneyDTO            `json:"balance"`
	Transactions []WalletTransaction `json:"transactions"`
}

type WalletTransaction struct {
	Kind      string    `json:"kind"`
	Amount    MoneyDTO  `json:"amount"`
	Reference string    `json:"reference"`
	At        time.Time `json:"at"`
}

func MapUserProfile(u *domainuser.User) UserProfile {
	if u == nil {
		return UserProfile{}
	}
	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, string(r))
	}
	return UserProfile{
		ID:        string(u.ID),
		Email:     u.Email,
		Name:      u.Name,
		Roles:     roles,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

func MapWallet(w *domainwallet.Wallet) WalletSummary {
	if w == nil {
		return WalletSummary{}
	}
	txs := make([]WalletTransaction, 0, len(w.Transactions))
	for _, tx := range w.Transactions {
		txs = append(txs, WalletTransaction{
			Kind:      string(tx.Kind),
			Amount:    MapMoney(tx.Amount),
			Reference: tx.Reference,
			At:        tx.At,
		})
	}
	return WalletSummary{Balance: MapMoney(w.Balance), Transactions: txs}
}
