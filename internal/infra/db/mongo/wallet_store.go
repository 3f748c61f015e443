package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stayhub/internal/domain/shared/money"
	domainuser "stayhub/internal/domain/user"
	domainwallet "stayhub/internal/domain/wallet"
)

type WalletStore struct {
	col *mongo.Collection
}

func NewWalletStore(db *mongo.Database) *WalletStore {
	return &WalletStore{col: db.Collection("wallets")}
}

func (s *WalletStore) ByOwner(ctx context.Context, ownerID domainuser.ID) (*domainwallet.Wallet, error) {
	var doc walletDocument
	if err := s.col.FindOne(ctx, bson.M{"_id": string(ownerID)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainwallet.ErrNotFound
		}
		return nil, err
	}
	return doc.toModel(), nil
}

// Save uses the version filter so two concurrent debits of the same wallet
// cannot both apply.
func (s *WalletStore) Save(ctx context.Context, w *domainwallet.Wallet) error {
	doc := newWalletDocument(w)
	filter := bson.M{"_id": doc.ID, "version": w.Version}
	doc.Version = w.Version + 1
	res, err := s.col.UpdateOne(ctx, filter, bson.M{"$set": doc}, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	w.Version = doc.Version
	return nil
}

type walletTransactionDocument struct {
	Kind      string        `bson:"kind"`
	Amount    moneyDocument `bson:"amount"`
	Reference string        `bson:"reference"`
	At        int64         `bson:"at"`
}

type walletDocument struct {
	ID           string                      `bson:"_id"`
	Balance      moneyDocument               `bson:"balance"`
	Transactions []walletTransactionDocument `bson:"transactions"`
	UpdatedAt    int64                       `bson:"updated_at"`
	Version      int64                       `bson:"version"`
}

func newWalletDocument(w *domainwallet.Wallet) walletDocument {
	txs := make([]walletTransactionDocument, 0, len(w.Transactions))
	for _, tx := range w.Transactions {
		txs = append(txs, walletTransactionDocument{
			Kind:      string(tx.Kind),
			Amount:    moneyDocument{Amount: tx.Amount.Amount, Currency: tx.Amount.Currency},
			Reference: tx.Reference,
			At:        tx.At.UnixMilli(),
		})
	}
	return walletDocument{
		ID:           string(w.OwnerID),
		Balance:      moneyDocument{Amount: w.Balance.Amount, Currency: w.Balance.Currency},
		Transactions: txs,
		UpdatedAt:    w.UpdatedAt.UnixMilli(),
		Version:      w.Version,
	}
}

func (d walletDocument) toModel() *domainwallet.Wallet {
	txs := make([]domainwallet.Transaction, 0, len(d.Transactions))
	for _, tx := range d.Transactions {
		txs = append(txs, domainwallet.Transaction{
			Kind:      domainwallet.TransactionKind(tx.Kind),
			Amount:    money.Money{Amount: tx.Amount.Amount, Currency: tx.Amount.Currency},
			Reference: tx.Reference,
			At:        millisToTime(tx.At),
		})
	}
	return &domainwallet.Wallet{
		OwnerID:      domainuser.ID(d.ID),
		Balance:      money.Money{Amount: d.Balance.Amount, Currency: d.Balance.Currency},
		Transactions: txs,
		UpdatedAt:    millisToTime(d.UpdatedAt),
		Version:      d.Version,
	}
}
