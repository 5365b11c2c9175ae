// ==================================
// File: internal/wallet/wallet.go
// ==================================
package wallet

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/rovshanmuradov/pumpportal-go/pkg/pumpportal"
)

// Wallet holds the keypair used to sign transactions built by trade-local.
type Wallet struct {
	PrivateKey solana.PrivateKey
	PublicKey  solana.PublicKey
}

// NewWallet создаёт кошелёк из base58-encoded приватного ключа.
func NewWallet(privateKeyBase58 string) (*Wallet, error) {
	return FromCredential(&pumpportal.WalletCredential{PrivateKey: privateKeyBase58})
}

// FromCredential builds a wallet from the credential returned by create-wallet.
func FromCredential(cred *pumpportal.WalletCredential) (*Wallet, error) {
	priv, pub, err := cred.Keypair()
	if err != nil {
		return nil, err
	}
	return &Wallet{PrivateKey: priv, PublicKey: pub}, nil
}

// SignTransaction подписывает транзакцию приватным ключом кошелька.
// Placeholder signatures left by the transaction builder are discarded first.
func (w *Wallet) SignTransaction(tx *solana.Transaction) error {
	if len(tx.Message.AccountKeys) == 0 {
		return fmt.Errorf("transaction has no account keys")
	}
	if !tx.Message.AccountKeys[0].Equals(w.PublicKey) {
		return fmt.Errorf("fee payer %s is not wallet %s", tx.Message.AccountKeys[0], w.PublicKey)
	}

	tx.Signatures = nil
	_, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(w.PublicKey) {
			return &w.PrivateKey
		}
		return nil
	})
	return err
}

// String возвращает публичный ключ кошелька.
func (w *Wallet) String() string {
	return w.PublicKey.String()
}
