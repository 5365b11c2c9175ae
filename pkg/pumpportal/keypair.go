// pkg/pumpportal/keypair.go
package pumpportal

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// Keypair decodes the base58 private key and checks it against WalletPublicKey.
func (w *WalletCredential) Keypair() (solana.PrivateKey, solana.PublicKey, error) {
	raw, err := base58.Decode(w.PrivateKey)
	if err != nil {
		return nil, solana.PublicKey{}, fmt.Errorf("decode private key: %w", err)
	}
	if len(raw) != 64 {
		return nil, solana.PublicKey{}, fmt.Errorf("invalid private key length: expected 64 bytes, got %d", len(raw))
	}

	priv := solana.PrivateKey(raw)
	pub := priv.PublicKey()

	if w.WalletPublicKey != "" && pub.String() != w.WalletPublicKey {
		return nil, solana.PublicKey{}, fmt.Errorf("%w: %s", ErrKeyMismatch, w.WalletPublicKey)
	}
	return priv, pub, nil
}
