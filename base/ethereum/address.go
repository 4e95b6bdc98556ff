package ethereum

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

func GenerateKey() (*ecdsa.PrivateKey, common.Address, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, common.Address{}, err
	}
	return privateKey, crypto.PubkeyToAddress(privateKey.PublicKey), nil
}

// SignMsg personal_signs message the way a wallet does
func SignMsg(privateKey *ecdsa.PrivateKey, message []byte) (string, error) {
	sig, err := crypto.Sign(accounts.TextHash(message), privateKey)
	if err != nil {
		return "", err
	}
	sig[crypto.RecoveryIDOffset] += 27
	return hexutil.Encode(sig), nil
}
