package mongoclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/checkout/base/ptr"
)

func TestMakeBsonM(t *testing.T) {
	type nft struct {
		ChainId         int32  `bson:"chainId"`
		ContractAddress string `bson:"contractAddress"`
		TokenId         string `bson:"tokenID"`
	}
	type patchableSession struct {
		Status      *string    `bson:"status,omitempty"`
		TxHash      *string    `bson:"txHash,omitempty"`
		SubmittedAt *time.Time `bson:"submittedAt,omitempty"`
		Buyer       string     `bson:"buyer"`
		Currency    string     `bson:"currency"`
		Nft         nft        `bson:"nft"`
		Internal    string     `bson:"-"`
	}

	now := time.Date(2022, 8, 1, 0, 0, 0, 0, time.UTC)
	patchable := &patchableSession{
		Status:      ptr.String("pending"),
		SubmittedAt: ptr.Time(now),
		Currency:    "ETH",
		Nft:         nft{ChainId: 1, ContractAddress: "0xabc"},
		Internal:    "skipped",
	}

	updater, err := MakeBsonM(patchable)

	assert.NoError(t, err)
	assert.Equal(
		t,
		bson.M{
			"status":              "pending",
			"submittedAt":         now,
			"currency":            "ETH",
			"nft.chainId":         int32(1),
			"nft.contractAddress": "0xabc",
		},
		updater,
	)
}

func TestMakeBsonMNotStruct(t *testing.T) {
	_, err := MakeBsonM("pending")
	assert.ErrorIs(t, err, ErrNotStruct)

	_, err = MakeBsonM(ptr.Int(1))
	assert.ErrorIs(t, err, ErrNotStruct)
}
