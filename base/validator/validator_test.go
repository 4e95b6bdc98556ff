package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ValidatorTestSuite struct {
	suite.Suite
}

func (s *ValidatorTestSuite) SetupTest() {
}

func (s *ValidatorTestSuite) TearDownTest() {
}

func (s *ValidatorTestSuite) SetupSuite() {
}

func (s *ValidatorTestSuite) TearDownSuite() {
}

func (s *ValidatorTestSuite) TestIsValidAddress() {
	tests := []struct {
		desc       string
		address    string
		expIsValid bool
	}{
		{
			desc:       "invalid address",
			address:    "0x000",
			expIsValid: false,
		},
		{
			desc:       "valid address - real address",
			address:    "0x939ae6A4C8dfDBB1f7085189574F0A938013952A",
			expIsValid: true,
		},
		{
			desc:       "valid address - lower case",
			address:    "0x939ae6a4c8dfdbb1f7085189574f0a938013952b",
			expIsValid: true,
		},
	}
	for _, t := range tests {
		s.Equal(t.expIsValid, IsValidAddress(t.address), t.desc)
	}
}

func (s *ValidatorTestSuite) TestNormalizeTxHash() {
	hash := "0xAbCdEf0000000000000000000000000000000000000000000000000000000001"
	s.True(IsTxHash(hash))
	s.Equal(strings.ToLower(hash), NormalizeTxHash("  "+hash+"\n"))

	s.False(IsTxHash("0x1234"))
	s.Equal("bank-ref-ABC", NormalizeTxHash(" bank-ref-ABC "))
	s.Equal("", NormalizeTxHash("   "))
}

func (s *ValidatorTestSuite) TestStructTags() {
	type body struct {
		Wallet string `validate:"required,eth_addr"`
	}
	v := NewCustomValidator(New())

	s.NoError(v.Validate(body{Wallet: "0x939ae6a4c8dfdbb1f7085189574f0a938013952b"}))
	s.Error(v.Validate(body{Wallet: "0x000"}))
	s.Error(v.Validate(body{}))
}

func TestValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}
