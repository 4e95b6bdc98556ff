package validator

import (
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var txHashPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

// IsValidAddress returns is an address valid or not
func IsValidAddress(address string) bool {
	checksum := common.HexToAddress(address).Hex()
	return strings.ToLower(checksum) == strings.ToLower(address)
}

// IsTxHash tells if s is a 0x-prefixed 32 bytes hex string
func IsTxHash(s string) bool {
	return txHashPattern.MatchString(s)
}

// NormalizeTxHash trims s and lower-cases it when it is an evm transaction hash.
// Other strings are returned trimmed.
func NormalizeTxHash(s string) string {
	s = strings.TrimSpace(s)
	if IsTxHash(s) {
		return common.HexToHash(s).Hex()
	}
	return s
}

// New returns a validator with the `eth_addr` tag registered
func New() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("eth_addr", func(fl validator.FieldLevel) bool {
		return IsValidAddress(fl.Field().String())
	})
	return v
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
