package keys

import (
	"strings"
)

const (
	// PfxAccount is used for prefixing cached accounts
	PfxAccount = "account"
	// PfxCollection is used for prefixing cached collection summaries
	PfxCollection = "collection"
	// PfxNftItem is used for prefixing cached nft items
	PfxNftItem = "nftitem"
	// PfxPayToken is used for prefixing cached pay tokens
	PfxPayToken = "paytoken"
	// PfxSweeperLock guards one expiry sweep per interval across worker replicas
	PfxSweeperLock = "sweeperLock"
)

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by componets
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}

// GetPrefix extracts the prefix of a key, used as metric tag.
// Keys with three or more components keep their first two.
func GetPrefix(key string) string {
	s := strings.Split(key, ":")
	if len(s) > 2 {
		return strings.Join(s[:2], ":")
	} else if len(s) > 1 {
		return s[0]
	}
	return ""
}
