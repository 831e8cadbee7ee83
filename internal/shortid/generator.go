package shortid

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

const (
	// Length 是生成的短码的长度
	Length = 7
)

// ErrUnavailable 表示底层随机源不可用，无法生成短码
var ErrUnavailable = errors.New("shortid: random source unavailable")

// Generate 生成一个短码：取 128 位随机值（uuid v4），
// 用比特币 base58 字母表编码后截取前 7 位。
// 字母表不含 0、O、I、l，避免视觉混淆。
func Generate() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// 16 字节随机值的 base58 编码长度恒大于 7，截取是安全的
	encoded := base58.Encode(u[:])
	return encoded[:Length], nil
}
