package smartaccount

import (
	"bytes"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

var (
	// ErrAccountNotFound 链上不存在该地址的账户
	ErrAccountNotFound = errors.New("smart account not found")
	// ErrForeignAccount 账户存在但不属于智能账户程序
	ErrForeignAccount = errors.New("account is not owned by the smart account program")
	// ErrInvalidAccountData 账户数据与预期的字段布局不匹配
	ErrInvalidAccountData = errors.New("unexpected account data")
)

// 智能账户记录的8字节识别码
var smartAccountDiscriminator = AccountDiscriminator("SmartAccount")

// SmartAccountState 链上智能账户记录
// 布局（borsh）：8字节识别码 | 所有者32字节 | 委托人列表(u32长度前缀) | 暂停标志1字节
type SmartAccountState struct {
	Owner     solana.PublicKey
	Delegates []solana.PublicKey
	Paused    bool
}

// DecodeSmartAccountState 把账户原始字节解码成结构化记录
// 识别码或字段宽度不匹配时返回 ErrInvalidAccountData，绝不做未经校验的强转
func DecodeSmartAccountState(data []byte) (*SmartAccountState, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("%w: %d bytes is too short", ErrInvalidAccountData, len(data))
	}
	if !bytes.Equal(data[:8], smartAccountDiscriminator) {
		return nil, fmt.Errorf("%w: discriminator mismatch", ErrInvalidAccountData)
	}

	state := new(SmartAccountState)
	decoder := bin.NewBorshDecoder(data[8:])
	if err := decoder.Decode(state); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAccountData, err)
	}
	// 账户空间是预分配的，委托人列表之后允许存在零填充
	return state, nil
}

// HasDelegate 判断某个身份是否在委托人列表中
func (s *SmartAccountState) HasDelegate(delegate solana.PublicKey) bool {
	for _, d := range s.Delegates {
		if d.Equals(delegate) {
			return true
		}
	}
	return false
}
