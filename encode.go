package smartaccount

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gagliardetto/solana-go"
)

// ErrInvalidAmount 金额非法（负数、非有限值或超出u64范围）
var ErrInvalidAmount = errors.New("invalid amount")

const (
	// 系统程序转账指令的选择器（u32小端）
	nativeTransferSelector uint32 = 2
	// SPL Token转账指令的选择器（单字节）
	tokenTransferSelector byte = 3
)

// NativeTransferData 原生SOL转账数据编码器
// 布局固定12字节：4字节小端选择器 + 8字节小端lamports金额
type NativeTransferData struct {
	Amount uint64 // 单位lamports
}

func (td *NativeTransferData) Encode() ([]byte, error) {
	buf := make([]byte, 12)
	binary.LittleEndian.PutUint32(buf[0:4], nativeTransferSelector)
	binary.LittleEndian.PutUint64(buf[4:12], td.Amount)
	return buf, nil
}

func (td *NativeTransferData) Decode(data []byte) error {
	// 基础长度校验（4字节指令类型+8字节金额）
	if len(data) != 12 {
		return errors.New("invalid data length")
	}
	if binary.LittleEndian.Uint32(data[0:4]) != nativeTransferSelector {
		return errors.New("unexpected instruction selector")
	}
	td.Amount = binary.LittleEndian.Uint64(data[4:12])
	return nil
}

// TokenTransferData 代币转账数据编码器
// 布局固定9字节：1字节选择器 + 8字节小端金额（代币最小单位）
type TokenTransferData struct {
	Amount uint64
}

func (td *TokenTransferData) Encode() ([]byte, error) {
	buf := make([]byte, 9)
	buf[0] = tokenTransferSelector
	binary.LittleEndian.PutUint64(buf[1:9], td.Amount)
	return buf, nil
}

func (td *TokenTransferData) Decode(data []byte) error {
	if len(data) != 9 {
		return errors.New("invalid data length")
	}
	if data[0] != tokenTransferSelector {
		return errors.New("unexpected instruction selector")
	}
	td.Amount = binary.LittleEndian.Uint64(data[1:9])
	return nil
}

// RawData 自定义数据编码器，原样转发调用方已经编码好的数据
// 不做任何结构校验
type RawData struct {
	Data []byte
}

func (rd *RawData) Encode() ([]byte, error) {
	return rd.Data, nil
}

func (rd *RawData) Decode(data []byte) error {
	rd.Data = make([]byte, len(data))
	copy(rd.Data, data)
	return nil
}

// SolToLamports 把SOL金额换算成lamports
// 负数、NaN、Inf以及超过u64范围的金额会在编码前被拒绝
func SolToLamports(sol float64) (uint64, error) {
	if math.IsNaN(sol) || math.IsInf(sol, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, sol)
	}
	if sol < 0 {
		return 0, fmt.Errorf("%w: negative value %v", ErrInvalidAmount, sol)
	}
	lamports := sol * float64(solana.LAMPORTS_PER_SOL)
	if lamports >= float64(math.MaxUint64) {
		return 0, fmt.Errorf("%w: %v SOL overflows uint64 lamports", ErrInvalidAmount, sol)
	}
	return uint64(lamports), nil
}
