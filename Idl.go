package smartaccount

import (
	"crypto/sha256"

	"github.com/gagliardetto/solana-go"
)

// BaseInstruction 基础指令实现
// 通过组合模式实现扩展性，实现了 solana.Instruction 接口
type BaseInstruction struct {
	programID solana.PublicKey
	accounts  []*solana.AccountMeta
	data      []byte
	dataCoder DataCoder // 数据编码器接口
}

// NewBaseInstruction 用已经编码好的数据构造指令
func NewBaseInstruction(programID solana.PublicKey, accounts []*solana.AccountMeta, data []byte) *BaseInstruction {
	return &BaseInstruction{
		programID: programID,
		accounts:  accounts,
		data:      data,
	}
}

// NewCodedInstruction 用数据编码器构造指令，序列化推迟到 Data() 调用时
func NewCodedInstruction(programID solana.PublicKey, accounts []*solana.AccountMeta, coder DataCoder) *BaseInstruction {
	return &BaseInstruction{
		programID: programID,
		accounts:  accounts,
		dataCoder: coder,
	}
}

// ProgramID 实现solana.Instruction接口
func (bi *BaseInstruction) ProgramID() solana.PublicKey {
	return bi.programID
}

// Accounts 实现solana.Instruction接口
func (bi *BaseInstruction) Accounts() []*solana.AccountMeta {
	return bi.accounts
}

// Data 实现solana.Instruction接口
func (bi *BaseInstruction) Data() ([]byte, error) {
	if bi.dataCoder != nil {
		return bi.dataCoder.Encode()
	}
	return bi.data, nil
}

// DataCoder 数据编码接口
// 支持自定义数据序列化逻辑
type DataCoder interface {
	Encode() ([]byte, error)
	Decode([]byte) error
}

// InstructionDiscriminator 计算方法的8字节识别码 sha256("global:<method>")[:8]
// 链上程序靠它路由指令
func InstructionDiscriminator(method string) []byte {
	sum := sha256.Sum256([]byte("global:" + method))
	out := make([]byte, 8)
	copy(out, sum[:8])
	return out
}

// AccountDiscriminator 计算账户类型的8字节识别码 sha256("account:<name>")[:8]
func AccountDiscriminator(name string) []byte {
	sum := sha256.Sum256([]byte("account:" + name))
	out := make([]byte, 8)
	copy(out, sum[:8])
	return out
}
