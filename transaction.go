package smartaccount

import (
	"errors"

	"github.com/gagliardetto/solana-go"
)

// Transaction 未签名交易
// 只携带指令序列，付费账户和最新区块哈希由调用方在 Build 时补齐
// 本SDK的任何方法都不会设置这两个字段，也不会签名或广播
type Transaction struct {
	Instructions []solana.Instruction
}

// Build 补齐付费账户和区块哈希，生成可供签名的 solana 交易
func (t *Transaction) Build(payer solana.PublicKey, recent solana.Hash) (*solana.Transaction, error) {
	if len(t.Instructions) == 0 {
		return nil, errors.New("transaction has no instructions")
	}
	if payer.IsZero() {
		return nil, errors.New("transaction payer is required")
	}
	return solana.NewTransaction(
		t.Instructions,
		recent,
		solana.TransactionPayer(payer),
	)
}
