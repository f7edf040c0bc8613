package smartaccount

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// ErrUnknownTokenProgram 未知的代币程序变体
var ErrUnknownTokenProgram = errors.New("unknown token program variant")

// Token2022ProgramID Token-2022 扩展代币程序地址
var Token2022ProgramID = solana.MustPublicKeyFromBase58("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb")

// TokenProgramVariant 代币程序变体
// 经典SPL Token和Token-2022使用相同的转账指令布局，只是程序地址不同
type TokenProgramVariant uint8

const (
	TokenProgramClassic TokenProgramVariant = iota // TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA
	TokenProgram2022                               // TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb
)

// ProgramID 返回该变体对应的代币程序地址
func (v TokenProgramVariant) ProgramID() (solana.PublicKey, error) {
	switch v {
	case TokenProgramClassic:
		return solana.TokenProgramID, nil
	case TokenProgram2022:
		return Token2022ProgramID, nil
	default:
		return solana.PublicKey{}, fmt.Errorf("%w: %d", ErrUnknownTokenProgram, v)
	}
}

// TokenAccountLister 按所有者列出代币账户的最小能力
// *rpc.Client 和 *Provider 都满足该接口
type TokenAccountLister interface {
	GetTokenAccountsByOwner(ctx context.Context, owner solana.PublicKey, conf *rpc.GetTokenAccountsConfig, opts *rpc.GetTokenAccountsOpts) (*rpc.GetTokenAccountsResult, error)
}

// TokenBalanceReader 查询代币账户余额的最小能力
type TokenBalanceReader interface {
	GetTokenAccountBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetTokenAccountBalanceResult, error)
}

// SmartAccountTokenAccounts 列出智能账户名下某个代币程序的全部代币账户
// 委托人组装 ExecuteTokenTransfer 前用它解析来源账户
func SmartAccountTokenAccounts(ctx context.Context, client TokenAccountLister, smart solana.PublicKey, variant TokenProgramVariant) ([]solana.PublicKey, error) {
	programID, err := variant.ProgramID()
	if err != nil {
		return nil, err
	}

	accounts, err := client.GetTokenAccountsByOwner(
		ctx,
		smart,
		&rpc.GetTokenAccountsConfig{
			ProgramId: &programID,
		},
		&rpc.GetTokenAccountsOpts{
			Encoding: "jsonParsed",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("list token accounts of %s: %w", smart, err)
	}

	var tokenIDs []solana.PublicKey
	for _, acc := range accounts.Value {
		tokenIDs = append(tokenIDs, acc.Pubkey)
	}
	return tokenIDs, nil
}

// GetMultipleAccountsBalances 查询多个代币账户余额（顺序与输入一致）
func GetMultipleAccountsBalances(ctx context.Context, client TokenBalanceReader, accounts []solana.PublicKey, commitment rpc.CommitmentType) ([]*rpc.GetTokenAccountBalanceResult, error) {
	results := make([]*rpc.GetTokenAccountBalanceResult, len(accounts))
	for i, acc := range accounts {
		resp, err := client.GetTokenAccountBalance(ctx, acc, commitment)
		if err != nil {
			return nil, fmt.Errorf("balance of %s: %w", acc, err)
		}
		results[i] = resp
	}
	return results, nil
}
