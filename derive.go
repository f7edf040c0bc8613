package smartaccount

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// SmartAccountSeed 智能账户PDA派生使用的固定种子
const SmartAccountSeed = "smart"

// DeriveSmartAccount 根据所有者公钥派生智能账户地址
// 派生结果是确定性的：相同的所有者和程序ID永远得到相同的 (地址, bump)
//
//	owner 所有者公钥
//	programID 链上智能账户程序的地址
func DeriveSmartAccount(owner, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	if owner.IsZero() {
		return solana.PublicKey{}, 0, errors.New("derive smart account: owner is required")
	}
	address, bump, err := solana.FindProgramAddress(
		[][]byte{
			[]byte(SmartAccountSeed),
			owner.Bytes(),
		},
		programID,
	)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("derive smart account for %s: %w", owner, err)
	}
	return address, bump, nil
}
