package smartaccount

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/require"
)

type stubTokenClient struct {
	listRes    *rpc.GetTokenAccountsResult
	listErr    error
	gotOwner   solana.PublicKey
	gotProgram *solana.PublicKey

	balances map[solana.PublicKey]*rpc.GetTokenAccountBalanceResult
	balErr   error
}

func (s *stubTokenClient) GetTokenAccountsByOwner(ctx context.Context, owner solana.PublicKey, conf *rpc.GetTokenAccountsConfig, opts *rpc.GetTokenAccountsOpts) (*rpc.GetTokenAccountsResult, error) {
	s.gotOwner = owner
	s.gotProgram = conf.ProgramId
	return s.listRes, s.listErr
}

func (s *stubTokenClient) GetTokenAccountBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetTokenAccountBalanceResult, error) {
	if s.balErr != nil {
		return nil, s.balErr
	}
	return s.balances[account], nil
}

func TestTokenProgramVariant(t *testing.T) {
	classic, err := TokenProgramClassic.ProgramID()
	require.NoError(t, err)
	require.Equal(t, solana.TokenProgramID, classic)

	v2022, err := TokenProgram2022.ProgramID()
	require.NoError(t, err)
	require.Equal(t, Token2022ProgramID, v2022)

	_, err = TokenProgramVariant(7).ProgramID()
	require.ErrorIs(t, err, ErrUnknownTokenProgram)
}

func TestSmartAccountTokenAccounts(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	smart, _, err := DeriveSmartAccount(owner, DefaultProgramID)
	require.NoError(t, err)

	accA := solana.NewWallet().PublicKey()
	accB := solana.NewWallet().PublicKey()
	stub := &stubTokenClient{
		listRes: &rpc.GetTokenAccountsResult{
			Value: []*rpc.TokenAccount{
				{Pubkey: accA},
				{Pubkey: accB},
			},
		},
	}

	got, err := SmartAccountTokenAccounts(context.Background(), stub, smart, TokenProgramClassic)
	require.NoError(t, err)
	require.Equal(t, []solana.PublicKey{accA, accB}, got)
	require.Equal(t, smart, stub.gotOwner)
	require.NotNil(t, stub.gotProgram)
	require.Equal(t, solana.TokenProgramID, *stub.gotProgram)

	_, err = SmartAccountTokenAccounts(context.Background(), stub, smart, TokenProgramVariant(7))
	require.ErrorIs(t, err, ErrUnknownTokenProgram)

	stub.listErr = errors.New("rpc down")
	_, err = SmartAccountTokenAccounts(context.Background(), stub, smart, TokenProgramClassic)
	require.Error(t, err)
}

func TestGetMultipleAccountsBalances(t *testing.T) {
	accA := solana.NewWallet().PublicKey()
	accB := solana.NewWallet().PublicKey()
	stub := &stubTokenClient{
		balances: map[solana.PublicKey]*rpc.GetTokenAccountBalanceResult{
			accA: {Value: &rpc.UiTokenAmount{Amount: "5000000"}},
			accB: {Value: &rpc.UiTokenAmount{Amount: "12"}},
		},
	}

	got, err := GetMultipleAccountsBalances(context.Background(), stub, []solana.PublicKey{accA, accB}, rpc.CommitmentFinalized)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "5000000", got[0].Value.Amount)
	require.Equal(t, "12", got[1].Value.Amount)

	stub.balErr = errors.New("rpc down")
	_, err = GetMultipleAccountsBalances(context.Background(), stub, []solana.PublicKey{accA}, rpc.CommitmentFinalized)
	require.Error(t, err)
}
