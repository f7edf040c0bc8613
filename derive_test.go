package smartaccount

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestDeriveSmartAccountDeterministic(t *testing.T) {
	owner := solana.NewWallet().PublicKey()

	addr1, bump1, err := DeriveSmartAccount(owner, DefaultProgramID)
	require.NoError(t, err)
	addr2, bump2, err := DeriveSmartAccount(owner, DefaultProgramID)
	require.NoError(t, err)

	require.Equal(t, addr1, addr2)
	require.Equal(t, bump1, bump2)
	require.False(t, addr1.IsZero())
	require.False(t, addr1.IsOnCurve(), "derived address must be off-curve")
}

func TestDeriveSmartAccountDistinctOwners(t *testing.T) {
	ownerA := solana.NewWallet().PublicKey()
	ownerB := solana.NewWallet().PublicKey()
	require.False(t, ownerA.Equals(ownerB))

	addrA, _, err := DeriveSmartAccount(ownerA, DefaultProgramID)
	require.NoError(t, err)
	addrB, _, err := DeriveSmartAccount(ownerB, DefaultProgramID)
	require.NoError(t, err)

	require.False(t, addrA.Equals(addrB))
}

func TestDeriveSmartAccountRejectsZeroOwner(t *testing.T) {
	_, _, err := DeriveSmartAccount(solana.PublicKey{}, DefaultProgramID)
	require.Error(t, err)
}

func TestDeriveSmartAccountDistinctPrograms(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	otherProgram := solana.NewWallet().PublicKey()

	addrA, _, err := DeriveSmartAccount(owner, DefaultProgramID)
	require.NoError(t, err)
	addrB, _, err := DeriveSmartAccount(owner, otherProgram)
	require.NoError(t, err)

	require.False(t, addrA.Equals(addrB))
}
