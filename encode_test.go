package smartaccount

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNativeTransferDataEncode(t *testing.T) {
	data, err := (&NativeTransferData{Amount: 1_000_000_000}).Encode()
	require.NoError(t, err)
	require.Equal(t, []byte{
		0x02, 0x00, 0x00, 0x00,
		0x00, 0xCA, 0x9A, 0x3B, 0x00, 0x00, 0x00, 0x00,
	}, data)
}

func TestNativeTransferDataZeroAmount(t *testing.T) {
	data, err := (&NativeTransferData{Amount: 0}).Encode()
	require.NoError(t, err)
	require.Len(t, data, 12)
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 0}, data[4:])
}

func TestNativeTransferDataDecode(t *testing.T) {
	var td NativeTransferData
	require.NoError(t, td.Decode([]byte{
		0x02, 0x00, 0x00, 0x00,
		0x00, 0xCA, 0x9A, 0x3B, 0x00, 0x00, 0x00, 0x00,
	}))
	require.Equal(t, uint64(1_000_000_000), td.Amount)

	require.Error(t, td.Decode([]byte{0x02, 0x00}))
	require.Error(t, td.Decode([]byte{
		0x07, 0x00, 0x00, 0x00,
		0x00, 0xCA, 0x9A, 0x3B, 0x00, 0x00, 0x00, 0x00,
	}))
}

func TestTokenTransferDataEncode(t *testing.T) {
	data, err := (&TokenTransferData{Amount: 5_000_000}).Encode()
	require.NoError(t, err)
	require.Equal(t, []byte{
		0x03,
		0x40, 0x4B, 0x4C, 0x00, 0x00, 0x00, 0x00, 0x00,
	}, data)
}

func TestTokenTransferDataDecode(t *testing.T) {
	var td TokenTransferData
	require.NoError(t, td.Decode([]byte{0x03, 0x40, 0x4B, 0x4C, 0x00, 0x00, 0x00, 0x00, 0x00}))
	require.Equal(t, uint64(5_000_000), td.Amount)

	require.Error(t, td.Decode([]byte{0x03}))
	require.Error(t, td.Decode([]byte{0x01, 0x40, 0x4B, 0x4C, 0x00, 0x00, 0x00, 0x00, 0x00}))
}

func TestRawDataPassthrough(t *testing.T) {
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	data, err := (&RawData{Data: payload}).Encode()
	require.NoError(t, err)
	require.Equal(t, payload, data)
}

func TestSolToLamports(t *testing.T) {
	got, err := SolToLamports(1.5)
	require.NoError(t, err)
	require.Equal(t, uint64(1_500_000_000), got)

	got, err = SolToLamports(0)
	require.NoError(t, err)
	require.Equal(t, uint64(0), got)

	_, err = SolToLamports(-0.1)
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = SolToLamports(math.NaN())
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = SolToLamports(math.Inf(1))
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = SolToLamports(1e30)
	require.ErrorIs(t, err, ErrInvalidAmount)
}
