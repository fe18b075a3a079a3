package token2022

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"token-decoder-sol/pkg/types"
)

func filledKey(b byte) types.Pubkey {
	var pk types.Pubkey
	for i := range pk {
		pk[i] = b
	}
	return pk
}

func TestDecodeU16(t *testing.T) {
	v, rest, err := DecodeU16([]byte{0x34, 0x12, 0xff})
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), v)
	assert.Equal(t, []byte{0xff}, rest)

	_, _, err = DecodeU16([]byte{0x34})
	assert.ErrorIs(t, err, ErrTruncatedInput)
}

func TestDecodeU64(t *testing.T) {
	v, rest, err := DecodeU64([]byte{0x64, 0, 0, 0, 0, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, uint64(100), v)
	assert.Empty(t, rest)

	v, _, err = DecodeU64([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	require.NoError(t, err)
	assert.Equal(t, ^uint64(0), v)

	for n := 0; n < U64Bytes; n++ {
		_, _, err = DecodeU64(make([]byte, n))
		assert.ErrorIs(t, err, ErrTruncatedInput, "len=%d", n)
	}
}

func TestDecodePubkey(t *testing.T) {
	key := filledKey(0x42)
	input := append(key.Bytes(), 0x01, 0x02)

	pk, rest, err := DecodePubkey(input)
	require.NoError(t, err)
	assert.Equal(t, key, pk)
	assert.Equal(t, []byte{0x01, 0x02}, rest)

	// 解码结果不引用输入缓冲区
	input[0] = 0x00
	assert.Equal(t, byte(0x42), pk[0])

	_, _, err = DecodePubkey(key.Bytes()[:31])
	assert.ErrorIs(t, err, ErrTruncatedInput)
}

func TestDecodeAmountDecimals(t *testing.T) {
	amount, decimals, rest, err := DecodeAmountDecimals([]byte{0x10, 0x27, 0, 0, 0, 0, 0, 0, 9, 0xaa})
	require.NoError(t, err)
	assert.Equal(t, uint64(10000), amount)
	assert.Equal(t, uint8(9), decimals)
	assert.Equal(t, []byte{0xaa}, rest)

	_, _, _, err = DecodeAmountDecimals([]byte{0x10, 0x27, 0, 0, 0, 0, 0, 0})
	assert.ErrorIs(t, err, ErrTruncatedInput)
}

func TestDecodePubkeyOption(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		opt, rest, err := DecodePubkeyOption([]byte{0})
		require.NoError(t, err)
		assert.True(t, opt.IsNone())
		assert.Empty(t, rest)
	})

	t.Run("some", func(t *testing.T) {
		key := filledKey(0x11)
		opt, rest, err := DecodePubkeyOption(append([]byte{1}, key.Bytes()...))
		require.NoError(t, err)
		got, ok := opt.Get()
		assert.True(t, ok)
		assert.Equal(t, key, got)
		assert.Empty(t, rest)
	})

	t.Run("none keeps trailing bytes", func(t *testing.T) {
		opt, rest, err := DecodePubkeyOption([]byte{0, 7, 8})
		require.NoError(t, err)
		assert.True(t, opt.IsNone())
		assert.Equal(t, []byte{7, 8}, rest)
	})

	t.Run("invalid discriminant", func(t *testing.T) {
		_, _, err := DecodePubkeyOption([]byte{2})
		assert.ErrorIs(t, err, ErrInvalidOptionDiscriminant)
		assert.False(t, errors.Is(err, ErrTruncatedInput))

		var optErr *OptionDiscriminantError
		require.ErrorAs(t, err, &optErr)
		assert.Equal(t, uint8(2), optErr.Discriminant)
	})

	t.Run("empty", func(t *testing.T) {
		_, _, err := DecodePubkeyOption(nil)
		assert.ErrorIs(t, err, ErrInvalidOptionDiscriminant)
		assert.ErrorIs(t, err, ErrTruncatedInput)
	})

	t.Run("some with short key", func(t *testing.T) {
		_, _, err := DecodePubkeyOption(append([]byte{1}, bytes.Repeat([]byte{0x11}, 20)...))
		assert.ErrorIs(t, err, ErrTruncatedInput)
		assert.False(t, errors.Is(err, ErrInvalidOptionDiscriminant))
	})
}

func TestDecodeExtensionTypes(t *testing.T) {
	list, err := DecodeExtensionTypes(nil)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = DecodeExtensionTypes([]byte{0x01, 0x00, 0x03, 0x00})
	require.NoError(t, err)
	assert.Equal(t, []ExtensionType{ExtensionTypeTransferFeeConfig, ExtensionTypeMintCloseAuthority}, list)

	list, err = DecodeExtensionTypes([]byte{0x13, 0x00})
	require.NoError(t, err)
	assert.Equal(t, []ExtensionType{ExtensionTypeTokenMetadata}, list)

	// 末尾不足 2 字节
	_, err = DecodeExtensionTypes([]byte{0x01, 0x00, 0x03})
	assert.ErrorIs(t, err, ErrTruncatedInput)

	_, err = DecodeExtensionTypes([]byte{0x14, 0x00})
	var enumErr *InvalidEnumCodeError
	require.ErrorAs(t, err, &enumErr)
	assert.Equal(t, uint16(20), enumErr.Code)
	assert.ErrorIs(t, err, ErrInvalidEnumCode)
}
