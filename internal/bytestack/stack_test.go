package bytestack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushPopUint8(t *testing.T) {
	var s Stack
	require.NoError(t, s.PushUint8(42))
	require.NoError(t, s.PushUint8(7))
	v, err := s.PopUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(7), v)
	v, err = s.PopUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(42), v)
}

func TestPushPopUint64RoundTrip(t *testing.T) {
	var s Stack
	require.NoError(t, s.PushUint64(0x0102030405060708))
	v, err := s.PopUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0102030405060708), v)
	assert.Equal(t, 0, s.Len())
}

func TestPopUnderflow(t *testing.T) {
	var s Stack
	_, err := s.PopUint8()
	require.Error(t, err)
	var ue UnderflowError
	assert.ErrorAs(t, err, &ue)
	assert.Equal(t, "pop", ue.Op)
}

func TestPushLimit(t *testing.T) {
	s := Stack{Limit: 2}
	require.NoError(t, s.PushUint8(1))
	require.NoError(t, s.PushUint8(2))
	err := s.PushUint8(3)
	require.Error(t, err)
	var le LimitError
	assert.ErrorAs(t, err, &le)
}

func TestInsertAtRemoveAt(t *testing.T) {
	var s Stack
	require.NoError(t, s.PushUint8(1))
	require.NoError(t, s.PushUint8(2))
	require.NoError(t, s.PushUint8(3))

	gap, err := s.InsertAt(1, 2)
	require.NoError(t, err)
	gap[0], gap[1] = 0xaa, 0xbb
	assert.Equal(t, []byte{1, 0xaa, 0xbb, 2, 3}, s.Bytes())

	require.NoError(t, s.RemoveAt(1, 2))
	assert.Equal(t, []byte{1, 2, 3}, s.Bytes())
}

func TestGrowthIsGeometric(t *testing.T) {
	var s Stack
	buf, err := s.PushBytes(10)
	require.NoError(t, err)
	assert.Len(t, buf, 10)
	firstCap := cap(s.Bytes())
	assert.GreaterOrEqual(t, float64(firstCap), float64(10)*growthFactor*0.99)
}

func TestAtViewDoesNotCopy(t *testing.T) {
	var s Stack
	require.NoError(t, s.PushUint8(9))
	view, err := s.At(0, 1)
	require.NoError(t, err)
	assert.Equal(t, byte(9), view[0])

	_, err = s.At(0, 2)
	require.Error(t, err)
}
