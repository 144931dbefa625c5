package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClientMessage(t *testing.T) {
	testCases := []struct {
		desc    string
		raw     string
		wantErr bool
	}{
		{desc: "create room", raw: `{"type":"createRoom","data":{"playerName":"ada"}}`},
		{desc: "join room", raw: `{"type":"joinRoom","data":{"code":"123456","playerName":"ada"}}`},
		{desc: "guess", raw: `{"type":"guess","data":{"roomCode":"123456","country":"FRA"}}`},
		{desc: "end game", raw: `{"type":"endGame","data":{"roomCode":"123456"}}`},
		{desc: "leaderboard", raw: `{"type":"getLeaderboard","data":{"roomCode":"123456"}}`},
		{desc: "unknown type", raw: `{"type":"reboot","data":{}}`, wantErr: true},
		{desc: "not json", raw: `hello`, wantErr: true},
		{desc: "empty", raw: ``, wantErr: true},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			_, err := parseClientMessage([]byte(tC.raw))
			if tC.wantErr {
				assert.ErrorIs(t, err, errBadMessage)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecodeData(t *testing.T) {
	msg, err := parseClientMessage([]byte(`{"type":"guess","data":{"roomCode":"123456","country":"FRA"}}`))
	require.NoError(t, err)

	data, err := decodeData[guessData](msg)
	require.NoError(t, err)
	assert.Equal(t, "123456", data.RoomCode)
	assert.Equal(t, "FRA", data.Country)

	missing, err := parseClientMessage([]byte(`{"type":"guess"}`))
	require.NoError(t, err)
	_, err = decodeData[guessData](missing)
	assert.ErrorIs(t, err, errBadMessage)
}

func TestIsRoomCode(t *testing.T) {
	assert.True(t, isRoomCode("123456"))
	assert.True(t, isRoomCode("000000"))
	assert.False(t, isRoomCode("12345"))
	assert.False(t, isRoomCode("1234567"))
	assert.False(t, isRoomCode("12345a"))
	assert.False(t, isRoomCode("12 456"))
	assert.False(t, isRoomCode(""))
}
