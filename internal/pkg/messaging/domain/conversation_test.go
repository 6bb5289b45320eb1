package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalPairOrdersBothDirections(t *testing.T) {
	low, high, err := CanonicalPair(9, 5)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), low)
	assert.Equal(t, int64(9), high)

	low2, high2, err := CanonicalPair(5, 9)
	assert.NoError(t, err)
	assert.Equal(t, low, low2)
	assert.Equal(t, high, high2)
}

func TestCanonicalPairRejectsSelf(t *testing.T) {
	_, _, err := CanonicalPair(7, 7)
	assert.ErrorIs(t, err, ErrSelfConversation)
}

func TestCanonicalPairRejectsInvalidIDs(t *testing.T) {
	for _, pair := range [][2]int64{{0, 5}, {5, 0}, {-1, 5}, {5, -3}} {
		_, _, err := CanonicalPair(pair[0], pair[1])
		assert.ErrorIs(t, err, ErrInvalidParticipant, "pair %v", pair)
	}
}

func TestHasParticipant(t *testing.T) {
	conv := Conversation{ID: 1, UserA: 5, UserB: 9}
	assert.True(t, conv.HasParticipant(5))
	assert.True(t, conv.HasParticipant(9))
	assert.False(t, conv.HasParticipant(12))
	assert.False(t, conv.HasParticipant(0))
}

func TestPeer(t *testing.T) {
	conv := Conversation{ID: 1, UserA: 5, UserB: 9}
	assert.Equal(t, int64(9), conv.Peer(5))
	assert.Equal(t, int64(5), conv.Peer(9))
	assert.Equal(t, int64(0), conv.Peer(12))
}
