package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	autherror "github.com/Saeed-Mujawar/contact-management-apis/internal/errors"
)

func TestResetTicketStore_IssueAndClaim(t *testing.T) {
	s := NewResetTicketStore()

	ticket, err := s.Issue("alice@example.com", time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, ticket)

	assert.NoError(t, s.Claim("alice@example.com", ticket))

	// A ticket is single-use
	assert.ErrorIs(t, s.Claim("alice@example.com", ticket), autherror.ErrTicketNotFound)
}

func TestResetTicketStore_ClaimFailures(t *testing.T) {
	s := NewResetTicketStore()

	t.Run("not found", func(t *testing.T) {
		err := s.Claim("nobody@example.com", "whatever")
		assert.ErrorIs(t, err, autherror.ErrTicketNotFound)
	})

	t.Run("mismatch", func(t *testing.T) {
		ticket, err := s.Issue("bob@example.com", time.Hour)
		require.NoError(t, err)

		assert.ErrorIs(t, s.Claim("bob@example.com", "wrong-token"), autherror.ErrTicketMismatch)

		// A mismatch does not consume the real ticket
		assert.NoError(t, s.Claim("bob@example.com", ticket))
	})

	t.Run("expired", func(t *testing.T) {
		ticket, err := s.Issue("carol@example.com", -time.Minute)
		require.NoError(t, err)

		assert.ErrorIs(t, s.Claim("carol@example.com", ticket), autherror.ErrTicketExpired)

		// The expired ticket is gone entirely
		assert.ErrorIs(t, s.Claim("carol@example.com", ticket), autherror.ErrTicketNotFound)
	})
}

func TestResetTicketStore_ReissueInvalidatesPrior(t *testing.T) {
	s := NewResetTicketStore()

	first, err := s.Issue("alice@example.com", time.Hour)
	require.NoError(t, err)
	second, err := s.Issue("alice@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	assert.ErrorIs(t, s.Claim("alice@example.com", first), autherror.ErrTicketMismatch)
	assert.NoError(t, s.Claim("alice@example.com", second))
}

func TestResetTicketStore_Prune(t *testing.T) {
	s := NewResetTicketStore()

	_, err := s.Issue("live@example.com", time.Hour)
	require.NoError(t, err)
	_, err = s.Issue("dead@example.com", -time.Minute)
	require.NoError(t, err)

	removed := s.Prune(time.Now())

	assert.Equal(t, 1, removed)
	assert.ErrorIs(t, s.Claim("dead@example.com", "any"), autherror.ErrTicketNotFound)
}

func TestResetTicketStore_TokensAreUnique(t *testing.T) {
	s := NewResetTicketStore()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		ticket, err := s.Issue("alice@example.com", time.Hour)
		require.NoError(t, err)
		assert.Len(t, ticket, 64)
		assert.False(t, seen[ticket])
		seen[ticket] = true
	}
}
