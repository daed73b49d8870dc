package service

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	autherror "github.com/Saeed-Mujawar/contact-management-apis/internal/errors"
)

type resetTicket struct {
	token     string
	expiresAt time.Time
}

// ResetTicketStore holds at most one outstanding password-reset ticket per
// email. Issuing a new ticket overwrites the old one; a successful Claim
// deletes the ticket so it can be used exactly once. Tickets do not survive
// a restart.
type ResetTicketStore struct {
	mu      sync.Mutex
	tickets map[string]resetTicket
}

func NewResetTicketStore() *ResetTicketStore {
	return &ResetTicketStore{tickets: make(map[string]resetTicket)}
}

// Issue creates a fresh single-use ticket for the email, replacing any
// prior one.
func (s *ResetTicketStore) Issue(email string, ttl time.Duration) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets[email] = resetTicket{token: token, expiresAt: time.Now().Add(ttl)}

	return token, nil
}

// Claim validates and consumes the ticket for the email. Each failure mode
// is distinct so callers can render a specific message. The ticket is
// deleted only on success; an expired ticket is also dropped since it can
// never be claimed.
func (s *ResetTicketStore) Claim(email, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.tickets[email]
	if !ok {
		return autherror.ErrTicketNotFound
	}
	if ticket.token != token {
		return autherror.ErrTicketMismatch
	}
	if time.Now().After(ticket.expiresAt) {
		delete(s.tickets, email)
		return autherror.ErrTicketExpired
	}

	delete(s.tickets, email)
	return nil
}

// Prune drops expired tickets.
func (s *ResetTicketStore) Prune(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for email, ticket := range s.tickets {
		if now.After(ticket.expiresAt) {
			delete(s.tickets, email)
			removed++
		}
	}
	return removed
}
