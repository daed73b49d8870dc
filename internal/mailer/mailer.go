package mailer

//go:generate mockgen -destination=../mocks/mock_mailer.go -package=mocks github.com/Saeed-Mujawar/contact-management-apis/internal/mailer Mailer

import "context"

// Mailer delivers notification email. Delivery is a fire-and-forget side
// effect; callers log failures but never roll back on them.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetLink string) error
}
