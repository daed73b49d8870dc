package domain

import "context"

//go:generate mockgen -destination=../../mocks/mock_contact_repository.go -package=mocks github.com/Saeed-Mujawar/contact-management-apis/internal/contact/domain ContactRepository

// ContactRepository lookups return (nil, nil) when no row matches. Every
// owner-scoped method filters by owner id in SQL; GetByID does not, so the
// service can distinguish missing from foreign.
type ContactRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]Contact, error)
	GetByID(ctx context.Context, id string) (*Contact, error)
	Create(ctx context.Context, contact *Contact) error
	Update(ctx context.Context, contact *Contact) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, ownerID, name, email, phone string) ([]Contact, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	DeleteMany(ctx context.Context, ownerID string, ids []string) (int64, error)
	FindByEmailOrPhone(ctx context.Context, ownerID, email, phone string) (*Contact, error)
}
