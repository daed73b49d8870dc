package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Saeed-Mujawar/contact-management-apis/internal/contact/domain"
	"github.com/Saeed-Mujawar/contact-management-apis/internal/contact/dto"
	apperror "github.com/Saeed-Mujawar/contact-management-apis/internal/errors"
)

// ContactService owns the ownership invariant: every read and write is
// scoped to the caller's identity, and a contact owned by someone else is
// Forbidden, never silently filtered.
type ContactService struct {
	repo domain.ContactRepository
}

func NewContactService(repo domain.ContactRepository) *ContactService {
	return &ContactService{repo: repo}
}

func (s *ContactService) List(ctx context.Context, ownerID string) ([]domain.Contact, error) {
	contacts, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.Server(err)
	}
	return contacts, nil
}

func (s *ContactService) Create(ctx context.Context, ownerID string, input dto.CreateContactInput) (*domain.Contact, error) {
	if input.Name == "" || input.Email == "" || input.Phone == "" {
		return nil, apperror.Validation("name, email and phone are required")
	}

	existing, err := s.repo.FindByEmailOrPhone(ctx, ownerID, input.Email, input.Phone)
	if err != nil {
		return nil, apperror.Server(err)
	}
	if existing != nil {
		return nil, apperror.Validation("contact with this email or phone already exists")
	}

	now := time.Now()
	contact := &domain.Contact{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, apperror.Server(err)
	}

	return contact, nil
}

func (s *ContactService) Get(ctx context.Context, ownerID, id string) (*domain.Contact, error) {
	return s.getOwned(ctx, ownerID, id)
}

func (s *ContactService) Update(ctx context.Context, ownerID, id string, input dto.UpdateContactInput) (*domain.Contact, error) {
	if input.Name == "" && input.Email == "" && input.Phone == "" {
		return nil, apperror.Validation("at least one field (name, email, or phone) must be provided for update")
	}

	contact, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		contact.Name = input.Name
	}
	if input.Email != "" {
		contact.Email = input.Email
	}
	if input.Phone != "" {
		contact.Phone = input.Phone
	}
	contact.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, contact); err != nil {
		return nil, apperror.Server(err)
	}

	return contact, nil
}

func (s *ContactService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.getOwned(ctx, ownerID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperror.Server(err)
	}

	return nil
}

func (s *ContactService) Search(ctx context.Context, ownerID, name, email, phone string) ([]domain.Contact, error) {
	if name == "" && email == "" && phone == "" {
		return nil, apperror.Validation("please provide a search term")
	}

	contacts, err := s.repo.Search(ctx, ownerID, name, email, phone)
	if err != nil {
		return nil, apperror.Server(err)
	}

	return contacts, nil
}

func (s *ContactService) Count(ctx context.Context, ownerID string) (int, error) {
	count, err := s.repo.CountByOwner(ctx, ownerID)
	if err != nil {
		return 0, apperror.Server(err)
	}
	return count, nil
}

// BulkDelete deletes only rows owned by the caller; foreign ids in the
// list are ignored by the owner-scoped SQL rather than rejected.
func (s *ContactService) BulkDelete(ctx context.Context, ownerID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, apperror.Validation("no contacts provided for deletion")
	}

	deleted, err := s.repo.DeleteMany(ctx, ownerID, ids)
	if err != nil {
		return 0, apperror.Server(err)
	}

	return deleted, nil
}

func (s *ContactService) getOwned(ctx context.Context, ownerID, id string) (*domain.Contact, error) {
	contact, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Server(err)
	}
	if contact == nil {
		return nil, apperror.NotFound("contact not found")
	}
	if contact.OwnerID != ownerID {
		return nil, apperror.Forbidden("you do not own this contact")
	}
	return contact, nil
}
