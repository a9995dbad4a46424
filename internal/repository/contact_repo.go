package repository

import (
	"context"

	"github.com/Domenick1991/skyfare/internal/domain"
	"github.com/Domenick1991/skyfare/internal/storage"
)

type ContactRepository interface {
	List(ctx context.Context) ([]domain.Contact, error)
	Append(ctx context.Context, contact domain.Contact) error
}

type KVContactRepository struct {
	contacts collection[domain.Contact]
}

func NewContactRepository(store storage.Store) ContactRepository {
	return &KVContactRepository{contacts: collection[domain.Contact]{store: store, key: storage.KeyContacts}}
}

func (r *KVContactRepository) List(ctx context.Context) ([]domain.Contact, error) {
	return r.contacts.list(ctx)
}

func (r *KVContactRepository) Append(ctx context.Context, contact domain.Contact) error {
	contacts, err := r.contacts.list(ctx)
	if err != nil {
		return err
	}
	return r.contacts.save(ctx, append(contacts, contact))
}

var _ ContactRepository = (*KVContactRepository)(nil)
