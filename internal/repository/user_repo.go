package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/skyfare/internal/domain"
	"github.com/Domenick1991/skyfare/internal/storage"
)

type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	SaveAll(ctx context.Context, users []domain.User) error
	// SetCurrent writes the session-restore marker; nil clears it.
	SetCurrent(ctx context.Context, user *domain.User) error
}

type KVUserRepository struct {
	users collection[domain.User]
	store storage.Store
}

func NewUserRepository(store storage.Store) UserRepository {
	return &KVUserRepository{
		users: collection[domain.User]{store: store, key: storage.KeyUsers},
		store: store,
	}
}

func (r *KVUserRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.users.list(ctx)
}

func (r *KVUserRepository) SaveAll(ctx context.Context, users []domain.User) error {
	return r.users.save(ctx, users)
}

func (r *KVUserRepository) SetCurrent(ctx context.Context, user *domain.User) error {
	if err := r.store.Set(ctx, storage.KeyCurrentUser, user); err != nil {
		return fmt.Errorf("%w: write %s: %v", domain.ErrStorage, storage.KeyCurrentUser, err)
	}
	return nil
}

var _ UserRepository = (*KVUserRepository)(nil)
