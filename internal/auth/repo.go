package auth

import (
	"context"

	"github.com/handloomhouse/storefront-backend/pkg/kvstore"
)

// Repo persists the registered users list and the current session record.
type Repo interface {
	Users(ctx context.Context) ([]StoredUser, error)
	SaveUsers(ctx context.Context, users []StoredUser) error
	Session(ctx context.Context) (Session, bool, error)
	SaveSession(ctx context.Context, session Session) error
	ClearSession(ctx context.Context) error
}

type repo struct {
	store kvstore.Store
}

// NewRepo builds an auth repository over the provided store.
func NewRepo(store kvstore.Store) Repo {
	return &repo{store: store}
}

func (r *repo) Users(ctx context.Context) ([]StoredUser, error) {
	var users []StoredUser
	found, err := r.store.Get(ctx, kvstore.KeyUsers, &users)
	if err != nil {
		return nil, err
	}
	if !found {
		return []StoredUser{}, nil
	}
	return users, nil
}

func (r *repo) SaveUsers(ctx context.Context, users []StoredUser) error {
	if users == nil {
		users = []StoredUser{}
	}
	return r.store.Set(ctx, kvstore.KeyUsers, users)
}

func (r *repo) Session(ctx context.Context) (Session, bool, error) {
	var session Session
	found, err := r.store.Get(ctx, kvstore.KeyUser, &session)
	if err != nil {
		return Session{}, false, err
	}
	return session, found, nil
}

func (r *repo) SaveSession(ctx context.Context, session Session) error {
	return r.store.Set(ctx, kvstore.KeyUser, session)
}

func (r *repo) ClearSession(ctx context.Context) error {
	return r.store.Remove(ctx, kvstore.KeyUser)
}
