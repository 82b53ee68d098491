package address

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/handloomhouse/storefront-backend/pkg/errors"
	"github.com/handloomhouse/storefront-backend/pkg/kvstore"
)

// Address is one saved delivery address.
type Address struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Line  string `json:"line"`
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`
	Zip   string `json:"zip,omitempty"`
}

// Patch carries the updatable address fields. Nil fields are left alone.
type Patch struct {
	Label *string `json:"label,omitempty"`
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Line  *string `json:"line,omitempty"`
	City  *string `json:"city,omitempty"`
	State *string `json:"state,omitempty"`
	Zip   *string `json:"zip,omitempty"`
}

// Service keeps the address book under the addresses key.
type Service interface {
	List(ctx context.Context) ([]Address, error)
	Add(ctx context.Context, addr Address) (Address, error)
	Update(ctx context.Context, id string, patch Patch) (Address, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	store kvstore.Store
}

// NewService returns the address book service.
func NewService(store kvstore.Store) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	return &service{store: store}, nil
}

func (s *service) all(ctx context.Context) ([]Address, error) {
	var addrs []Address
	found, err := s.store.Get(ctx, kvstore.KeyAddresses, &addrs)
	if err != nil {
		return nil, err
	}
	if !found {
		return []Address{}, nil
	}
	return addrs, nil
}

func (s *service) save(ctx context.Context, addrs []Address) error {
	if addrs == nil {
		addrs = []Address{}
	}
	return s.store.Set(ctx, kvstore.KeyAddresses, addrs)
}

func (s *service) List(ctx context.Context) ([]Address, error) {
	return s.all(ctx)
}

func (s *service) Add(ctx context.Context, addr Address) (Address, error) {
	details := map[string]string{}
	if strings.TrimSpace(addr.Label) == "" {
		details["label"] = "is required"
	}
	if strings.TrimSpace(addr.Name) == "" {
		details["name"] = "is required"
	}
	if strings.TrimSpace(addr.Line) == "" {
		details["line"] = "is required"
	}
	if len(details) > 0 {
		return Address{}, errors.New(errors.CodeValidation, "validation failed").WithDetails(details)
	}

	addrs, err := s.all(ctx)
	if err != nil {
		return Address{}, err
	}

	addr.ID = uuid.NewString()
	if err := s.save(ctx, append(addrs, addr)); err != nil {
		return Address{}, err
	}
	return addr, nil
}

func (s *service) Update(ctx context.Context, id string, patch Patch) (Address, error) {
	addrs, err := s.all(ctx)
	if err != nil {
		return Address{}, err
	}

	for i := range addrs {
		if addrs[i].ID != id {
			continue
		}
		applyPatch(&addrs[i], patch)
		if err := s.save(ctx, addrs); err != nil {
			return Address{}, err
		}
		return addrs[i], nil
	}
	return Address{}, errors.New(errors.CodeNotFound, fmt.Sprintf("address %q not found", id))
}

func (s *service) Delete(ctx context.Context, id string) error {
	addrs, err := s.all(ctx)
	if err != nil {
		return err
	}
	next := make([]Address, 0, len(addrs))
	for _, a := range addrs {
		if a.ID != id {
			next = append(next, a)
		}
	}
	return s.save(ctx, next)
}

func applyPatch(addr *Address, patch Patch) {
	if patch.Label != nil {
		addr.Label = *patch.Label
	}
	if patch.Name != nil {
		addr.Name = *patch.Name
	}
	if patch.Phone != nil {
		addr.Phone = *patch.Phone
	}
	if patch.Line != nil {
		addr.Line = *patch.Line
	}
	if patch.City != nil {
		addr.City = *patch.City
	}
	if patch.State != nil {
		addr.State = *patch.State
	}
	if patch.Zip != nil {
		addr.Zip = *patch.Zip
	}
}
