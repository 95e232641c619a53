// Package credstore persists the mock backend's account records in the
// client's local storage under a single key, serialized as a JSON array.
package credstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/dashauth/internal/client/localstore"
	"github.com/dmitrijs2005/dashauth/internal/client/models"
	"github.com/dmitrijs2005/dashauth/internal/common"
)

const usersKey = "mockUsers"

type Store struct {
	storage localstore.Repository
}

func NewStore(storage localstore.Repository) *Store {
	return &Store{storage: storage}
}

// Load returns all stored accounts. A missing or unreadable record yields
// an empty slice, never an error: the store starts from scratch rather
// than wedging the auth flow on corrupt state.
func (s *Store) Load(ctx context.Context) []models.Account {
	data, err := s.storage.Get(ctx, usersKey)
	if err != nil || len(data) == 0 {
		return []models.Account{}
	}

	var accounts []models.Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return []models.Account{}
	}
	return accounts
}

// Save replaces the whole account collection. Concurrent writers are not
// coordinated; the last save wins.
func (s *Store) Save(ctx context.Context, accounts []models.Account) error {
	data, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("failed to marshal accounts: %w", err)
	}
	return s.storage.Set(ctx, usersKey, data)
}

// FindByEmail returns the account with the given email or common.ErrorNotFound.
func (s *Store) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	for _, a := range s.Load(ctx) {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, common.ErrorNotFound
}

// FindByUsername returns the account with the given username or common.ErrorNotFound.
func (s *Store) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	for _, a := range s.Load(ctx) {
		if a.Username == username {
			return &a, nil
		}
	}
	return nil, common.ErrorNotFound
}

// Add appends an account and persists the collection.
func (s *Store) Add(ctx context.Context, account models.Account) error {
	accounts := append(s.Load(ctx), account)
	return s.Save(ctx, accounts)
}
