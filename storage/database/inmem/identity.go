package inmemdb

import (
	"context"
	"sort"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/account"
)

type identityRepository struct {
	db *identityTable
}

var _ account.Repository = (*identityRepository)(nil) // interface compliance check

func NewIdentityRepository(db *DB) *identityRepository {
	return &identityRepository{db: db.identity}
}

func key(role, id string) string {
	return role + ":" + id
}

func (repo *identityRepository) CheckIDUniqueness(ctx context.Context, role, id string) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if _, ok := repo.db.table[key(role, id)]; ok {
		return account.ErrIdentityExists
	}
	return nil
}

func (repo *identityRepository) CreateIdentity(ctx context.Context, idt account.Identity) (account.Identity, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[key(idt.Role, idt.ID)]; ok {
		return account.Identity{}, account.ErrIdentityExists
	}
	repo.db.table[key(idt.Role, idt.ID)] = &idt
	return idt, nil
}

func (repo *identityRepository) GetIdentity(ctx context.Context, role, id string) (account.Identity, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if idt, ok := repo.db.table[key(role, id)]; ok {
		return *idt, nil
	}
	return account.Identity{}, account.ErrNotFound
}

// QueryIdentities returns all identities of a role ordered by ID; the
// requested ordering is not interpreted here.
func (repo *identityRepository) QueryIdentities(ctx context.Context, role string, _ []core.DBOrdering) ([]account.Identity, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	identities := make([]account.Identity, 0, len(repo.db.table))
	for _, idt := range repo.db.table {
		if idt.Role == role {
			identities = append(identities, *idt)
		}
	}
	sort.Slice(identities, func(i, j int) bool { return identities[i].ID < identities[j].ID })
	return identities, nil
}

func (repo *identityRepository) UpdateIdentity(ctx context.Context, idt account.Identity) (account.Identity, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.table[key(idt.Role, idt.ID)]
	if !ok {
		return account.Identity{}, account.ErrNotFound
	}
	idt.CreatedAt = orig.CreatedAt
	repo.db.table[key(idt.Role, idt.ID)] = &idt
	return idt, nil
}

func (repo *identityRepository) DeleteIdentity(ctx context.Context, role, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[key(role, id)]; !ok {
		return account.ErrNotFound
	}
	delete(repo.db.table, key(role, id))
	return nil
}
