package memory

import (
	"context"
	"strings"

	"vendorbot/internal/core/domain/model/menu"
	"vendorbot/internal/pkg/errs"
)

// MenuRepository implements ports.MenuRepository over a Store.
type MenuRepository struct {
	store *Store
	tx    *changes
}

func (r *MenuRepository) Save(_ context.Context, item *menu.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	rec := newMenuRecord(item)
	key := item.Key()

	if r.tx != nil {
		if existing, ok := r.tx.menu[key]; ok {
			rec.name = existing.name
		} else {
			r.store.mu.RLock()
			committed, found := r.store.menu[key]
			r.store.mu.RUnlock()
			if found {
				rec.name = committed.name
			} else {
				r.tx.menuKeys = append(r.tx.menuKeys, key)
			}
		}
		r.tx.menu[key] = rec
		return nil
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if existing, ok := r.store.menu[key]; ok {
		rec.name = existing.name
	} else {
		r.store.menuKeys = append(r.store.menuKeys, key)
	}
	r.store.menu[key] = rec
	return nil
}

func (r *MenuRepository) Get(_ context.Context, key string) (*menu.Item, error) {
	if r.tx != nil {
		if rec, ok := r.tx.menu[key]; ok {
			return rec.toDomain()
		}
	}

	r.store.mu.RLock()
	rec, ok := r.store.menu[key]
	r.store.mu.RUnlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("menu_item", key)
	}
	return rec.toDomain()
}

func (r *MenuRepository) List(_ context.Context) ([]*menu.Item, error) {
	return r.filter(func(menuRecord) bool { return true })
}

func (r *MenuRepository) Search(_ context.Context, query string) ([]*menu.Item, error) {
	needle := menu.NormalizeName(query)
	return r.filter(func(rec menuRecord) bool {
		return strings.Contains(menu.NormalizeName(rec.name), needle)
	})
}

func (r *MenuRepository) filter(keep func(menuRecord) bool) ([]*menu.Item, error) {
	r.store.mu.RLock()
	keys := make([]string, len(r.store.menuKeys), len(r.store.menuKeys)+r.pendingKeys())
	copy(keys, r.store.menuKeys)
	records := make(map[string]menuRecord, len(keys))
	for _, k := range keys {
		records[k] = r.store.menu[k]
	}
	r.store.mu.RUnlock()

	if r.tx != nil {
		for _, k := range r.tx.menuKeys {
			if _, committed := records[k]; !committed {
				keys = append(keys, k)
			}
		}
		for k, rec := range r.tx.menu {
			records[k] = rec
		}
	}

	items := make([]*menu.Item, 0, len(keys))
	for _, k := range keys {
		rec := records[k]
		if !keep(rec) {
			continue
		}
		item, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *MenuRepository) pendingKeys() int {
	if r.tx == nil {
		return 0
	}
	return len(r.tx.menuKeys)
}
