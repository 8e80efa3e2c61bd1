package engine

import (
	"context"
	"fmt"

	"studyquest/internal/storage"
)

// ShopItem is a cosmetic unlock purchasable with coins.
type ShopItem struct {
	ID    string
	Name  string
	Desc  string
	Price int
}

func shopCatalog() []ShopItem {
	return []ShopItem{
		{ID: "theme_crimson", Name: "Crimson Theme", Desc: "A red-and-black editor theme", Price: 500},
		{ID: "theme_midnight", Name: "Midnight Theme", Desc: "A deep-blue editor theme", Price: 500},
		{ID: "sfx_jazz", Name: "Jazz Pack", Desc: "Smooth completion jingles", Price: 1500},
		{ID: "icon_mask", Name: "Phantom Mask", Desc: "A profile icon with attitude", Price: 2500},
		{ID: "title_ace", Name: "Title: Ace Student", Desc: "A display title for the dashboard", Price: 5000},
	}
}

func shopItem(id string) *ShopItem {
	for _, it := range shopCatalog() {
		if it.ID == id {
			return &it
		}
	}
	return nil
}

type PurchaseResult struct {
	Item    ShopItem
	Balance int
}

// Purchase spends coins on a catalog item. Unknown ids and repeat
// purchases fail without touching the balance.
func (s *Service) Purchase(ctx context.Context, itemID string) (*PurchaseResult, error) {
	item := shopItem(itemID)
	if item == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownItem, itemID)
	}
	owned, err := s.unlocks.ListByKind(ctx, storage.UnlockItem)
	if err != nil {
		return nil, err
	}
	if owned[itemID] {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyOwned, itemID)
	}

	p, err := s.progress.GetOrCreateMain(ctx)
	if err != nil {
		return nil, err
	}
	if err := spend(p, item.Price); err != nil {
		return nil, err
	}
	if err := s.progress.Update(ctx, p); err != nil {
		return nil, err
	}
	if _, err := s.unlocks.Insert(ctx, storage.UnlockItem, itemID, s.now()); err != nil {
		return nil, err
	}
	return &PurchaseResult{Item: *item, Balance: p.Balance}, nil
}

// ShopItemStatus pairs a catalog item with its owned flag for display.
type ShopItemStatus struct {
	ShopItem
	Owned bool
}

func (s *Service) ShopItems(ctx context.Context) ([]ShopItemStatus, error) {
	owned, err := s.unlocks.ListByKind(ctx, storage.UnlockItem)
	if err != nil {
		return nil, err
	}
	var out []ShopItemStatus
	for _, it := range shopCatalog() {
		out = append(out, ShopItemStatus{ShopItem: it, Owned: owned[it.ID]})
	}
	return out, nil
}
