package closet

import (
	"sort"
	"strings"

	"github.com/raushankrgupta/virtual-closet/models"
)

// Piece is one resolved garment of an outfit.
type Piece struct {
	Label string              `json:"label"`
	Item  models.ClothingItem `json:"item"`
}

// Snapshot is everything a view needs to render, computed in one pass.
type Snapshot struct {
	ActiveCategory   models.Category         `json:"activeCategory"`
	View             View                    `json:"view"`
	SelectedID       string                  `json:"selectedId,omitempty"`
	SearchQuery      string                  `json:"searchQuery"`
	Searching        bool                    `json:"searching"`
	Grid             []models.Entity         `json:"grid"`
	ShowAddButton    bool                    `json:"showAddButton"`
	AddFormOpen      bool                    `json:"addFormOpen"`
	AddFormCategory  models.Category         `json:"addFormCategory"`
	SelectedItem     *models.ClothingItem    `json:"selectedItem,omitempty"`
	RelatedOutfits   []models.Outfit         `json:"relatedOutfits,omitempty"`
	SelectedOutfit   *models.Outfit          `json:"selectedOutfit,omitempty"`
	OutfitPieces     []Piece                 `json:"outfitPieces,omitempty"`
	PendingDeletions []string                `json:"pendingDeletions"`
	Drag             *models.DragPayload     `json:"drag,omitempty"`
	Counts           map[models.Category]int `json:"counts"`
}

// SearchResults returns the items whose name contains the query, ignoring
// case. Outfits are never searched. The bool is false when no search is
// active.
func (c *Closet) SearchResults() ([]models.ClothingItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searchResults()
}

func (c *Closet) searchResults() ([]models.ClothingItem, bool) {
	if c.searchQuery == "" {
		return nil, false
	}
	q := strings.ToLower(c.searchQuery)
	results := []models.ClothingItem{}
	for _, it := range c.items {
		if strings.Contains(strings.ToLower(it.Name), q) {
			results = append(results, it)
		}
	}
	return results, true
}

// GridContents is what the grid shows: search results while searching, else
// all outfits on the outfits tab, else the items of the active tab.
func (c *Closet) GridContents() []models.Entity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gridContents()
}

func (c *Closet) gridContents() []models.Entity {
	grid := []models.Entity{}
	if results, ok := c.searchResults(); ok {
		for _, it := range results {
			grid = append(grid, models.ItemEntity(it))
		}
		return grid
	}
	if c.activeCategory == models.CategoryOutfits {
		for _, o := range c.outfits {
			grid = append(grid, models.OutfitEntity(cloneOutfit(o)))
		}
		return grid
	}
	for _, it := range c.items {
		if it.Category == c.activeCategory {
			grid = append(grid, models.ItemEntity(it))
		}
	}
	return grid
}

// SelectedItem is the item shown in the item detail view, or nil when
// another view is active or the selection no longer exists.
func (c *Closet) SelectedItem() *models.ClothingItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedItem()
}

func (c *Closet) selectedItem() *models.ClothingItem {
	if c.view != ViewItemDetail || c.selectedID == "" {
		return nil
	}
	i := c.itemIndex(c.selectedID)
	if i < 0 {
		return nil
	}
	it := c.items[i]
	return &it
}

// SelectedOutfit is the outfit shown in the outfit detail view, or nil.
func (c *Closet) SelectedOutfit() *models.Outfit {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedOutfit()
}

func (c *Closet) selectedOutfit() *models.Outfit {
	if c.view != ViewOutfitDetail || c.selectedID == "" {
		return nil
	}
	i := c.outfitIndex(c.selectedID)
	if i < 0 {
		return nil
	}
	o := cloneOutfit(c.outfits[i])
	return &o
}

// RelatedOutfits lists, in collection order, the outfits that wear itemID.
func (c *Closet) RelatedOutfits(itemID string) []models.Outfit {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.relatedOutfits(itemID)
}

func (c *Closet) relatedOutfits(itemID string) []models.Outfit {
	related := []models.Outfit{}
	for _, o := range c.outfits {
		if o.References(itemID) {
			related = append(related, cloneOutfit(o))
		}
	}
	return related
}

// OutfitPieces resolves the slots of o against the item collection. Empty or
// dangling slots are left out.
func (c *Closet) OutfitPieces(o models.Outfit) []Piece {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outfitPieces(o)
}

func (c *Closet) outfitPieces(o models.Outfit) []Piece {
	pieces := []Piece{}
	for _, slot := range o.Slots() {
		if slot.ItemID == nil {
			continue
		}
		if i := c.itemIndex(*slot.ItemID); i >= 0 {
			pieces = append(pieces, Piece{Label: slot.Label, Item: c.items[i]})
		}
	}
	return pieces
}

// Snapshot captures the view state and every derivation at one instant.
func (c *Closet) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, searching := c.searchResults()
	s := Snapshot{
		ActiveCategory:   c.activeCategory,
		View:             c.view,
		SelectedID:       c.selectedID,
		SearchQuery:      c.searchQuery,
		Searching:        searching,
		Grid:             c.gridContents(),
		ShowAddButton:    !searching,
		AddFormOpen:      c.addFormOpen,
		AddFormCategory:  c.activeCategory,
		PendingDeletions: make([]string, 0, len(c.pending)),
		Counts:           make(map[models.Category]int, len(models.Categories)),
	}
	if item := c.selectedItem(); item != nil {
		s.SelectedItem = item
		s.RelatedOutfits = c.relatedOutfits(item.ID)
	}
	if outfit := c.selectedOutfit(); outfit != nil {
		s.SelectedOutfit = outfit
		s.OutfitPieces = c.outfitPieces(*outfit)
	}
	for id := range c.pending {
		s.PendingDeletions = append(s.PendingDeletions, id)
	}
	sort.Strings(s.PendingDeletions)
	if c.drag != nil {
		d := *c.drag
		s.Drag = &d
	}
	for _, it := range c.items {
		s.Counts[it.Category]++
	}
	s.Counts[models.CategoryOutfits] = len(c.outfits)
	return s
}
