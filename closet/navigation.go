package closet

import (
	"strings"

	"github.com/raushankrgupta/virtual-closet/models"
)

// SelectEntity opens the detail view for id. Items are checked first; any id
// that is not an item is treated as an outfit.
func (c *Closet) SelectEntity(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectedID = id
	if c.itemIndex(id) >= 0 {
		c.view = ViewItemDetail
	} else {
		c.view = ViewOutfitDetail
	}
}

// Select opens the detail view for ref without guessing its kind. It reports
// false, changing nothing, when ref does not exist.
func (c *Closet) Select(ref models.EntityRef) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch ref.Kind {
	case models.KindItem:
		if c.itemIndex(ref.ID) < 0 {
			return false
		}
		c.view = ViewItemDetail
	case models.KindOutfit:
		if c.outfitIndex(ref.ID) < 0 {
			return false
		}
		c.view = ViewOutfitDetail
	default:
		return false
	}
	c.selectedID = ref.ID
	return true
}

// GoBack returns to the grid.
func (c *Closet) GoBack() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.goBack()
}

func (c *Closet) goBack() {
	c.view = ViewGrid
	c.selectedID = ""
}

// SwitchToItem jumps from an outfit to one of its garments, moving to that
// garment's tab. Unknown ids are ignored.
func (c *Closet) SwitchToItem(itemID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.itemIndex(itemID)
	if i < 0 {
		return false
	}
	c.activeCategory = c.items[i].Category
	c.selectedID = itemID
	c.view = ViewItemDetail
	return true
}

// ApplyRecommendation opens the outfit whose name equals outfitName, ignoring
// case and surrounding whitespace. No match leaves everything untouched.
func (c *Closet) ApplyRecommendation(outfitName string) bool {
	want := strings.ToLower(strings.TrimSpace(outfitName))

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, o := range c.outfits {
		if strings.ToLower(o.Name) != want {
			continue
		}
		c.searchQuery = ""
		c.activeCategory = models.CategoryOutfits
		c.selectedID = o.ID
		c.view = ViewOutfitDetail
		return true
	}
	return false
}

// ChangeTab switches tabs, clearing any search and returning to the grid. It
// does nothing when tab is already active and no search is running.
func (c *Closet) ChangeTab(tab models.Category) error {
	if !tab.Valid() {
		return ErrUnknownCategory
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if tab == c.activeCategory && c.searchQuery == "" {
		return nil
	}
	c.searchQuery = ""
	c.activeCategory = tab
	c.goBack()
	return nil
}

// SetSearchQuery replaces the search text. An empty query ends the search.
func (c *Closet) SetSearchQuery(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchQuery = q
}

func (c *Closet) OpenAddForm() {
	c.mu.Lock()
	c.addFormOpen = true
	c.mu.Unlock()
}

func (c *Closet) CloseAddForm() {
	c.mu.Lock()
	c.addFormOpen = false
	c.mu.Unlock()
}
