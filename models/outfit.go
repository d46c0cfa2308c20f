package models

// Outfit groups up to three garments. The slot ids are weak references: they
// may point at items that no longer exist, which readers treat as unset.
type Outfit struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	ImageURL    string  `json:"imageUrl"`
	TopID       *string `json:"topId"`
	BottomID    *string `json:"bottomId"`
	ExtraID     *string `json:"extraId"`
	Description string  `json:"description"` // context for the assistant
}

// NewOutfit is the payload of the add-outfit form.
type NewOutfit struct {
	Name        string  `json:"name"`
	ImageURL    string  `json:"imageUrl"`
	TopID       *string `json:"topId"`
	BottomID    *string `json:"bottomId"`
	ExtraID     *string `json:"extraId"`
	Description string  `json:"description"`
}

// References reports whether any slot of o points at itemID.
func (o Outfit) References(itemID string) bool {
	return slotIs(o.TopID, itemID) || slotIs(o.BottomID, itemID) || slotIs(o.ExtraID, itemID)
}

// Unlink clears every slot that points at itemID. Slots are checked
// independently. It reports whether anything changed.
func (o *Outfit) Unlink(itemID string) bool {
	changed := false
	for _, slot := range []**string{&o.TopID, &o.BottomID, &o.ExtraID} {
		if slotIs(*slot, itemID) {
			*slot = nil
			changed = true
		}
	}
	return changed
}

// Slot pairs an outfit slot with the garment category it expects.
type Slot struct {
	Label    string
	Category Category
	ItemID   *string
}

// Slots returns the three slots in display order.
func (o Outfit) Slots() []Slot {
	return []Slot{
		{Label: "Top", Category: CategoryTops, ItemID: o.TopID},
		{Label: "Bottom", Category: CategoryBottoms, ItemID: o.BottomID},
		{Label: "Extra", Category: CategoryExtra, ItemID: o.ExtraID},
	}
}

func slotIs(slot *string, id string) bool {
	return slot != nil && *slot == id
}

// Ref returns a pointer to id, or nil when id is empty. Forms send "" for
// "None".
func Ref(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
