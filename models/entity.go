package models

// EntityKind tells items and outfits apart without relying on id lookup order.
type EntityKind string

const (
	KindItem   EntityKind = "item"
	KindOutfit EntityKind = "outfit"
)

// KindFor maps a drag category to the kind of entity being dragged.
func KindFor(c Category) EntityKind {
	if c == CategoryOutfits {
		return KindOutfit
	}
	return KindItem
}

// EntityRef identifies one entity in one collection.
type EntityRef struct {
	Kind EntityKind `json:"kind"`
	ID   string     `json:"id"`
}

// Entity is a grid cell: exactly one of Item or Outfit is set, matching Kind.
type Entity struct {
	Kind   EntityKind    `json:"kind"`
	Item   *ClothingItem `json:"item,omitempty"`
	Outfit *Outfit       `json:"outfit,omitempty"`
}

// ID returns the id of whichever entity is set.
func (e Entity) ID() string {
	if e.Kind == KindOutfit && e.Outfit != nil {
		return e.Outfit.ID
	}
	if e.Item != nil {
		return e.Item.ID
	}
	return ""
}

func ItemEntity(it ClothingItem) Entity {
	return Entity{Kind: KindItem, Item: &it}
}

func OutfitEntity(o Outfit) Entity {
	return Entity{Kind: KindOutfit, Outfit: &o}
}

// DragPayload is what the grid hands to the trash zone.
type DragPayload struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
}
