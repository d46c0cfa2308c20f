package closet

import (
	"github.com/raushankrgupta/virtual-closet/models"
)

// BeginDrag records what is being dragged.
func (c *Closet) BeginDrag(id string, category models.Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drag = &models.DragPayload{ID: id, Category: category}
}

// EndDrag forgets the drag payload. It may run before or after the deferred
// removal started by DropInTrash.
func (c *Closet) EndDrag() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drag = nil
}

// DropInTrash deletes the dragged entity in two phases. The id is flagged as
// pending at once so the view can animate it out; after the grace delay the
// entity is removed, both collections are persisted and the flag is cleared.
// Deleting an item also clears every outfit slot that pointed at it. It
// reports false when nothing is being dragged.
func (c *Closet) DropInTrash() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.drag == nil {
		return false
	}
	payload := *c.drag
	c.pending[payload.ID] = struct{}{}
	c.log.Debug("delete pending", "id", payload.ID, "category", payload.Category)

	c.scheduler.AfterFunc(c.grace, func() {
		c.remove(payload)
	})
	return true
}

func (c *Closet) remove(payload models.DragPayload) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := payload.ID
	if models.KindFor(payload.Category) == models.KindOutfit {
		kept := c.outfits[:0:0]
		for _, o := range c.outfits {
			if o.ID != id {
				kept = append(kept, o)
			}
		}
		c.outfits = kept
	} else {
		kept := c.items[:0:0]
		for _, it := range c.items {
			if it.ID != id {
				kept = append(kept, it)
			}
		}
		c.items = kept
		for i := range c.outfits {
			c.outfits[i].Unlink(id)
		}
	}
	c.persistItems()
	c.persistOutfits()

	if c.selectedID == id {
		c.goBack()
	}
	delete(c.pending, id)
	c.log.Debug("deleted", "id", id, "category", payload.Category)
}

// IsPending reports whether id is waiting for its deferred removal.
func (c *Closet) IsPending(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[id]
	return ok
}

// Dragging returns the current drag payload, if any.
func (c *Closet) Dragging() *models.DragPayload {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.drag == nil {
		return nil
	}
	d := *c.drag
	return &d
}
