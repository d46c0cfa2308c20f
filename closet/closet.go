// Package closet owns the item and outfit collections together with the
// navigation state derived from them. Every mutation of a collection is
// written through to the durable store before the call returns.
package closet

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/raushankrgupta/virtual-closet/logger"
	"github.com/raushankrgupta/virtual-closet/models"
	"github.com/raushankrgupta/virtual-closet/store"
)

// View is the page currently shown.
type View string

const (
	ViewGrid         View = "grid"
	ViewItemDetail   View = "itemDetail"
	ViewOutfitDetail View = "outfitDetail"
)

// DefaultDeleteGrace is how long a trashed entity stays visible, flagged as
// pending, before it is removed.
const DefaultDeleteGrace = 300 * time.Millisecond

var (
	ErrInvalidItem     = errors.New("item needs a name, an image and a garment category")
	ErrInvalidOutfit   = errors.New("outfit needs a name and an image")
	ErrSlotCategory    = errors.New("outfit slot references an item of another category")
	ErrUnknownCategory = errors.New("unknown category")
)

type Options struct {
	Store       *store.Store
	Log         *logger.Logger
	Scheduler   Scheduler
	DeleteGrace time.Duration
	// NewID overrides id generation. Tests only.
	NewID func() string
}

// Closet is safe for concurrent use; all operations are serialized, which
// stands in for a single UI event loop.
type Closet struct {
	mu        sync.Mutex
	store     *store.Store
	log       *logger.Logger
	scheduler Scheduler
	grace     time.Duration
	newID     func() string

	items   []models.ClothingItem
	outfits []models.Outfit

	activeCategory models.Category
	view           View
	selectedID     string
	searchQuery    string
	pending        map[string]struct{}
	drag           *models.DragPayload
	addFormOpen    bool
}

// New loads both collections from opts.Store (empty when absent or
// unreadable) and starts on the outfits grid.
func New(opts Options) *Closet {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = TimerScheduler{}
	}
	if opts.DeleteGrace <= 0 {
		opts.DeleteGrace = DefaultDeleteGrace
	}
	if opts.NewID == nil {
		opts.NewID = newID
	}
	c := &Closet{
		store:          opts.Store,
		log:            opts.Log.With("service", "Closet"),
		scheduler:      opts.Scheduler,
		grace:          opts.DeleteGrace,
		newID:          opts.NewID,
		activeCategory: models.CategoryOutfits,
		view:           ViewGrid,
		pending:        make(map[string]struct{}),
	}
	if c.store != nil {
		c.items = store.Load(c.store, store.KeyItems, []models.ClothingItem{})
		c.outfits = store.Load(c.store, store.KeyOutfits, []models.Outfit{})
	}
	// A stored null decodes to nil; keep both records JSON arrays.
	if c.items == nil {
		c.items = []models.ClothingItem{}
	}
	if c.outfits == nil {
		c.outfits = []models.Outfit{}
	}
	c.log.Info("closet loaded", "items", len(c.items), "outfits", len(c.outfits))
	return c
}

// newID is a millisecond timestamp followed by random hex.
func newID() string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + random[:12]
}

func (c *Closet) persistItems() {
	if c.store != nil {
		store.Save(c.store, store.KeyItems, c.items)
	}
}

func (c *Closet) persistOutfits() {
	if c.store != nil {
		store.Save(c.store, store.KeyOutfits, c.outfits)
	}
}

// AddItem stores a new garment under a fresh id and closes the add form.
func (c *Closet) AddItem(data models.NewItem) (models.ClothingItem, error) {
	name := strings.TrimSpace(data.Name)
	if name == "" || data.ImageURL == "" || !data.Category.IsGarment() {
		return models.ClothingItem{}, ErrInvalidItem
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	item := models.ClothingItem{
		ID:       c.uniqueID(func(id string) bool { return c.itemIndex(id) >= 0 }),
		Name:     name,
		ImageURL: data.ImageURL,
		Category: data.Category,
	}
	c.items = append(c.items, item)
	c.persistItems()
	c.addFormOpen = false
	c.log.Debug("item added", "id", item.ID, "category", item.Category)
	return item, nil
}

// AddOutfit stores a new outfit under a fresh id and closes the add form.
// A slot id that names an existing item of a different category is rejected;
// one that names no item at all is kept as a dangling weak reference.
func (c *Closet) AddOutfit(data models.NewOutfit) (models.Outfit, error) {
	name := strings.TrimSpace(data.Name)
	if name == "" || data.ImageURL == "" {
		return models.Outfit{}, ErrInvalidOutfit
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	outfit := models.Outfit{
		Name:        name,
		ImageURL:    data.ImageURL,
		TopID:       normalizeRef(data.TopID),
		BottomID:    normalizeRef(data.BottomID),
		ExtraID:     normalizeRef(data.ExtraID),
		Description: data.Description,
	}
	for _, slot := range outfit.Slots() {
		if slot.ItemID == nil {
			continue
		}
		if i := c.itemIndex(*slot.ItemID); i >= 0 && c.items[i].Category != slot.Category {
			return models.Outfit{}, ErrSlotCategory
		}
	}
	outfit.ID = c.uniqueID(func(id string) bool { return c.outfitIndex(id) >= 0 })

	c.outfits = append(c.outfits, outfit)
	c.persistOutfits()
	c.addFormOpen = false
	c.log.Debug("outfit added", "id", outfit.ID)
	return cloneOutfit(outfit), nil
}

func (c *Closet) uniqueID(taken func(string) bool) string {
	for {
		id := c.newID()
		if !taken(id) {
			return id
		}
	}
}

func normalizeRef(id *string) *string {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil
	}
	v := *id
	return &v
}

func (c *Closet) itemIndex(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Closet) outfitIndex(id string) int {
	for i := range c.outfits {
		if c.outfits[i].ID == id {
			return i
		}
	}
	return -1
}

// Items returns a copy of the item collection.
func (c *Closet) Items() []models.ClothingItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.ClothingItem(nil), c.items...)
}

// Outfits returns a copy of the outfit collection.
func (c *Closet) Outfits() []models.Outfit {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneOutfits(c.outfits)
}

func cloneOutfit(o models.Outfit) models.Outfit {
	o.TopID = normalizeRef(o.TopID)
	o.BottomID = normalizeRef(o.BottomID)
	o.ExtraID = normalizeRef(o.ExtraID)
	return o
}

func cloneOutfits(in []models.Outfit) []models.Outfit {
	out := make([]models.Outfit, len(in))
	for i, o := range in {
		out[i] = cloneOutfit(o)
	}
	return out
}
