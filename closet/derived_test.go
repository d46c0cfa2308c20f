package closet

import (
	"testing"

	"github.com/raushankrgupta/virtual-closet/models"
)

func gridIDs(grid []models.Entity) []string {
	ids := make([]string, 0, len(grid))
	for _, e := range grid {
		ids = append(ids, e.ID())
	}
	return ids
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestGridContentsByTab(t *testing.T) {
	tests := []struct {
		tab  models.Category
		want []string
		kind models.EntityKind
	}{
		{models.CategoryOutfits, []string{"o1", "o2", "o3"}, models.KindOutfit},
		{models.CategoryTops, []string{"1", "4"}, models.KindItem},
		{models.CategoryBottoms, []string{"2"}, models.KindItem},
		{models.CategoryExtra, []string{"3"}, models.KindItem},
	}
	for _, tt := range tests {
		t.Run(string(tt.tab), func(t *testing.T) {
			f := newCatalogFixture(t)
			if err := f.closet.ChangeTab(tt.tab); err != nil {
				t.Fatal(err)
			}
			grid := f.closet.GridContents()
			if got := gridIDs(grid); !equalIDs(got, tt.want) {
				t.Fatalf("grid = %v, want %v", got, tt.want)
			}
			for _, e := range grid {
				if e.Kind != tt.kind {
					t.Fatalf("entity %s has kind %s, want %s", e.ID(), e.Kind, tt.kind)
				}
			}
		})
	}
}

func TestSearchOnlyCoversItems(t *testing.T) {
	for _, tab := range models.Categories {
		t.Run(string(tab), func(t *testing.T) {
			f := newCatalogFixture(t)
			_ = f.closet.ChangeTab(tab)
			// "red" also matches the outfit "Red Alert", which must not appear.
			f.closet.SetSearchQuery("RED")

			grid := f.closet.GridContents()
			if got := gridIDs(grid); !equalIDs(got, []string{"1", "3"}) {
				t.Fatalf("grid = %v, want [1 3]", got)
			}
			for _, e := range grid {
				if e.Kind != models.KindItem {
					t.Fatalf("search returned a %s", e.Kind)
				}
			}
			if f.closet.Snapshot().ShowAddButton {
				t.Fatal("add button must be hidden while searching")
			}
		})
	}
}

func TestSearchResultsSentinel(t *testing.T) {
	f := newCatalogFixture(t)
	if res, ok := f.closet.SearchResults(); ok || res != nil {
		t.Fatalf("no search: got %v %v", res, ok)
	}
	f.closet.SetSearchQuery("zzz")
	res, ok := f.closet.SearchResults()
	if !ok || res == nil || len(res) != 0 {
		t.Fatalf("empty search: got %v %v", res, ok)
	}
	if grid := f.closet.GridContents(); len(grid) != 0 {
		t.Fatalf("grid should be empty, got %v", gridIDs(grid))
	}
}

func TestRelatedOutfits(t *testing.T) {
	f := newCatalogFixture(t)

	var ids []string
	for _, o := range f.closet.RelatedOutfits("2") {
		ids = append(ids, o.ID)
	}
	if !equalIDs(ids, []string{"o1"}) {
		t.Fatalf("related(2) = %v", ids)
	}
	if got := f.closet.RelatedOutfits("nobody"); len(got) != 0 {
		t.Fatalf("related(nobody) = %v", got)
	}

	f.closet.SelectEntity("1")
	snap := f.closet.Snapshot()
	if len(snap.RelatedOutfits) != 1 || snap.RelatedOutfits[0].ID != "o2" {
		t.Fatalf("snapshot related = %+v", snap.RelatedOutfits)
	}
}

func TestOutfitPiecesSkipsDanglingSlots(t *testing.T) {
	f := newCatalogFixture(t)

	f.closet.SelectEntity("o1")
	pieces := f.closet.Snapshot().OutfitPieces
	var labels []string
	for _, p := range pieces {
		labels = append(labels, p.Label+":"+p.Item.ID)
	}
	if !equalIDs(labels, []string{"Top:4", "Bottom:2", "Extra:3"}) {
		t.Fatalf("pieces = %v", labels)
	}

	f.closet.SelectEntity("o3")
	if pieces := f.closet.Snapshot().OutfitPieces; len(pieces) != 0 {
		t.Fatalf("dangling pieces = %+v", pieces)
	}
}

func TestSnapshotCounts(t *testing.T) {
	f := newCatalogFixture(t)
	counts := f.closet.Snapshot().Counts
	want := map[models.Category]int{
		models.CategoryTops:    2,
		models.CategoryBottoms: 1,
		models.CategoryExtra:   1,
		models.CategoryOutfits: 3,
	}
	for c, n := range want {
		if counts[c] != n {
			t.Errorf("count[%s] = %d, want %d", c, counts[c], n)
		}
	}
}
