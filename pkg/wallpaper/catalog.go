package wallpaper

import (
	"encoding/json"
	"fmt"

	"github.com/slimroms/slimwallpaper/util/log"
)

// CatalogListsAsset is the text asset holding the configured wallpaper lists.
const CatalogListsAsset = "catalog.json"

// CatalogLists holds the two configured identifier lists, in display order.
type CatalogLists struct {
	Primary []string `json:"wallpapers"`
	Extra   []string `json:"extra_wallpapers"`
}

// ParseCatalogLists decodes the configured lists from their JSON form.
func ParseCatalogLists(data []byte) (CatalogLists, error) {
	var lists CatalogLists
	if err := json.Unmarshal(data, &lists); err != nil {
		return CatalogLists{}, fmt.Errorf("decoding catalog lists: %w", err)
	}
	return lists, nil
}

// Catalog is the ordered, immutable list of wallpaper identifiers whose assets resolve.
type Catalog struct {
	ids []string
}

// NewCatalog scans the primary list then the extra list, keeping the first occurrence
// of every identifier that resolves to an asset.
func NewCatalog(lists CatalogLists, assets AssetSource) *Catalog {
	c := &Catalog{}
	seen := make(map[string]bool)
	for _, list := range [][]string{lists.Primary, lists.Extra} {
		for _, id := range list {
			if seen[id] {
				continue
			}
			if !assets.Resolve(id) {
				log.Debugf("Catalog: skipping unresolved wallpaper %q", id)
				continue
			}
			seen[id] = true
			c.ids = append(c.ids, id)
		}
	}
	return c
}

// Len returns the number of wallpapers.
func (c *Catalog) Len() int {
	return len(c.ids)
}

// At returns the identifier at index i.
func (c *Catalog) At(i int) (string, bool) {
	if i < 0 || i >= len(c.ids) {
		return "", false
	}
	return c.ids[i], true
}

// IDs returns a copy of the identifiers in order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}
