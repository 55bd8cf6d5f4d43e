package models

// Creature is a catalog entry as returned by the API.
type Creature struct {
	ID               int64   `json:"Id"`
	Name             string  `json:"Name"`
	Img              *string `json:"Img"`
	Lore             string  `json:"Lore"`
	IsFavoriteToUser bool    `json:"isFavoriteToUser"`
}

// CreaturePage is one page of the catalog plus the total number of matches.
type CreaturePage struct {
	Data  []Creature `json:"data"`
	Count int        `json:"count"`
}

// CreatureDetails carries per-user presentation data of a favorite.
type CreatureDetails struct {
	BackgroundImg *string `json:"BackgroundImg"`
}

// CreatureInput is the admin create/edit payload. Img is a URL or a data URI.
type CreatureInput struct {
	Name string  `json:"Name"`
	Lore *string `json:"Lore,omitempty"`
	Img  *string `json:"Img,omitempty"`
}

// CatalogRow is a creature mirrored into the local cache. ID is the natural
// key; the favorite flag is never cached.
type CatalogRow struct {
	ID       int64
	Name     string
	ImageRef *string
	Lore     string
}

func (c Creature) Row() CatalogRow {
	return CatalogRow{ID: c.ID, Name: c.Name, ImageRef: c.Img, Lore: c.Lore}
}

// Creature converts a cached row back into the display shape. Cached rows
// never carry the favorite flag.
func (r CatalogRow) Creature() Creature {
	return Creature{ID: r.ID, Name: r.Name, Img: r.ImageRef, Lore: r.Lore}
}

func Rows(cs []Creature) []CatalogRow {
	rows := make([]CatalogRow, 0, len(cs))
	for _, c := range cs {
		rows = append(rows, c.Row())
	}
	return rows
}
