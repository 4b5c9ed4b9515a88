package medusa

// ProductIndexSchemaVersion identifies the product index layout below.
// Any change to ProductIndex requires bumping it and reindexing.
const ProductIndexSchemaVersion = 1

const resolveMeilisearchPlugin = "@rokmohar/medusa-plugin-meilisearch"

// IndexSettings are the attribute lists pushed to the search engine.
type IndexSettings struct {
	SearchableAttributes []string `json:"searchableAttributes" toml:"searchable_attributes"`
	DisplayedAttributes  []string `json:"displayedAttributes" toml:"displayed_attributes"`
	FilterableAttributes []string `json:"filterableAttributes" toml:"filterable_attributes"`
}

// IndexConfig describes how one entity type is indexed.
type IndexConfig struct {
	Type          string        `json:"type" toml:"type"`
	Enabled       bool          `json:"enabled" toml:"enabled"`
	Fields        []string      `json:"fields" toml:"fields"`
	IndexSettings IndexSettings `json:"indexSettings" toml:"index_settings"`
	PrimaryKey    string        `json:"primaryKey" toml:"primary_key"`
}

// ProductIndex returns the product index definition. A fresh value is
// returned on each call so callers cannot alter the shared layout.
func ProductIndex() IndexConfig {
	return IndexConfig{
		Type:    "products",
		Enabled: true,
		Fields:  []string{"id", "title", "description", "handle", "variant_sku", "thumbnail"},
		IndexSettings: IndexSettings{
			SearchableAttributes: []string{"title", "description", "variant_sku"},
			DisplayedAttributes:  []string{"id", "handle", "title", "description", "variant_sku", "thumbnail"},
			FilterableAttributes: []string{"id", "handle"},
		},
		PrimaryKey: "id",
	}
}

// resolveSearchPlugin returns the search indexing plugin when both the host
// and the admin key are present.
func (r *resolver) resolveSearchPlugin() (Plugin, bool) {
	v, ok := groupMeilisearch.Values(r.snap)
	if !ok {
		return Plugin{}, false
	}

	return Plugin{
		Resolve: resolveMeilisearchPlugin,
		Options: Options{
			"config": Options{
				"host":   v["MEILISEARCH_HOST"],
				"apiKey": v["MEILISEARCH_ADMIN_KEY"],
			},
			"settings": map[string]IndexConfig{
				"products": ProductIndex(),
			},
		},
	}, true
}
