// Package schema maps the persisted record shapes to the in-memory model.
//
// Two shapes exist in storage. The flat shape keeps items in their own
// collection, each referencing its list, category and store by id. The
// embedded shape nests items inside each list record with denormalized
// category/store names and a precomputed subtotal. Numeric fields of either
// shape may have been written as strings, null or garbage, so they are decoded
// as `any` and coerced by Normalize.
package schema

type (
	CategoryRecord struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Icon string `json:"icon,omitempty"`
	}

	StoreRecord struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Location string `json:"location,omitempty"`
	}

	// CatalogRecord covers both catalog_items and the legacy products
	// collection, which carried a category name and a price.
	CatalogRecord struct {
		ID                string `json:"id"`
		Name              string `json:"name"`
		DefaultCategoryID string `json:"defaultCategoryId,omitempty"`
		Category          string `json:"category,omitempty"`
		DefaultStoreID    string `json:"defaultStoreId,omitempty"`
		Unit              string `json:"unit,omitempty"`
		EstimatedPrice    any    `json:"estimatedPrice,omitempty"`
	}

	ListRecord struct {
		ID             string `json:"id"`
		Name           string `json:"name"`
		CreatedAt      any    `json:"createdAt,omitempty"`
		Budget         any    `json:"budget"`
		EstimatedTotal any    `json:"estimatedTotal"`
		// Items is only populated by the embedded shape. It is never written.
		Items []ItemRecord `json:"items,omitempty"`
	}

	ItemRecord struct {
		ID             string `json:"id"`
		ListID         string `json:"listId,omitempty"`
		ItemID         string `json:"itemId,omitempty"`
		Name           string `json:"name"`
		CategoryID     string `json:"categoryId,omitempty"`
		Category       string `json:"category,omitempty"`
		StoreID        string `json:"storeId,omitempty"`
		Store          string `json:"store,omitempty"`
		Quantity       any    `json:"quantity"`
		Unit           string `json:"unit,omitempty"`
		EstimatedPrice any    `json:"estimatedPrice"`
		Subtotal       any    `json:"subtotal"`
		IsChecked      any    `json:"isChecked"`
	}

	// Records is the raw content of every collection as read from storage.
	Records struct {
		Categories []CategoryRecord `json:"categories"`
		Stores     []StoreRecord    `json:"stores"`
		Catalog    []CatalogRecord  `json:"catalog_items"`
		Products   []CatalogRecord  `json:"products,omitempty"`
		Lists      []ListRecord     `json:"shopping_lists"`
		Items      []ItemRecord     `json:"shopping_list_items"`
	}
)
