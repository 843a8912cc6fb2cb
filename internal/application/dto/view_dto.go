package dto

// Modos de render de la capa de presentación.
const (
	RenderPage     = "page"
	RenderFragment = "fragment"
)

// ViewResponse contrato con la capa de presentación: la plantilla elegida y su contexto.
// Página completa y fragmento llevan exactamente los mismos datos.
type ViewResponse struct {
	Template string            `json:"template"`
	Mode     string            `json:"mode"`
	Locale   string            `json:"locale"`
	Labels   map[string]string `json:"labels"`
	Context  any               `json:"context"`
}

// ListingContext contexto del listado de productos.
type ListingContext struct {
	Products        []ProductResponse      `json:"products"`
	Page            PageResponse           `json:"page"`
	RootCategories  []CategoryTreeResponse `json:"root_categories"`
	CurrentCategory string                 `json:"current_category"`
	SearchQuery     string                 `json:"search_query"`
	Ordering        string                 `json:"ordering"`
}

// HomeContext contexto de la portada.
type HomeContext struct {
	FeaturedCategories []CategoryResponse     `json:"featured_categories"`
	RecentProducts     []ProductResponse      `json:"recent_products"`
	RootCategories     []CategoryTreeResponse `json:"root_categories"`
}

// DetailContext contexto de la ficha de producto.
type DetailContext struct {
	Product        ProductResponse        `json:"product"`
	Breadcrumb     string                 `json:"breadcrumb"`
	RootCategories []CategoryTreeResponse `json:"root_categories"`
}
