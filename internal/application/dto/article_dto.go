package dto

import "time"

// CreateArticleRequest entrada para crear un artículo. Quantity nil = 1.
type CreateArticleRequest struct {
	Code          string     `json:"code_article"`
	ProduitID     string     `json:"produit_id"`
	EmplacementID string     `json:"emplacement_id"`
	Quantity      *int       `json:"quantite"`
	ExpiresAt     *time.Time `json:"date_peremption"`
	Comment       string     `json:"commentaire"`
}

// UpdateArticleRequest entrada parcial.
type UpdateArticleRequest struct {
	Code          *string    `json:"code_article"`
	ProduitID     *string    `json:"produit_id"`
	EmplacementID *string    `json:"emplacement_id"`
	Quantity      *int       `json:"quantite"`
	ExpiresAt     *time.Time `json:"date_peremption"`
	Comment       *string    `json:"commentaire"`
}

// ArticleResponse salida de un artículo.
type ArticleResponse struct {
	ID            string     `json:"id"`
	Code          string     `json:"code_article"`
	ProduitID     string     `json:"produit_id"`
	EmplacementID string     `json:"emplacement_id"`
	Quantity      int        `json:"quantite"`
	ExpiresAt     *time.Time `json:"date_peremption"`
	Comment       string     `json:"commentaire"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ArticleListResponse lista paginada de artículos.
type ArticleListResponse struct {
	Items []ArticleResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// RemovalOutcome resultado de RemoveOrDecrement.
// Removed=true: el registro se eliminó y su código queda libre; Article es nil.
type RemovalOutcome struct {
	Removed   bool             `json:"supprime"`
	Remaining int              `json:"quantite_restante"`
	Article   *ArticleResponse `json:"article,omitempty"`
}

// ExpiringArticle artículo con días con signo respecto a ahora (negativo = caducado).
type ExpiringArticle struct {
	ArticleResponse
	Days int `json:"jours"`
}

// ExpiryReport partición de artículos con fecha de caducidad.
type ExpiryReport struct {
	HorizonDays int               `json:"horizon_jours"`
	Upcoming    []ExpiringArticle `json:"prochaines"`
	Expired     []ExpiringArticle `json:"expirees"`
}
