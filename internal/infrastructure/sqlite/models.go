package sqlite

import (
	"time"

	"github.com/jhoicas/ddb-stock/internal/domain/entity"
)

// Modelos gorm: mismo esquema que las migraciones de PostgreSQL.
// Sin tags default: los ceros (niveau, quantite) deben escribirse tal cual.

type produitModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	EAN         *string   `gorm:"column:ean;uniqueIndex"`
	Nom         string    `gorm:"column:nom;not null"`
	Marque      string    `gorm:"column:marque;not null"`
	Description string    `gorm:"column:description;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;autoUpdateTime:false"`
}

func (produitModel) TableName() string { return "produits" }

type emplacementModel struct {
	ID          string            `gorm:"column:id;primaryKey"`
	Code        string            `gorm:"column:code_emplacement;uniqueIndex;not null"`
	Nom         string            `gorm:"column:nom;not null"`
	ParentID    *string           `gorm:"column:parent_id;index"`
	Parent      *emplacementModel `gorm:"foreignKey:ParentID;references:ID;constraint:OnDelete:RESTRICT"`
	Niveau      int               `gorm:"column:niveau;index;not null"`
	Description string            `gorm:"column:description;not null"`
	CreatedAt   time.Time         `gorm:"column:created_at;not null;autoCreateTime:false"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;not null;autoUpdateTime:false"`
}

func (emplacementModel) TableName() string { return "emplacements" }

type articleModel struct {
	ID             string            `gorm:"column:id;primaryKey"`
	Code           string            `gorm:"column:code_article;uniqueIndex;not null"`
	ProduitID      string            `gorm:"column:produit_id;index;not null"`
	Produit        *produitModel     `gorm:"foreignKey:ProduitID;references:ID;constraint:OnDelete:RESTRICT"`
	EmplacementID  string            `gorm:"column:emplacement_id;index;not null"`
	Emplacement    *emplacementModel `gorm:"foreignKey:EmplacementID;references:ID;constraint:OnDelete:RESTRICT"`
	Quantite       int               `gorm:"column:quantite;not null"`
	DatePeremption *time.Time        `gorm:"column:date_peremption;index"`
	Commentaire    string            `gorm:"column:commentaire;not null"`
	CreatedAt      time.Time         `gorm:"column:created_at;not null;autoCreateTime:false"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;not null;autoUpdateTime:false"`
}

func (articleModel) TableName() string { return "articles" }

func newProduitModel(p *entity.Produit) *produitModel {
	return &produitModel{
		ID:          p.ID,
		EAN:         p.EAN,
		Nom:         p.Name,
		Marque:      p.Brand,
		Description: p.Description,
		CreatedAt:   p.CreatedAt.UTC(),
		UpdatedAt:   p.UpdatedAt.UTC(),
	}
}

func (m *produitModel) toEntity() *entity.Produit {
	return &entity.Produit{
		ID:          m.ID,
		EAN:         m.EAN,
		Name:        m.Nom,
		Brand:       m.Marque,
		Description: m.Description,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func newEmplacementModel(e *entity.Emplacement) *emplacementModel {
	return &emplacementModel{
		ID:          e.ID,
		Code:        e.Code,
		Nom:         e.Name,
		ParentID:    e.ParentID,
		Niveau:      e.Level,
		Description: e.Description,
		CreatedAt:   e.CreatedAt.UTC(),
		UpdatedAt:   e.UpdatedAt.UTC(),
	}
}

func (m *emplacementModel) toEntity() *entity.Emplacement {
	return &entity.Emplacement{
		ID:          m.ID,
		Code:        m.Code,
		Name:        m.Nom,
		ParentID:    m.ParentID,
		Level:       m.Niveau,
		Description: m.Description,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func newArticleModel(a *entity.Article) *articleModel {
	return &articleModel{
		ID:             a.ID,
		Code:           a.Code,
		ProduitID:      a.ProduitID,
		EmplacementID:  a.EmplacementID,
		Quantite:       a.Quantity,
		DatePeremption: utcPtr(a.ExpiresAt),
		Commentaire:    a.Comment,
		CreatedAt:      a.CreatedAt.UTC(),
		UpdatedAt:      a.UpdatedAt.UTC(),
	}
}

func (m *articleModel) toEntity() *entity.Article {
	return &entity.Article{
		ID:            m.ID,
		Code:          m.Code,
		ProduitID:     m.ProduitID,
		EmplacementID: m.EmplacementID,
		Quantity:      m.Quantite,
		ExpiresAt:     utcPtr(m.DatePeremption),
		Comment:       m.Commentaire,
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
