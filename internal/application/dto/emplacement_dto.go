package dto

import (
	"encoding/json"
	"time"
)

// CreateEmplacementRequest entrada para crear un emplacement. El nivel no se acepta: se calcula.
type CreateEmplacementRequest struct {
	Code        string  `json:"code_emplacement"`
	Name        string  `json:"nom"`
	ParentID    *string `json:"parent_id"`
	Description string  `json:"description"`
}

// UpdateEmplacementRequest entrada parcial.
// parent_id: ausente = sin cambio; null o "" = el nodo pasa a ser raíz.
type UpdateEmplacementRequest struct {
	Code        *string    `json:"code_emplacement"`
	Name        *string    `json:"nom"`
	ParentID    OptionalID `json:"parent_id"`
	Description *string    `json:"description"`
}

// OptionalID distingue un campo ausente del parche (Set=false) de un null explícito (Set=true, Value=nil).
type OptionalID struct {
	Set   bool
	Value *string
}

// SetID parche que asigna id.
func SetID(id string) OptionalID { return OptionalID{Set: true, Value: &id} }

// ClearID parche que borra la referencia.
func ClearID() OptionalID { return OptionalID{Set: true} }

// UnmarshalJSON solo se invoca si la clave está en el cuerpo, null incluido.
func (o *OptionalID) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var id string
	if err := json.Unmarshal(b, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}

// EmplacementResponse salida de un emplacement.
type EmplacementResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code_emplacement"`
	Name        string    `json:"nom"`
	ParentID    *string   `json:"parent_id"`
	Level       int       `json:"niveau"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EmplacementListResponse lista paginada de emplacements.
type EmplacementListResponse struct {
	Items []EmplacementResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// EmplacementTree nodo con sus hijos directos, recursivamente.
type EmplacementTree struct {
	EmplacementResponse
	Children []*EmplacementTree `json:"enfants"`
}
