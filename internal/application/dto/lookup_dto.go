package dto

// LookupResult ficha de producto obtenida de un proveedor externo por EAN.
type LookupResult struct {
	Source      string `json:"source"`
	Name        string `json:"nom"`
	Brand       string `json:"marque"`
	Description string `json:"description"`
}
