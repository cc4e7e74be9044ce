package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxBody límite de lectura de respuestas de proveedores.
const maxBody = 1 << 20

// getJSON hace GET y decodifica el cuerpo en out. found=false si el proveedor responde 404.
func getJSON(ctx context.Context, client *http.Client, provider, url string, out any) (found bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("%s: crear HTTP request: %w", provider, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "ddb-stock/1.0")

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return false, fmt.Errorf("%s: timeout o cancelación: %w", provider, ctx.Err())
		}
		return false, fmt.Errorf("%s: llamada HTTP fallida: %w", provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("%s: HTTP %d", provider, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return false, fmt.Errorf("%s: leer respuesta: %w", provider, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("%s: deserializar respuesta: %w", provider, err)
	}
	return true, nil
}
