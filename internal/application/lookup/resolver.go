package lookup

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/ddb-stock/internal/application/dto"
	"github.com/jhoicas/ddb-stock/internal/application/ports"
	"github.com/jhoicas/ddb-stock/internal/domain"
	"github.com/jhoicas/ddb-stock/pkg/logger"
)

var tracer = otel.Tracer("ddb-stock/lookup")

// DefaultTimeout presupuesto por proveedor cuando no se configura otro.
const DefaultTimeout = 5 * time.Second

// Resolver consulta los proveedores en orden y devuelve el primer resultado utilizable.
// Los fallos de un proveedor (timeout, red, respuesta inválida) se registran y se pasa al siguiente.
type Resolver struct {
	providers []ports.ProductLookup
	timeout   time.Duration
	log       *logger.Logger
}

// NewResolver construye el resolvedor. timeout <= 0 usa DefaultTimeout; log nil descarta los logs.
func NewResolver(timeout time.Duration, log *logger.Logger, providers ...ports.ProductLookup) *Resolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Resolver{providers: providers, timeout: timeout, log: log}
}

// Resolve busca el EAN en la cadena de proveedores.
// No escribe nada en el almacén. Sin resultado devuelve ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, ean string) (*dto.LookupResult, error) {
	ean = strings.TrimSpace(ean)
	if ean == "" {
		return nil, fmt.Errorf("%w: ean es requerido", domain.ErrInvalidInput)
	}

	for _, p := range r.providers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := r.try(ctx, p, ean)
		if err != nil {
			r.log.Warn().Err(err).Str("provider", p.Name()).Str("ean", ean).Msg("lookup: proveedor falló")
			continue
		}
		if res == nil {
			r.log.Debug().Str("provider", p.Name()).Str("ean", ean).Msg("lookup: sin resultado")
			continue
		}
		res.Source = p.Name()
		r.log.Info().Str("provider", p.Name()).Str("ean", ean).Msg("lookup: resuelto")
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: ningún proveedor conoce el ean %s", domain.ErrNotFound, ean)
}

func (r *Resolver) try(ctx context.Context, p ports.ProductLookup, ean string) (*dto.LookupResult, error) {
	ctx, span := tracer.Start(ctx, "lookup."+p.Name(),
		trace.WithAttributes(
			attribute.String("lookup.provider", p.Name()),
			attribute.String("lookup.ean", ean),
		))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := p.Lookup(ctx, ean)
	if err == nil && ctx.Err() != nil {
		// respuesta llegada después del plazo: se descarta
		err = ctx.Err()
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			span.SetAttributes(attribute.Bool("lookup.timeout", true))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if res == nil || strings.TrimSpace(res.Name) == "" {
		return nil, nil
	}
	return res, nil
}
