// Package casework es el orquestador de mutaciones: el único punto de entrada para crear,
// actualizar, archivar y eliminar beneficiarios, casos y servicios, y para leerlos/listarlos.
//
// Cada mutación recorre RECEIVED → AUTHORIZED → VALIDATED → PERSISTED → AUDITED; cualquier
// paso puede terminar en FAILED y corta los siguientes. PERSISTED y AUDITED se confirman en
// una sola transacción.
package casework

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Casos-api/internal/application/dto"
	"github.com/jhoicas/Casos-api/internal/application/validation"
	"github.com/jhoicas/Casos-api/internal/domain"
	"github.com/jhoicas/Casos-api/internal/domain/entity"
	"github.com/jhoicas/Casos-api/internal/domain/policy"
	"github.com/jhoicas/Casos-api/internal/domain/repository"
	"github.com/jhoicas/Casos-api/pkg/ids"
	"github.com/jhoicas/Casos-api/pkg/logger"
)

// Stage estado de una mutación en curso.
type Stage string

const (
	StageReceived   Stage = "RECEIVED"
	StageAuthorized Stage = "AUTHORIZED"
	StageValidated  Stage = "VALIDATED"
	StagePersisted  Stage = "PERSISTED"
	StageAudited    Stage = "AUDITED"
)

// Config parámetros de paginación.
type Config struct {
	DefaultLimit int
	MaxLimit     int
}

// Orchestrator coordina autorización, validación, persistencia y auditoría.
// No guarda estado mutable entre peticiones; es seguro para uso concurrente.
type Orchestrator struct {
	tx        TxRunner
	repos     repository.Repositories // lecturas fuera de transacción
	validator *validation.Engine
	log       *logger.Logger
	metrics   Metrics
	cfg       Config

	now        func() time.Time
	newID      func() string
	newAuditID func() string
}

// Option personaliza el orquestador (reloj e identificadores en pruebas).
type Option func(*Orchestrator)

// WithClock reemplaza el reloj.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithMetrics registra el resultado de cada operación.
func WithMetrics(m Metrics) Option {
	return func(o *Orchestrator) {
		if m != nil {
			o.metrics = m
		}
	}
}

// NewOrchestrator construye el orquestador inyectando el almacén explícitamente.
func NewOrchestrator(
	tx TxRunner,
	repos repository.Repositories,
	validator *validation.Engine,
	log *logger.Logger,
	cfg Config,
	opts ...Option,
) *Orchestrator {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 20
	}
	if cfg.MaxLimit < cfg.DefaultLimit {
		cfg.MaxLimit = 100
	}
	o := &Orchestrator{
		tx:         tx,
		repos:      repos,
		validator:  validator,
		log:        log.Component("casework"),
		metrics:    nopMetrics{},
		cfg:        cfg,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      func() string { return uuid.New().String() },
		newAuditID: ids.New,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// progress rastrea el estado alcanzado por una mutación (para registro de fallos).
type progress struct {
	stage Stage
}

func (p *progress) advance(s Stage) { p.stage = s }

// mutationFn ejecuta los pasos propios de la operación con repositorios transaccionales y
// devuelve el payload de auditoría de la mutación aceptada.
type mutationFn func(repos repository.Repositories, p *progress, now time.Time) (entity.AuditDetails, error)

// mutate aplica la capacidad a nivel de rol (sin tocar el almacén), abre la transacción,
// ejecuta fn y anexa la entrada de auditoría en la misma transacción.
func (o *Orchestrator) mutate(ctx context.Context, op string, actor *entity.Actor, action policy.Action, fn mutationFn) error {
	start := time.Now()
	p := &progress{stage: StageReceived}

	err := policy.Can(actor, action).Err()
	var details entity.AuditDetails
	if err == nil {
		err = o.tx.Run(ctx, func(repos repository.Repositories) error {
			now := o.now()
			d, err := fn(repos, p, now)
			if err != nil {
				return err
			}
			entry := entity.NewAuditLogEntry(o.newAuditID(), actor.UserID, d, now)
			if err := repos.AuditLog.Append(ctx, entry); err != nil {
				return fmt.Errorf("registrar auditoría: %w", err)
			}
			p.advance(StageAudited)
			details = d
			return nil
		})
	}
	err = o.finish(op, actor, p.stage, start, err)
	if err == nil {
		o.log.Info().
			Str("op", op).
			Str("action", string(details.Action())).
			Str("entity_id", details.EntityID()).
			Str("user_id", actor.UserID).
			Msg("mutación aplicada")
	}
	return err
}

// read registra métricas y clasifica errores de una operación de solo lectura.
func (o *Orchestrator) read(op string, actor *entity.Actor, start time.Time, err error) error {
	return o.finish(op, actor, "", start, err)
}

// finish clasifica el error: los tipos de dominio pasan sin modificar; cualquier otro se
// registra con su causa y se entrega como ErrInternal sin detalle.
func (o *Orchestrator) finish(op string, actor *entity.Actor, stage Stage, start time.Time, err error) error {
	kind := domain.KindOf(err)
	outcome := kind
	if err == nil {
		outcome = "ok"
	}
	o.metrics.ObserveOperation(op, outcome, time.Since(start))
	if err == nil {
		return nil
	}

	userID := ""
	if actor != nil {
		userID = actor.UserID
	}
	switch kind {
	case domain.KindInternal:
		o.log.Error().Err(err).Str("op", op).Str("stage", string(stage)).Str("user_id", userID).Msg("operación fallida")
		return domain.ErrInternal
	case domain.KindUnauthorized, domain.KindForbidden:
		o.log.Warn().Err(err).Str("op", op).Str("user_id", userID).Msg("operación denegada")
	default:
		o.log.Debug().Err(err).Str("op", op).Str("stage", string(stage)).Str("user_id", userID).Msg("operación rechazada")
	}
	return err
}

// authorizeTarget decide sobre la entidad ya cargada.
func authorizeTarget(actor *entity.Actor, action policy.Action, target policy.Owned, p *progress) error {
	if err := policy.Authorize(actor, action, target).Err(); err != nil {
		return err
	}
	p.advance(StageAuthorized)
	return nil
}

func notFound(what, id string) error {
	return fmt.Errorf("%w: %s %s", domain.ErrNotFound, what, id)
}

func (o *Orchestrator) page(p dto.PageRequest) repository.Page {
	p.Normalize(o.cfg.DefaultLimit, o.cfg.MaxLimit)
	return repository.Page{Page: p.Page, Limit: p.Limit}
}

// IsInternal indica si el error es el genérico interno (útil para herramientas CLI).
func IsInternal(err error) bool {
	return errors.Is(err, domain.ErrInternal)
}
