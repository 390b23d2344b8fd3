// Package memory implementa el almacén de entidades en memoria. Lo usan las pruebas del
// orquestador y el modo sin base de datos; respeta las mismas garantías que Postgres:
// unicidad de idNumber, cascada de servicios y transacciones con rollback.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/Casos-api/internal/domain/entity"
	"github.com/jhoicas/Casos-api/internal/domain/repository"
)

type locker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

// noLock se usa dentro de una transacción: el TxRunner ya tiene el candado exclusivo.
type noLock struct{}

func (noLock) Lock()    {}
func (noLock) Unlock()  {}
func (noLock) RLock()   {}
func (noLock) RUnlock() {}

type dataset struct {
	users         map[string]*entity.User
	beneficiaries map[string]*entity.Beneficiary
	cases         map[string]*entity.Case
	services      map[string]*entity.Service
	audit         []*entity.AuditLogEntry
}

func newDataset() *dataset {
	return &dataset{
		users:         map[string]*entity.User{},
		beneficiaries: map[string]*entity.Beneficiary{},
		cases:         map[string]*entity.Case{},
		services:      map[string]*entity.Service{},
	}
}

func (d *dataset) clone() *dataset {
	c := newDataset()
	for k, v := range d.users {
		u := *v
		c.users[k] = &u
	}
	for k, v := range d.beneficiaries {
		c.beneficiaries[k] = v.Clone()
	}
	for k, v := range d.cases {
		c.cases[k] = v.Clone()
	}
	for k, v := range d.services {
		c.services[k] = v.Clone()
	}
	// Las entradas de auditoría son inmutables: basta con copiar el slice.
	c.audit = append([]*entity.AuditLogEntry(nil), d.audit...)
	return c
}

// Store almacén en memoria seguro para uso concurrente.
type Store struct {
	mu   sync.RWMutex
	data *dataset
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{data: newDataset()}
}

// Repositories devuelve repositorios fuera de transacción (cada llamada toma el candado).
func (s *Store) Repositories() repository.Repositories {
	return s.repos(&s.mu)
}

func (s *Store) repos(l locker) repository.Repositories {
	return repository.Repositories{
		Users:         &userRepo{s: s, l: l},
		Beneficiaries: &beneficiaryRepo{s: s, l: l},
		Cases:         &caseRepo{s: s, l: l},
		Services:      &serviceRepo{s: s, l: l},
		AuditLog:      &auditLogRepo{s: s, l: l},
	}
}

// TxRunner serializa las transacciones con el candado exclusivo y restaura la instantánea
// previa si fn falla.
type TxRunner struct {
	s *Store
}

// NewTxRunner crea el ejecutor de transacciones del almacén.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn atómicamente.
func (t *TxRunner) Run(ctx context.Context, fn func(repos repository.Repositories) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	snapshot := t.s.data.clone()
	defer func() {
		if p := recover(); p != nil {
			t.s.data = snapshot
			panic(p)
		}
		if err != nil {
			t.s.data = snapshot
		}
	}()
	return fn(t.s.repos(noLock{}))
}

func inScope(scope repository.Scope, o entity.Ownership) bool {
	return scope.Unrestricted || o.Involves(scope.ActorID)
}

func paginate[T any](items []T, p repository.Page) []T {
	if p.Limit <= 0 {
		return items
	}
	off := p.Offset()
	if off >= len(items) {
		return []T{}
	}
	end := off + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[off:end]
}

// newestFirst ordena por fecha de creación descendente con el id como desempate estable.
func newestFirst[T any](items []T, key func(T) (int64, string)) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, ii := key(items[i])
		tj, ij := key(items[j])
		if ti != tj {
			return ti > tj
		}
		return ii > ij
	})
}
