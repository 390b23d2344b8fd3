package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Casos-api/internal/domain/repository"
	"github.com/jhoicas/Casos-api/pkg/textfold"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, "23505")
}

// isForeignKeyViolation verifica si un error es una violación de FK (23503).
func isForeignKeyViolation(err error) bool {
	return hasCode(err, "23503")
}

func hasCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return strings.Contains(err.Error(), code)
}

// where construye la cláusula WHERE con placeholders numerados.
type where struct {
	conds []string
	args  []any
}

// arg agrega un argumento y devuelve su placeholder.
func (w *where) arg(v any) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *where) add(cond string) {
	w.conds = append(w.conds, cond)
}

// eq agrega col = v solo si v no está vacío (filtro opcional).
func (w *where) eq(col, v string) {
	if v != "" {
		w.add(col + " = " + w.arg(v))
	}
}

// search filtra sobre la columna search_text, ya plegada al escribir.
func (w *where) search(col, q string) {
	q = textfold.Fold(strings.TrimSpace(q))
	if q == "" {
		return
	}
	w.add(col + " LIKE " + w.arg("%"+escapeLike(q)+"%") + ` ESCAPE '\'`)
}

// scope traduce el predicado de alcance. cond recibe el placeholder del actor y devuelve
// la condición "creador o asignado" propia de cada tabla.
func (w *where) scope(s repository.Scope, cond func(ph string) string) {
	switch {
	case s.Unrestricted:
	case s.ActorID == "":
		w.add("FALSE")
	default:
		w.add(cond(w.arg(s.ActorID)))
	}
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// limit devuelve LIMIT/OFFSET; Limit 0 significa sin límite.
func (w *where) limit(p repository.Page) string {
	if p.Limit <= 0 {
		return ""
	}
	return fmt.Sprintf(" LIMIT %s OFFSET %s", w.arg(p.Limit), w.arg(p.Offset()))
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func forUpdate(lock bool, clause string) string {
	if lock {
		return " " + clause
	}
	return ""
}
