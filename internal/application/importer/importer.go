// Package importer carga beneficiarios desde CSV pasando cada fila por el orquestador,
// de modo que la importación respeta la misma autorización, validación y auditoría que la API.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Casos-api/internal/application/dto"
	"github.com/jhoicas/Casos-api/internal/domain"
	"github.com/jhoicas/Casos-api/internal/domain/entity"
)

// Codificaciones aceptadas para el archivo de entrada.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "iso-8859-1"
)

const dateLayout = "2006-01-02"

// BeneficiaryCreator puerto de creación (lo implementa casework.Orchestrator).
type BeneficiaryCreator interface {
	CreateBeneficiary(ctx context.Context, actor *entity.Actor, in *dto.CreateBeneficiaryRequest) (*dto.BeneficiaryResponse, error)
}

// Row fila ya decodificada, con su número de línea en el archivo.
type Row struct {
	Line    int
	Request dto.CreateBeneficiaryRequest
	Err     error // error de formato detectado al leer
}

// Outcome resultado de importar una fila.
type Outcome struct {
	Line int
	ID   string
	Err  error
}

// Report resumen de la importación.
type Report struct {
	Outcomes []Outcome
	Created  int
	Failed   int
}

// Reader decodifica el archivo según la codificación indicada.
func Reader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", EncodingUTF8, "utf8":
		return r, nil
	case EncodingLatin1, "latin1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("codificación no soportada: %q", encoding)
	}
}

// Parse lee el CSV. La primera fila es la cabecera; las columnas se identifican por nombre
// (firstName, lastName, category...) sin importar mayúsculas ni el orden.
func Parse(r io.Reader, sep rune) ([]Row, error) {
	cr := csv.NewReader(r)
	if sep != 0 {
		cr.Comma = sep
	}
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("archivo vacío")
		}
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, required := range []string{"firstname", "lastname", "category"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("falta la columna %q", required)
		}
	}

	var rows []Row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rows, fmt.Errorf("línea %d: %w", line, err)
		}
		if blank(rec) {
			continue
		}
		rows = append(rows, toRow(line, cols, rec))
	}
	return rows, nil
}

func toRow(line int, cols map[string]int, rec []string) Row {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	row := Row{Line: line}
	req := dto.CreateBeneficiaryRequest{
		FirstName:    get("firstname"),
		LastName:     get("lastname"),
		Gender:       get("gender"),
		Nationality:  get("nationality"),
		Phone:        get("phone"),
		Email:        get("email"),
		Category:     get("category"),
		Status:       get("status"),
		Priority:     get("priority"),
		Notes:        get("notes"),
		AssignedToID: get("assignedtoid"),
	}
	if v := get("idnumber"); v != "" {
		req.IDNumber = &v
	}
	if v := get("tags"); v != "" {
		req.Tags = strings.Split(v, ";")
	}
	if v := get("dateofbirth"); v != "" {
		d, err := time.Parse(dateLayout, v)
		if err != nil {
			row.Err = domain.NewValidationError(domain.FieldError{Field: "dateOfBirth", Message: "debe tener formato YYYY-MM-DD"})
		} else {
			req.DateOfBirth = &d
		}
	}
	row.Request = req
	return row
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// Importer crea cada fila por separado: una fila inválida no detiene las demás.
type Importer struct {
	creator BeneficiaryCreator
}

// New construye el importador.
func New(creator BeneficiaryCreator) *Importer {
	return &Importer{creator: creator}
}

// Run importa las filas como el actor indicado. Solo aborta ante errores que afectarían a
// todas las filas (actor sin permiso o fallo interno) o cancelación del contexto.
func (im *Importer) Run(ctx context.Context, actor *entity.Actor, rows []Row) (*Report, error) {
	rep := &Report{Outcomes: make([]Outcome, 0, len(rows))}
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		out := Outcome{Line: row.Line, Err: row.Err}
		if out.Err == nil {
			req := row.Request
			created, err := im.creator.CreateBeneficiary(ctx, actor, &req)
			switch domain.KindOf(err) {
			case "":
				out.ID = created.ID
			case domain.KindValidation, domain.KindConflict, domain.KindNotFound:
				out.Err = err
			default:
				rep.add(Outcome{Line: row.Line, Err: err})
				return rep, fmt.Errorf("línea %d: %w", row.Line, err)
			}
		}
		rep.add(out)
	}
	return rep, nil
}

func (r *Report) add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	if o.Err != nil {
		r.Failed++
		return
	}
	r.Created++
}
