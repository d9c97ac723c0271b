package postgres

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"impacttrack/internal/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
	invalidTextRepr     = "22P02"

	likeEscape = ` ESCAPE '\'`
)

var likeReplacer = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func escapeLike(s string) string {
	return likeReplacer.Replace(s)
}

// where accumulates AND-ed conditions with positional arguments.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(w.args))))
}

// search adds an ILIKE match of one term against any of the columns.
func (w *where) search(term string, columns ...string) {
	if term == "" || len(columns) == 0 {
		return
	}
	w.args = append(w.args, "%"+escapeLike(term)+"%")
	ph := "$" + strconv.Itoa(len(w.args))
	parts := make([]string, 0, len(columns))
	for _, c := range columns {
		parts = append(parts, c+" ILIKE "+ph+likeEscape)
	}
	w.conds = append(w.conds, "("+strings.Join(parts, " OR ")+")")
}

// like adds a case-insensitive match of column against value taken literally.
func (w *where) like(column, value string) {
	if value != "" {
		w.add(column+" ILIKE ?"+likeEscape, escapeLike(value))
	}
}

func (w *where) addIf(ok bool, cond string, arg any) {
	if ok {
		w.add(cond, arg)
	}
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page appends LIMIT/OFFSET placeholders and returns the final args.
func (w *where) page(req entities.PageRequest) (string, []any) {
	req = req.Normalize()
	args := append(append([]any{}, w.args...), req.Limit, req.Offset())
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)), args
}

// mapWriteError converts constraint violations into domain errors.
func mapWriteError(err error, exists error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			if exists != nil {
				return exists
			}
		case foreignKeyViolation:
			return fmt.Errorf("%w: unknown reference (%s)", entities.ErrInvalidArgument, pgErr.ConstraintName)
		case checkViolation:
			return fmt.Errorf("%w: constraint %s violated", entities.ErrInvalidArgument, pgErr.ConstraintName)
		case invalidTextRepr:
			return fmt.Errorf("%w: malformed identifier", entities.ErrInvalidArgument)
		}
	}
	return err
}

// mapReadError converts missing rows and malformed ids into notFound.
func mapReadError(err error, notFound error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == invalidTextRepr {
		return notFound
	}
	return err
}

func nullable(s *string) any {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return *s
}

func nullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

// mapUpdateError handles the RETURNING-row update path where a missing row and
// a constraint violation are both possible.
func mapUpdateError(err error, notFound, exists error) error {
	if mapped := mapReadError(err, notFound); mapped == notFound {
		return notFound
	}
	return mapWriteError(err, exists)
}

func isForeignKey(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}
