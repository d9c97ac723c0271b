package domain

import (
	"context"
	"errors"
	"io"
	"slices"
	"strings"

	"impacttrack/internal/entities"
	"impacttrack/internal/importer"
	"impacttrack/internal/observability"
)

// ImportParticipants reads a participant register and inserts every valid row.
// Rows that fail parsing, validation or insertion are skipped and reported.
func (u *Usecase) ImportParticipants(ctx context.Context, r io.Reader, opts entities.ImportOptions) (entities.ImportResult, error) {
	rows, err := u.readSheet(entities.ImportParticipants, r, opts)
	if err != nil {
		return entities.ImportResult{}, err
	}
	batch := importer.ParseParticipants(rows, opts.Defaults)
	return storeBatch(ctx, u, entities.ImportParticipants, batch, func(ctx context.Context, p entities.Participant) error {
		p, err := normalizeParticipant(p)
		if err != nil {
			return err
		}
		p.ID = assignID(p.ID)
		_, err = u.repo.CreateParticipant(ctx, p)
		return err
	})
}

// ImportVSLAs reads a savings group register and inserts every valid row.
func (u *Usecase) ImportVSLAs(ctx context.Context, r io.Reader, opts entities.ImportOptions) (entities.ImportResult, error) {
	rows, err := u.readSheet(entities.ImportVSLAs, r, opts)
	if err != nil {
		return entities.ImportResult{}, err
	}
	batch := importer.ParseVSLAs(rows, opts.Defaults)
	return storeBatch(ctx, u, entities.ImportVSLAs, batch, func(ctx context.Context, v entities.VSLA) error {
		v, err := normalizeVSLA(v)
		if err != nil {
			return err
		}
		v.ID = assignID(v.ID)
		_, err = u.repo.CreateVSLA(ctx, v)
		return err
	})
}

// readSheet rejects whole files: oversize uploads, unreadable workbooks and
// sheets missing required columns never reach row processing.
func (u *Usecase) readSheet(kind entities.ImportKind, r io.Reader, opts entities.ImportOptions) ([][]string, error) {
	err := firstErr(
		checkOptionalID("organization_id", &opts.Defaults.OrganizationID),
		checkOptionalID("project_id", &opts.Defaults.ProjectID),
		checkOptionalID("cluster_id", &opts.Defaults.ClusterID),
	)
	if err != nil {
		return nil, err
	}

	rows, err := u.limits.Read(r, opts.Sheet)
	if err != nil {
		u.log.Warnw("import rejected", "kind", kind, "error", err)
		return nil, err
	}
	if _, err := importer.MapHeader(kind, rows[0]); err != nil {
		u.log.Warnw("import rejected", "kind", kind, "error", err)
		return nil, err
	}
	return rows, nil
}

// storeBatch inserts parsed items one by one, each under its own timeout, so
// one bad row cannot sink the rest of the sheet.
func storeBatch[T any](
	ctx context.Context,
	u *Usecase,
	kind entities.ImportKind,
	batch importer.Batch[T],
	insert func(context.Context, T) error,
) (entities.ImportResult, error) {
	res := entities.ImportResult{
		Kind:   kind,
		Total:  len(batch.Items) + len(batch.Errors),
		Errors: append(make([]entities.RowError, 0, len(batch.Errors)), batch.Errors...),
	}

	var stopped error
	for i, item := range batch.Items {
		if stopped = ctx.Err(); stopped != nil {
			break
		}
		rowCtx, cancel := withTimeout(ctx, u.timeout)
		err := insert(rowCtx, item)
		cancel()
		if err != nil {
			res.Errors = append(res.Errors, rowFailure(batch.Lines[i], err))
			continue
		}
		res.Imported++
	}

	res.Skipped = res.Total - res.Imported
	slices.SortStableFunc(res.Errors, func(a, b entities.RowError) int { return a.Row - b.Row })
	observability.RecordImport(res)
	if stopped != nil {
		u.log.Warnw("import interrupted", "kind", kind, "total", res.Total, "imported", res.Imported, "error", stopped)
		return res, stopped
	}
	u.log.Infow("import finished", "kind", kind, "total", res.Total, "imported", res.Imported, "skipped", res.Skipped)
	return res, nil
}

func rowFailure(line int, err error) entities.RowError {
	msg := err.Error()
	if errors.Is(err, entities.ErrInvalidArgument) {
		msg = strings.TrimPrefix(msg, entities.ErrInvalidArgument.Error()+": ")
	}
	return entities.RowError{Row: line, Message: msg}
}

// ExportParticipants writes every participant matching filter as a workbook
// that ImportParticipants accepts back.
func (u *Usecase) ExportParticipants(ctx context.Context, w io.Writer, filter entities.ParticipantFilter) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := checkParticipantFilter(filter); err != nil {
		return err
	}
	items, err := u.repo.AllParticipants(ctx, filter)
	if err != nil {
		return err
	}
	return importer.WriteParticipants(w, items)
}

// ExportVSLAs writes every savings group matching filter as a workbook.
func (u *Usecase) ExportVSLAs(ctx context.Context, w io.Writer, filter entities.VSLAFilter) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := checkVSLAFilter(filter); err != nil {
		return err
	}
	items, err := u.repo.AllVSLAs(ctx, filter)
	if err != nil {
		return err
	}
	return importer.WriteVSLAs(w, items)
}

// ImportTemplate returns an empty workbook carrying the headers for kind.
func (u *Usecase) ImportTemplate(kind entities.ImportKind) ([]byte, error) {
	return importer.Template(kind)
}
