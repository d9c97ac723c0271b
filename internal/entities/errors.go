// Package entities contains core business entities and errors.
package entities

import "errors"

var (
	// ErrInvalidArgument signals failed input validation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnauthorized signals a missing or invalid bearer token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden signals a role that may not perform the action.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is the parent of every not-found error.
	ErrNotFound = errors.New("not found")
	// ErrProjectNotFound signals missing project.
	ErrProjectNotFound = wrapKind(ErrNotFound, "project")
	// ErrClusterNotFound signals missing cluster.
	ErrClusterNotFound = wrapKind(ErrNotFound, "cluster")
	// ErrOrganizationNotFound signals missing organization.
	ErrOrganizationNotFound = wrapKind(ErrNotFound, "organization")
	// ErrParticipantNotFound signals missing participant.
	ErrParticipantNotFound = wrapKind(ErrNotFound, "participant")
	// ErrSkillNotFound signals missing skill record.
	ErrSkillNotFound = wrapKind(ErrNotFound, "skill")
	// ErrActivityNotFound signals missing activity.
	ErrActivityNotFound = wrapKind(ErrNotFound, "activity")
	// ErrAttendanceNotFound signals a participant not on the activity register.
	ErrAttendanceNotFound = wrapKind(ErrNotFound, "attendance")
	// ErrConceptNoteNotFound signals an activity without a concept note.
	ErrConceptNoteNotFound = wrapKind(ErrNotFound, "concept note")
	// ErrVSLANotFound signals missing VSLA.
	ErrVSLANotFound = wrapKind(ErrNotFound, "vsla")
	// ErrMemberNotFound signals an organization outside the cluster.
	ErrMemberNotFound = wrapKind(ErrNotFound, "cluster member")

	// ErrAlreadyExists is the parent of every uniqueness conflict.
	ErrAlreadyExists = errors.New("already exists")
	// ErrProjectExists signals project name conflict.
	ErrProjectExists = wrapKind(ErrAlreadyExists, "project")
	// ErrClusterExists signals cluster name conflict.
	ErrClusterExists = wrapKind(ErrAlreadyExists, "cluster")
	// ErrOrganizationExists signals organization acronym conflict.
	ErrOrganizationExists = wrapKind(ErrAlreadyExists, "organization")
	// ErrParticipantExists signals a duplicate participant in one organization.
	ErrParticipantExists = wrapKind(ErrAlreadyExists, "participant")
	// ErrVSLAExists signals VSLA code conflict.
	ErrVSLAExists = wrapKind(ErrAlreadyExists, "vsla")

	// ErrInUse signals a delete blocked by records that still reference the row.
	ErrInUse = errors.New("record is still referenced")

	// ErrImportMissingColumns signals a sheet without required headers.
	ErrImportMissingColumns = errors.New("missing required columns")
	// ErrImportTooLarge signals a file above configured limits.
	ErrImportTooLarge = errors.New("import too large")
	// ErrImportEmpty signals a sheet with no data rows.
	ErrImportEmpty = errors.New("import file has no data rows")
)

type kindError struct {
	parent error
	kind   string
}

func (e *kindError) Error() string { return e.kind + " " + e.parent.Error() }

func (e *kindError) Unwrap() error { return e.parent }

func wrapKind(parent error, kind string) error {
	return &kindError{parent: parent, kind: kind}
}
