package usecase

import (
	"context"
	"io"
	"time"

	"impacttrack/internal/entities"
)

// ProjectUsecaseInterface abstracts project operations for the delivery layer.
type ProjectUsecaseInterface interface {
	CreateProject(ctx context.Context, p entities.Project) (*entities.Project, error)
	Project(ctx context.Context, id string) (*entities.Project, error)
	Projects(ctx context.Context, filter entities.ProjectFilter) (entities.Page[entities.Project], error)
	UpdateProject(ctx context.Context, p entities.Project) (*entities.Project, error)
	DeleteProject(ctx context.Context, id string) error
}

// ClusterUsecaseInterface abstracts cluster and membership operations.
type ClusterUsecaseInterface interface {
	CreateCluster(ctx context.Context, c entities.Cluster) (*entities.Cluster, error)
	Cluster(ctx context.Context, id string) (*entities.Cluster, error)
	Clusters(ctx context.Context, filter entities.ClusterFilter) (entities.Page[entities.Cluster], error)
	UpdateCluster(ctx context.Context, c entities.Cluster) (*entities.Cluster, error)
	DeleteCluster(ctx context.Context, id string) error
	AddClusterMembers(ctx context.Context, clusterID string, orgIDs []string) (int, error)
	RemoveClusterMember(ctx context.Context, clusterID, orgID string) error
	ClusterMembers(ctx context.Context, clusterID string) ([]entities.ClusterMember, error)
}

// OrganizationUsecaseInterface abstracts organization operations.
type OrganizationUsecaseInterface interface {
	CreateOrganization(ctx context.Context, o entities.Organization) (*entities.Organization, error)
	Organization(ctx context.Context, id string) (*entities.Organization, error)
	Organizations(ctx context.Context, filter entities.OrganizationFilter) (entities.Page[entities.Organization], error)
	UpdateOrganization(ctx context.Context, o entities.Organization) (*entities.Organization, error)
	DeleteOrganization(ctx context.Context, id string) error
}

// ParticipantUsecaseInterface abstracts participant and skill operations.
type ParticipantUsecaseInterface interface {
	CreateParticipant(ctx context.Context, p entities.Participant) (*entities.Participant, error)
	Participant(ctx context.Context, id string) (*entities.Participant, error)
	Participants(ctx context.Context, filter entities.ParticipantFilter) (entities.Page[entities.Participant], error)
	UpdateParticipant(ctx context.Context, p entities.Participant) (*entities.Participant, error)
	DeleteParticipant(ctx context.Context, id string) error
	AddSkill(ctx context.Context, s entities.Skill) (*entities.Skill, error)
	ParticipantSkills(ctx context.Context, participantID string) ([]entities.Skill, error)
	DeleteSkill(ctx context.Context, participantID, skillID string) error
}

// ActivityUsecaseInterface abstracts activity, attendance and concept note operations.
type ActivityUsecaseInterface interface {
	CreateActivity(ctx context.Context, a entities.Activity) (*entities.Activity, error)
	Activity(ctx context.Context, id string) (*entities.Activity, error)
	Activities(ctx context.Context, filter entities.ActivityFilter) (entities.Page[entities.Activity], error)
	UpdateActivity(ctx context.Context, a entities.Activity) (*entities.Activity, error)
	DeleteActivity(ctx context.Context, id string) error

	RecordAttendance(ctx context.Context, activityID string, participantIDs []string, attended bool) (int, error)
	RemoveAttendance(ctx context.Context, activityID, participantID string) error
	ActivityAttendance(ctx context.Context, activityID string) ([]entities.AttendanceRecord, error)
	AttendanceAnalytics(ctx context.Context, activityID string) (entities.AttendanceAnalytics, error)

	SaveConceptNote(ctx context.Context, n entities.ConceptNote) (*entities.ConceptNote, error)
	ConceptNote(ctx context.Context, activityID string) (*entities.ConceptNote, error)
	DeleteConceptNote(ctx context.Context, activityID string) error
}

// VSLAUsecaseInterface abstracts savings group operations.
type VSLAUsecaseInterface interface {
	CreateVSLA(ctx context.Context, v entities.VSLA) (*entities.VSLA, error)
	VSLA(ctx context.Context, id string) (*entities.VSLA, error)
	VSLAs(ctx context.Context, filter entities.VSLAFilter) (entities.Page[entities.VSLA], error)
	UpdateVSLA(ctx context.Context, v entities.VSLA) (*entities.VSLA, error)
	DeleteVSLA(ctx context.Context, id string) error
}

// AnalyticsUsecaseInterface abstracts dashboard aggregates.
type AnalyticsUsecaseInterface interface {
	KPIOverview(ctx context.Context, now time.Time) (entities.KPIOverview, error)
	Dashboard(ctx context.Context, filter entities.DashboardFilter, now time.Time) (entities.Dashboard, error)
}

// TransferUsecaseInterface abstracts spreadsheet import and export.
type TransferUsecaseInterface interface {
	ImportParticipants(ctx context.Context, r io.Reader, opts entities.ImportOptions) (entities.ImportResult, error)
	ImportVSLAs(ctx context.Context, r io.Reader, opts entities.ImportOptions) (entities.ImportResult, error)
	ExportParticipants(ctx context.Context, w io.Writer, filter entities.ParticipantFilter) error
	ExportVSLAs(ctx context.Context, w io.Writer, filter entities.VSLAFilter) error
	ImportTemplate(kind entities.ImportKind) ([]byte, error)
}
