// Package repository contains repository interfaces for persistence layers.
package repository

import (
	"context"

	"impacttrack/internal/entities"
)

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// ProjectInterface exposes project operations.
type ProjectInterface interface {
	CreateProject(ctx context.Context, p entities.Project) (*entities.Project, error)
	GetProject(ctx context.Context, id string) (*entities.Project, error)
	ListProjects(ctx context.Context, filter entities.ProjectFilter) ([]entities.Project, int64, error)
	UpdateProject(ctx context.Context, p entities.Project) (*entities.Project, error)
	DeleteProject(ctx context.Context, id string) error
}

// ClusterInterface exposes cluster and membership operations.
type ClusterInterface interface {
	CreateCluster(ctx context.Context, c entities.Cluster) (*entities.Cluster, error)
	GetCluster(ctx context.Context, id string) (*entities.Cluster, error)
	ListClusters(ctx context.Context, filter entities.ClusterFilter) ([]entities.Cluster, int64, error)
	UpdateCluster(ctx context.Context, c entities.Cluster) (*entities.Cluster, error)
	DeleteCluster(ctx context.Context, id string) error
	AddClusterMembers(ctx context.Context, clusterID string, orgIDs []string) (int, error)
	RemoveClusterMember(ctx context.Context, clusterID, orgID string) error
	ListClusterMembers(ctx context.Context, clusterID string) ([]entities.ClusterMember, error)
}

// OrganizationInterface exposes organization operations.
type OrganizationInterface interface {
	CreateOrganization(ctx context.Context, o entities.Organization) (*entities.Organization, error)
	GetOrganization(ctx context.Context, id string) (*entities.Organization, error)
	ListOrganizations(ctx context.Context, filter entities.OrganizationFilter) ([]entities.Organization, int64, error)
	UpdateOrganization(ctx context.Context, o entities.Organization) (*entities.Organization, error)
	DeleteOrganization(ctx context.Context, id string) error
}

// ParticipantInterface exposes participant operations.
type ParticipantInterface interface {
	CreateParticipant(ctx context.Context, p entities.Participant) (*entities.Participant, error)
	GetParticipant(ctx context.Context, id string) (*entities.Participant, error)
	ListParticipants(ctx context.Context, filter entities.ParticipantFilter) ([]entities.Participant, int64, error)
	AllParticipants(ctx context.Context, filter entities.ParticipantFilter) ([]entities.Participant, error)
	UpdateParticipant(ctx context.Context, p entities.Participant) (*entities.Participant, error)
	DeleteParticipant(ctx context.Context, id string) error
}

// SkillInterface exposes participant skill operations.
type SkillInterface interface {
	CreateSkill(ctx context.Context, s entities.Skill) (*entities.Skill, error)
	ListSkills(ctx context.Context, participantID string) ([]entities.Skill, error)
	DeleteSkill(ctx context.Context, participantID, skillID string) error
}

// ActivityInterface exposes activity operations.
type ActivityInterface interface {
	CreateActivity(ctx context.Context, a entities.Activity) (*entities.Activity, error)
	GetActivity(ctx context.Context, id string) (*entities.Activity, error)
	ListActivities(ctx context.Context, filter entities.ActivityFilter) ([]entities.Activity, int64, error)
	UpdateActivity(ctx context.Context, a entities.Activity) (*entities.Activity, error)
	DeleteActivity(ctx context.Context, id string) error
}

// ConceptNoteInterface exposes the one-per-activity planning document.
type ConceptNoteInterface interface {
	UpsertConceptNote(ctx context.Context, n entities.ConceptNote) (*entities.ConceptNote, error)
	GetConceptNote(ctx context.Context, activityID string) (*entities.ConceptNote, error)
	DeleteConceptNote(ctx context.Context, activityID string) error
}

// AttendanceInterface exposes activity register operations.
type AttendanceInterface interface {
	RecordAttendance(ctx context.Context, activityID string, participantIDs []string, attended bool) (int, error)
	RemoveAttendance(ctx context.Context, activityID, participantID string) error
	ListAttendance(ctx context.Context, activityID string) ([]entities.AttendanceRecord, error)
}

// VSLAInterface exposes savings group operations.
type VSLAInterface interface {
	CreateVSLA(ctx context.Context, v entities.VSLA) (*entities.VSLA, error)
	GetVSLA(ctx context.Context, id string) (*entities.VSLA, error)
	ListVSLAs(ctx context.Context, filter entities.VSLAFilter) ([]entities.VSLA, int64, error)
	AllVSLAs(ctx context.Context, filter entities.VSLAFilter) ([]entities.VSLA, error)
	UpdateVSLA(ctx context.Context, v entities.VSLA) (*entities.VSLA, error)
	DeleteVSLA(ctx context.Context, id string) error
	VSLATotals(ctx context.Context, filter entities.VSLAFilter) (entities.VSLATotals, error)
}

// AnalyticsInterface exposes aggregate queries behind dashboards.
type AnalyticsInterface interface {
	KPICounts(ctx context.Context, window entities.Window) (entities.KPICounts, error)
	ParticipantDemographics(ctx context.Context, filter entities.DashboardFilter) (entities.DemographicRows, int64, error)
	ActivityStatusCounts(ctx context.Context, filter entities.DashboardFilter) ([]entities.CountRow, error)
	MonthlyTrend(ctx context.Context, filter entities.DashboardFilter, since entities.Window) ([]entities.TrendPoint, error)
}
