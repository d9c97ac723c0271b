package domain

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"impacttrack/internal/analytics"
	"impacttrack/internal/entities"
	"impacttrack/internal/importer"
	"impacttrack/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type repoMock struct{ mock.Mock }

var _ repository.Repository = (*repoMock)(nil)

// ret returns the i-th mocked value, or the zero value when it was set to nil.
func ret[T any](args mock.Arguments, i int) T {
	v, _ := args.Get(i).(T)
	return v
}

func (m *repoMock) OnStart(_ context.Context) error { return nil }
func (m *repoMock) OnStop(_ context.Context) error  { return nil }

func (m *repoMock) CreateProject(ctx context.Context, p entities.Project) (*entities.Project, error) {
	args := m.Called(ctx, p)
	return ret[*entities.Project](args, 0), args.Error(1)
}

func (m *repoMock) GetProject(ctx context.Context, id string) (*entities.Project, error) {
	args := m.Called(ctx, id)
	return ret[*entities.Project](args, 0), args.Error(1)
}

func (m *repoMock) ListProjects(ctx context.Context, filter entities.ProjectFilter) ([]entities.Project, int64, error) {
	args := m.Called(ctx, filter)
	return ret[[]entities.Project](args, 0), ret[int64](args, 1), args.Error(2)
}

func (m *repoMock) UpdateProject(ctx context.Context, p entities.Project) (*entities.Project, error) {
	args := m.Called(ctx, p)
	return ret[*entities.Project](args, 0), args.Error(1)
}

func (m *repoMock) DeleteProject(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *repoMock) CreateCluster(ctx context.Context, c entities.Cluster) (*entities.Cluster, error) {
	args := m.Called(ctx, c)
	return ret[*entities.Cluster](args, 0), args.Error(1)
}

func (m *repoMock) GetCluster(ctx context.Context, id string) (*entities.Cluster, error) {
	args := m.Called(ctx, id)
	return ret[*entities.Cluster](args, 0), args.Error(1)
}

func (m *repoMock) ListClusters(ctx context.Context, filter entities.ClusterFilter) ([]entities.Cluster, int64, error) {
	args := m.Called(ctx, filter)
	return ret[[]entities.Cluster](args, 0), ret[int64](args, 1), args.Error(2)
}

func (m *repoMock) UpdateCluster(ctx context.Context, c entities.Cluster) (*entities.Cluster, error) {
	args := m.Called(ctx, c)
	return ret[*entities.Cluster](args, 0), args.Error(1)
}

func (m *repoMock) DeleteCluster(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *repoMock) AddClusterMembers(ctx context.Context, clusterID string, orgIDs []string) (int, error) {
	args := m.Called(ctx, clusterID, orgIDs)
	return args.Int(0), args.Error(1)
}

func (m *repoMock) RemoveClusterMember(ctx context.Context, clusterID, orgID string) error {
	return m.Called(ctx, clusterID, orgID).Error(0)
}

func (m *repoMock) ListClusterMembers(ctx context.Context, clusterID string) ([]entities.ClusterMember, error) {
	args := m.Called(ctx, clusterID)
	return ret[[]entities.ClusterMember](args, 0), args.Error(1)
}

func (m *repoMock) CreateOrganization(ctx context.Context, o entities.Organization) (*entities.Organization, error) {
	args := m.Called(ctx, o)
	return ret[*entities.Organization](args, 0), args.Error(1)
}

func (m *repoMock) GetOrganization(ctx context.Context, id string) (*entities.Organization, error) {
	args := m.Called(ctx, id)
	return ret[*entities.Organization](args, 0), args.Error(1)
}

func (m *repoMock) ListOrganizations(ctx context.Context, filter entities.OrganizationFilter) ([]entities.Organization, int64, error) {
	args := m.Called(ctx, filter)
	return ret[[]entities.Organization](args, 0), ret[int64](args, 1), args.Error(2)
}

func (m *repoMock) UpdateOrganization(ctx context.Context, o entities.Organization) (*entities.Organization, error) {
	args := m.Called(ctx, o)
	return ret[*entities.Organization](args, 0), args.Error(1)
}

func (m *repoMock) DeleteOrganization(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *repoMock) CreateParticipant(ctx context.Context, p entities.Participant) (*entities.Participant, error) {
	args := m.Called(ctx, p)
	return ret[*entities.Participant](args, 0), args.Error(1)
}

func (m *repoMock) GetParticipant(ctx context.Context, id string) (*entities.Participant, error) {
	args := m.Called(ctx, id)
	return ret[*entities.Participant](args, 0), args.Error(1)
}

func (m *repoMock) ListParticipants(ctx context.Context, filter entities.ParticipantFilter) ([]entities.Participant, int64, error) {
	args := m.Called(ctx, filter)
	return ret[[]entities.Participant](args, 0), ret[int64](args, 1), args.Error(2)
}

func (m *repoMock) AllParticipants(ctx context.Context, filter entities.ParticipantFilter) ([]entities.Participant, error) {
	args := m.Called(ctx, filter)
	return ret[[]entities.Participant](args, 0), args.Error(1)
}

func (m *repoMock) UpdateParticipant(ctx context.Context, p entities.Participant) (*entities.Participant, error) {
	args := m.Called(ctx, p)
	return ret[*entities.Participant](args, 0), args.Error(1)
}

func (m *repoMock) DeleteParticipant(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *repoMock) CreateSkill(ctx context.Context, s entities.Skill) (*entities.Skill, error) {
	args := m.Called(ctx, s)
	return ret[*entities.Skill](args, 0), args.Error(1)
}

func (m *repoMock) ListSkills(ctx context.Context, participantID string) ([]entities.Skill, error) {
	args := m.Called(ctx, participantID)
	return ret[[]entities.Skill](args, 0), args.Error(1)
}

func (m *repoMock) DeleteSkill(ctx context.Context, participantID, skillID string) error {
	return m.Called(ctx, participantID, skillID).Error(0)
}

func (m *repoMock) CreateActivity(ctx context.Context, a entities.Activity) (*entities.Activity, error) {
	args := m.Called(ctx, a)
	return ret[*entities.Activity](args, 0), args.Error(1)
}

func (m *repoMock) GetActivity(ctx context.Context, id string) (*entities.Activity, error) {
	args := m.Called(ctx, id)
	return ret[*entities.Activity](args, 0), args.Error(1)
}

func (m *repoMock) ListActivities(ctx context.Context, filter entities.ActivityFilter) ([]entities.Activity, int64, error) {
	args := m.Called(ctx, filter)
	return ret[[]entities.Activity](args, 0), ret[int64](args, 1), args.Error(2)
}

func (m *repoMock) UpdateActivity(ctx context.Context, a entities.Activity) (*entities.Activity, error) {
	args := m.Called(ctx, a)
	return ret[*entities.Activity](args, 0), args.Error(1)
}

func (m *repoMock) DeleteActivity(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *repoMock) UpsertConceptNote(ctx context.Context, n entities.ConceptNote) (*entities.ConceptNote, error) {
	args := m.Called(ctx, n)
	return ret[*entities.ConceptNote](args, 0), args.Error(1)
}

func (m *repoMock) GetConceptNote(ctx context.Context, activityID string) (*entities.ConceptNote, error) {
	args := m.Called(ctx, activityID)
	return ret[*entities.ConceptNote](args, 0), args.Error(1)
}

func (m *repoMock) DeleteConceptNote(ctx context.Context, activityID string) error {
	return m.Called(ctx, activityID).Error(0)
}

func (m *repoMock) RecordAttendance(ctx context.Context, activityID string, participantIDs []string, attended bool) (int, error) {
	args := m.Called(ctx, activityID, participantIDs, attended)
	return args.Int(0), args.Error(1)
}

func (m *repoMock) RemoveAttendance(ctx context.Context, activityID, participantID string) error {
	return m.Called(ctx, activityID, participantID).Error(0)
}

func (m *repoMock) ListAttendance(ctx context.Context, activityID string) ([]entities.AttendanceRecord, error) {
	args := m.Called(ctx, activityID)
	return ret[[]entities.AttendanceRecord](args, 0), args.Error(1)
}

func (m *repoMock) CreateVSLA(ctx context.Context, v entities.VSLA) (*entities.VSLA, error) {
	args := m.Called(ctx, v)
	return ret[*entities.VSLA](args, 0), args.Error(1)
}

func (m *repoMock) GetVSLA(ctx context.Context, id string) (*entities.VSLA, error) {
	args := m.Called(ctx, id)
	return ret[*entities.VSLA](args, 0), args.Error(1)
}

func (m *repoMock) ListVSLAs(ctx context.Context, filter entities.VSLAFilter) ([]entities.VSLA, int64, error) {
	args := m.Called(ctx, filter)
	return ret[[]entities.VSLA](args, 0), ret[int64](args, 1), args.Error(2)
}

func (m *repoMock) AllVSLAs(ctx context.Context, filter entities.VSLAFilter) ([]entities.VSLA, error) {
	args := m.Called(ctx, filter)
	return ret[[]entities.VSLA](args, 0), args.Error(1)
}

func (m *repoMock) UpdateVSLA(ctx context.Context, v entities.VSLA) (*entities.VSLA, error) {
	args := m.Called(ctx, v)
	return ret[*entities.VSLA](args, 0), args.Error(1)
}

func (m *repoMock) DeleteVSLA(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *repoMock) VSLATotals(ctx context.Context, filter entities.VSLAFilter) (entities.VSLATotals, error) {
	args := m.Called(ctx, filter)
	return ret[entities.VSLATotals](args, 0), args.Error(1)
}

func (m *repoMock) KPICounts(ctx context.Context, window entities.Window) (entities.KPICounts, error) {
	args := m.Called(ctx, window)
	return ret[entities.KPICounts](args, 0), args.Error(1)
}

func (m *repoMock) ParticipantDemographics(ctx context.Context, filter entities.DashboardFilter) (entities.DemographicRows, int64, error) {
	args := m.Called(ctx, filter)
	return ret[entities.DemographicRows](args, 0), ret[int64](args, 1), args.Error(2)
}

func (m *repoMock) ActivityStatusCounts(ctx context.Context, filter entities.DashboardFilter) ([]entities.CountRow, error) {
	args := m.Called(ctx, filter)
	return ret[[]entities.CountRow](args, 0), args.Error(1)
}

func (m *repoMock) MonthlyTrend(ctx context.Context, filter entities.DashboardFilter, since entities.Window) ([]entities.TrendPoint, error) {
	args := m.Called(ctx, filter, since)
	return ret[[]entities.TrendPoint](args, 0), args.Error(1)
}

func newUsecase(repo *repoMock) *Usecase {
	return New(zap.NewNop().Sugar(), context.Background(), repo, time.Second)
}

func validParticipant() entities.Participant {
	return entities.Participant{
		FirstName:      " Amina ",
		LastName:       "Nakato",
		Gender:         entities.GenderFemale,
		Age:            24,
		OrganizationID: uuid.NewString(),
		ProjectID:      uuid.NewString(),
	}
}

func TestUsecase_CreateParticipantValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *entities.Participant)
	}{
		{"missing first name", func(p *entities.Participant) { p.FirstName = "  " }},
		{"unknown gender", func(p *entities.Participant) { p.Gender = "x" }},
		{"age above range", func(p *entities.Participant) { p.Age = 121 }},
		{"negative age", func(p *entities.Participant) { p.Age = -1 }},
		{"bad setting", func(p *entities.Participant) { p.Setting = "suburb" }},
		{"bad employment", func(p *entities.Participant) { p.EmploymentStatus = "retired" }},
		{"negative income", func(p *entities.Participant) { p.MonthlyIncome = -5 }},
		{"NaN income", func(p *entities.Participant) { p.MonthlyIncome = math.NaN() }},
		{"infinite income", func(p *entities.Participant) { p.MonthlyIncome = math.Inf(1) }},
		{"missing organization", func(p *entities.Participant) { p.OrganizationID = "" }},
		{"malformed project", func(p *entities.Participant) { p.ProjectID = "proj-1" }},
		{"malformed cluster", func(p *entities.Participant) { c := "c1"; p.ClusterID = &c }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &repoMock{}
			p := validParticipant()
			tt.mutate(&p)

			_, err := newUsecase(repo).CreateParticipant(context.Background(), p)
			require.ErrorIs(t, err, entities.ErrInvalidArgument)
			repo.AssertNotCalled(t, "CreateParticipant", mock.Anything, mock.Anything)
		})
	}
}

func TestUsecase_CreateParticipantDelegates(t *testing.T) {
	now = func() time.Time { return time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = time.Now })

	repo := &repoMock{}
	dob := time.Date(2000, 3, 15, 0, 0, 0, 0, time.UTC)
	in := validParticipant()
	in.Age = 0
	in.DateOfBirth = &dob

	repo.On("CreateParticipant", mock.Anything, mock.MatchedBy(func(p entities.Participant) bool {
		return p.FirstName == "Amina" && p.Age == 26 && uuid.Validate(p.ID) == nil
	})).Return(&entities.Participant{ID: "p1", FirstName: "Amina"}, nil)

	got, err := newUsecase(repo).CreateParticipant(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, "p1", got.ID)
	repo.AssertExpectations(t)
}

func TestUsecase_MalformedIDIsInvalid(t *testing.T) {
	repo := &repoMock{}
	uc := newUsecase(repo)

	_, err := uc.Participant(context.Background(), "not-a-uuid")
	require.ErrorIs(t, err, entities.ErrInvalidArgument)

	err = uc.DeleteProject(context.Background(), "")
	require.ErrorIs(t, err, entities.ErrInvalidArgument)

	_, err = uc.RecordAttendance(context.Background(), uuid.NewString(), nil, true)
	require.ErrorIs(t, err, entities.ErrInvalidArgument)

	repo.AssertExpectations(t)
}

func TestUsecase_ActivitiesRejectsMalformedFilterIDs(t *testing.T) {
	tests := []struct {
		name   string
		filter entities.ActivityFilter
	}{
		{"organization", entities.ActivityFilter{OrganizationID: "abc"}},
		{"project", entities.ActivityFilter{ProjectID: "proj-1"}},
		{"cluster", entities.ActivityFilter{ClusterID: "c1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &repoMock{}
			_, err := newUsecase(repo).Activities(context.Background(), tt.filter)
			require.ErrorIs(t, err, entities.ErrInvalidArgument)
			repo.AssertNotCalled(t, "ListActivities", mock.Anything, mock.Anything)
		})
	}

	repo := &repoMock{}
	orgID := uuid.NewString()
	repo.On("ListActivities", mock.Anything, mock.MatchedBy(func(f entities.ActivityFilter) bool {
		return f.OrganizationID == orgID
	})).Return([]entities.Activity{}, int64(0), nil)
	_, err := newUsecase(repo).Activities(context.Background(), entities.ActivityFilter{OrganizationID: orgID})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUsecase_ListNormalizesPage(t *testing.T) {
	repo := &repoMock{}
	repo.On("ListProjects", mock.Anything, mock.MatchedBy(func(f entities.ProjectFilter) bool {
		return f.Page == 1 && f.Limit == entities.MaxPageLimit
	})).Return([]entities.Project{{ID: "a"}}, int64(101), nil)

	page, err := newUsecase(repo).Projects(context.Background(), entities.ProjectFilter{PageRequest: entities.PageRequest{Limit: 1000}})
	require.NoError(t, err)
	require.Equal(t, 2, page.Meta.TotalPages)
	require.Len(t, page.Items, 1)
}

func TestUsecase_AddSkillDefaultsProficiency(t *testing.T) {
	repo := &repoMock{}
	pid := uuid.NewString()
	repo.On("GetParticipant", mock.Anything, pid).Return(&entities.Participant{ID: pid}, nil)
	repo.On("CreateSkill", mock.Anything, mock.MatchedBy(func(s entities.Skill) bool {
		return s.Proficiency == entities.ProficiencyBeginner && s.Name == "Tailoring"
	})).Return(&entities.Skill{ID: "s1"}, nil)

	_, err := newUsecase(repo).AddSkill(context.Background(), entities.Skill{
		ParticipantID: pid, Name: " Tailoring ", Category: entities.SkillVocational,
	})
	require.NoError(t, err)

	_, err = newUsecase(repo).AddSkill(context.Background(), entities.Skill{
		ParticipantID: pid, Name: "Baking", Category: "cooking",
	})
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
	repo.AssertExpectations(t)
}

func TestUsecase_CreateActivityValidation(t *testing.T) {
	start := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	base := entities.Activity{
		Title: "Savings training", Type: entities.ActivityTraining, StartDate: start,
		OrganizationID: uuid.NewString(), ProjectID: uuid.NewString(),
	}

	repo := &repoMock{}
	repo.On("CreateActivity", mock.Anything, mock.MatchedBy(func(a entities.Activity) bool {
		return a.Status == entities.ActivityPlanned && a.EndDate.Equal(start)
	})).Return(&entities.Activity{ID: "a1"}, nil)

	_, err := newUsecase(repo).CreateActivity(context.Background(), base)
	require.NoError(t, err)

	backwards := base
	backwards.EndDate = start.Add(-time.Hour)
	_, err = newUsecase(repo).CreateActivity(context.Background(), backwards)
	require.ErrorIs(t, err, entities.ErrInvalidArgument)

	noStart := base
	noStart.StartDate = time.Time{}
	_, err = newUsecase(repo).CreateActivity(context.Background(), noStart)
	require.ErrorIs(t, err, entities.ErrInvalidArgument)

	repo.AssertNumberOfCalls(t, "CreateActivity", 1)
}

func TestUsecase_RecordAttendanceDedupes(t *testing.T) {
	repo := &repoMock{}
	aid, p1, p2 := uuid.NewString(), uuid.NewString(), uuid.NewString()
	repo.On("RecordAttendance", mock.Anything, aid, []string{p1, p2}, true).Return(2, nil)

	n, err := newUsecase(repo).RecordAttendance(context.Background(), aid, []string{p1, p2, p1}, true)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	repo.AssertExpectations(t)
}

func TestUsecase_AttendanceAnalytics(t *testing.T) {
	repo := &repoMock{}
	aid := uuid.NewString()
	repo.On("ListAttendance", mock.Anything, aid).Return([]entities.AttendanceRecord{
		{Attended: true, Gender: entities.GenderFemale, Age: 20},
		{Attended: true, Gender: entities.GenderMale, Age: 40},
		{Attended: false, Gender: entities.GenderFemale, Age: 30},
	}, nil)

	got, err := newUsecase(repo).AttendanceAnalytics(context.Background(), aid)
	require.NoError(t, err)
	require.Equal(t, 3, got.Total)
	require.Equal(t, 2, got.Attended)
	require.Equal(t, 1, got.Absent)
}

func TestUsecase_VSLAValidation(t *testing.T) {
	repo := &repoMock{}
	v := entities.VSLA{
		Name: "Tusubira", Code: "vs-1", MeetingFrequency: entities.MeetWeekly,
		TotalMembers: 10, FemaleMembers: 7, MaleMembers: 5,
		OrganizationID: uuid.NewString(), ProjectID: uuid.NewString(),
	}
	_, err := newUsecase(repo).CreateVSLA(context.Background(), v)
	require.ErrorIs(t, err, entities.ErrInvalidArgument)

	v.MaleMembers = 3
	repo.On("CreateVSLA", mock.Anything, mock.MatchedBy(func(in entities.VSLA) bool {
		return in.Code == "VS-1" && in.Status == entities.VSLAActive
	})).Return(&entities.VSLA{ID: "v1"}, nil)
	_, err = newUsecase(repo).CreateVSLA(context.Background(), v)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUsecase_VSLARejectsNonFiniteMoney(t *testing.T) {
	repo := &repoMock{}
	base := entities.VSLA{
		Name: "Tusubira", Code: "VS-1", MeetingFrequency: entities.MeetWeekly, TotalMembers: 10,
		OrganizationID: uuid.NewString(), ProjectID: uuid.NewString(),
	}

	nan := base
	nan.TotalSavings = math.NaN()
	_, err := newUsecase(repo).CreateVSLA(context.Background(), nan)
	require.ErrorIs(t, err, entities.ErrInvalidArgument)

	inf := base
	inf.TotalLoans = math.Inf(1)
	_, err = newUsecase(repo).CreateVSLA(context.Background(), inf)
	require.ErrorIs(t, err, entities.ErrInvalidArgument)

	repo.AssertNotCalled(t, "CreateVSLA", mock.Anything, mock.Anything)
}

func TestUsecase_KPIOverview(t *testing.T) {
	repo := &repoMock{}
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	current, previous := analytics.MonthWindows(now)

	repo.On("KPICounts", mock.Anything, current).Return(entities.KPICounts{Participants: 30, TotalSavings: 150}, nil)
	repo.On("KPICounts", mock.Anything, previous).Return(entities.KPICounts{Participants: 20}, nil)

	got, err := newUsecase(repo).KPIOverview(context.Background(), now)
	require.NoError(t, err)
	require.Equal(t, current, got.Current)
	require.Equal(t, previous, got.Previous)

	metrics := map[string]entities.KPIMetric{}
	for _, m := range got.Metrics {
		metrics[m.Key] = m
	}
	require.Equal(t, 50.0, metrics[analytics.KPIParticipants].Growth)
	require.Equal(t, 100.0, metrics[analytics.KPITotalSavings].Growth)
	require.Equal(t, 0.0, metrics[analytics.KPIActivities].Growth)
}

func TestUsecase_KPIOverviewPropagatesError(t *testing.T) {
	repo := &repoMock{}
	boom := errors.New("db down")
	repo.On("KPICounts", mock.Anything, mock.Anything).Return(entities.KPICounts{}, boom)

	_, err := newUsecase(repo).KPIOverview(context.Background(), time.Now())
	require.ErrorIs(t, err, boom)
}

func TestUsecase_Dashboard(t *testing.T) {
	repo := &repoMock{}
	now := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	filter := entities.DashboardFilter{ProjectID: uuid.NewString()}

	repo.On("ParticipantDemographics", mock.Anything, filter).Return(entities.DemographicRows{
		Gender: []entities.CountRow{{Key: "female", Count: 3}, {Key: "male", Count: 1}},
	}, int64(4), nil)
	repo.On("ActivityStatusCounts", mock.Anything, filter).Return([]entities.CountRow{{Key: "completed", Count: 2}}, nil)
	repo.On("MonthlyTrend", mock.Anything, filter, analytics.TrailingMonths(now, trendMonths)).Return(nil, nil)
	repo.On("VSLATotals", mock.Anything, entities.VSLAFilter{ProjectID: filter.ProjectID}).
		Return(entities.VSLATotals{Groups: 2, TotalSavings: 500}, nil)

	got, err := newUsecase(repo).Dashboard(context.Background(), filter, now)
	require.NoError(t, err)
	require.Equal(t, int64(4), got.Demographics.Total)
	require.Equal(t, 75.0, got.Demographics.ByGender[0].Percentage)
	require.NotNil(t, got.MonthlyTrend)
	require.Equal(t, int64(2), got.VSLA.Groups)
	repo.AssertExpectations(t)

	_, err = newUsecase(repo).Dashboard(context.Background(), entities.DashboardFilter{ClusterID: "c-1"}, now)
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
}

func TestUsecase_ImportParticipantsBestEffort(t *testing.T) {
	orgID, projectID := uuid.NewString(), uuid.NewString()
	rows := []entities.Participant{
		{FirstName: "Amina", Gender: entities.GenderFemale, Age: 22, OrganizationID: orgID, ProjectID: projectID},
		{FirstName: "Okello", Gender: entities.GenderMale, Age: 30, OrganizationID: "org-1", ProjectID: projectID},
		{FirstName: "Sarah", Gender: entities.GenderFemale, Age: 41, OrganizationID: orgID, ProjectID: projectID},
	}
	var buf bytes.Buffer
	require.NoError(t, importer.WriteParticipants(&buf, rows))

	repo := &repoMock{}
	repo.On("CreateParticipant", mock.Anything, mock.MatchedBy(func(p entities.Participant) bool {
		return p.FirstName == "Amina"
	})).Return(&entities.Participant{ID: "p1"}, nil)
	repo.On("CreateParticipant", mock.Anything, mock.MatchedBy(func(p entities.Participant) bool {
		return p.FirstName == "Sarah"
	})).Return(nil, entities.ErrParticipantExists)

	res, err := newUsecase(repo).ImportParticipants(context.Background(), &buf, entities.ImportOptions{})
	require.NoError(t, err)
	require.Equal(t, entities.ImportParticipants, res.Kind)
	require.Equal(t, 3, res.Total)
	require.Equal(t, 1, res.Imported)
	require.Equal(t, 2, res.Skipped)
	require.Equal(t, []entities.RowError{
		{Row: 3, Message: "organization_id is not a valid identifier"},
		{Row: 4, Message: entities.ErrParticipantExists.Error()},
	}, res.Errors)
}

func TestUsecase_ImportCancelledKeepsProgress(t *testing.T) {
	orgID, projectID := uuid.NewString(), uuid.NewString()
	var buf bytes.Buffer
	require.NoError(t, importer.WriteParticipants(&buf, []entities.Participant{
		{FirstName: "Amina", Gender: entities.GenderFemale, Age: 22, OrganizationID: orgID, ProjectID: projectID},
		{FirstName: "Okello", Gender: entities.GenderMale, Age: 30, OrganizationID: orgID, ProjectID: projectID},
		{FirstName: "Sarah", Gender: entities.GenderFemale, Age: 41, OrganizationID: orgID, ProjectID: projectID},
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := &repoMock{}
	repo.On("CreateParticipant", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(&entities.Participant{ID: "p1"}, nil).
		Once()

	res, err := newUsecase(repo).ImportParticipants(ctx, &buf, entities.ImportOptions{})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, entities.ImportParticipants, res.Kind)
	require.Equal(t, 3, res.Total)
	require.Equal(t, 1, res.Imported)
	require.Equal(t, 2, res.Skipped)
	repo.AssertNumberOfCalls(t, "CreateParticipant", 1)
}

func TestUsecase_ImportRejectsWholeFile(t *testing.T) {
	repo := &repoMock{}
	uc := New(zap.NewNop().Sugar(), context.Background(), repo, time.Second,
		WithImportLimits(importer.Limits{MaxRows: 1, MaxFileBytes: 1 << 20}))

	var buf bytes.Buffer
	require.NoError(t, importer.WriteVSLAs(&buf, []entities.VSLA{{Name: "A"}, {Name: "B"}}))
	_, err := uc.ImportVSLAs(context.Background(), &buf, entities.ImportOptions{})
	require.ErrorIs(t, err, entities.ErrImportTooLarge)

	_, err = uc.ImportVSLAs(context.Background(), bytes.NewReader([]byte("not a workbook")), entities.ImportOptions{})
	require.ErrorIs(t, err, entities.ErrInvalidArgument)

	_, err = uc.ImportParticipants(context.Background(), &bytes.Buffer{}, entities.ImportOptions{
		Defaults: entities.ImportDefaults{ProjectID: "p-1"},
	})
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
	repo.AssertNotCalled(t, "CreateVSLA", mock.Anything, mock.Anything)
}

func TestUsecase_ExportParticipants(t *testing.T) {
	repo := &repoMock{}
	repo.On("AllParticipants", mock.Anything, entities.ParticipantFilter{}).
		Return([]entities.Participant{{FirstName: "Amina", Gender: entities.GenderFemale}}, nil)

	var buf bytes.Buffer
	require.NoError(t, newUsecase(repo).ExportParticipants(context.Background(), &buf, entities.ParticipantFilter{}))

	rows, err := importer.ReadWorkbook(&buf, "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
}
