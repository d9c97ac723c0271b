package postgres

import (
	"context"
	"database/sql"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"impacttrack/config"
	"impacttrack/internal/entities"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	project entities.Project
	cluster entities.Cluster
	org     entities.Organization
}

func startRepo(t *testing.T) (context.Context, *Postgres) {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test")
	}

	ctx := context.Background()
	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })
	return ctx, repo
}

func seed(ctx context.Context, t *testing.T, repo *Postgres) fixture {
	t.Helper()

	project, err := repo.CreateProject(ctx, entities.Project{ID: uuid.NewString(), Name: "Youth Livelihoods", Acronym: "YL", Status: entities.ProjectActive})
	require.NoError(t, err)
	cluster, err := repo.CreateCluster(ctx, entities.Cluster{ID: uuid.NewString(), Name: "West Nile", Country: "Uganda", Districts: []string{"Arua", "Nebbi"}})
	require.NoError(t, err)
	org, err := repo.CreateOrganization(ctx, entities.Organization{
		ID: uuid.NewString(), Name: "Arua Women Network", Acronym: "AWN",
		ClusterID: &cluster.ID, ProjectID: &project.ID, Country: "Uganda", District: "Arua",
	})
	require.NoError(t, err)
	return fixture{project: *project, cluster: *cluster, org: *org}
}

func newParticipant(f fixture, first string, gender entities.Gender, age int, pwd bool) entities.Participant {
	return entities.Participant{
		ID: uuid.NewString(), FirstName: first, LastName: "Okello", Gender: gender, Age: age,
		Contact: "0700" + first, Country: "Uganda", District: "Arua", Setting: entities.SettingRural,
		IsPWD: pwd, EmploymentStatus: entities.EmploymentSelfEmployed,
		OrganizationID: f.org.ID, ProjectID: f.project.ID,
	}
}

func TestProjectCRUDIntegration(t *testing.T) {
	ctx, repo := startRepo(t)

	p, err := repo.CreateProject(ctx, entities.Project{ID: uuid.NewString(), Name: "Water Access", Status: entities.ProjectActive})
	require.NoError(t, err)

	_, err = repo.CreateProject(ctx, entities.Project{ID: uuid.NewString(), Name: "Water Access", Status: entities.ProjectActive})
	require.ErrorIs(t, err, entities.ErrProjectExists)
	require.ErrorIs(t, err, entities.ErrAlreadyExists)

	p.Status = entities.ProjectOnHold
	updated, err := repo.UpdateProject(ctx, *p)
	require.NoError(t, err)
	require.Equal(t, entities.ProjectOnHold, updated.Status)

	status := entities.ProjectOnHold
	items, total, err := repo.ListProjects(ctx, entities.ProjectFilter{PageRequest: entities.PageRequest{Search: "water"}, Status: &status})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, items, 1)

	_, err = repo.CreateProject(ctx, entities.Project{ID: uuid.NewString(), Name: "500 Wells", Status: entities.ProjectActive})
	require.NoError(t, err)
	_, err = repo.CreateProject(ctx, entities.Project{ID: uuid.NewString(), Name: "50% Cover", Status: entities.ProjectActive})
	require.NoError(t, err)
	_, total, err = repo.ListProjects(ctx, entities.ProjectFilter{PageRequest: entities.PageRequest{Search: "50%"}})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)

	_, err = repo.GetProject(ctx, "not-a-uuid")
	require.ErrorIs(t, err, entities.ErrProjectNotFound)

	require.NoError(t, repo.DeleteProject(ctx, p.ID))
	require.ErrorIs(t, repo.DeleteProject(ctx, p.ID), entities.ErrProjectNotFound)
}

func TestClusterMembershipIntegration(t *testing.T) {
	ctx, repo := startRepo(t)
	f := seed(ctx, t, repo)

	other, err := repo.CreateOrganization(ctx, entities.Organization{ID: uuid.NewString(), Name: "Nebbi Youth", Acronym: "NY"})
	require.NoError(t, err)

	added, err := repo.AddClusterMembers(ctx, f.cluster.ID, []string{f.org.ID, other.ID})
	require.NoError(t, err)
	require.Equal(t, 1, added)

	added, err = repo.AddClusterMembers(ctx, f.cluster.ID, []string{other.ID})
	require.NoError(t, err)
	require.Zero(t, added)

	members, err := repo.ListClusterMembers(ctx, f.cluster.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)

	c, err := repo.GetCluster(ctx, f.cluster.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), c.MemberCount)
	require.Equal(t, []string{"Arua", "Nebbi"}, c.Districts)

	adopted, err := repo.GetOrganization(ctx, other.ID)
	require.NoError(t, err)
	require.NotNil(t, adopted.ClusterID)
	require.Equal(t, f.cluster.ID, *adopted.ClusterID)

	require.NoError(t, repo.RemoveClusterMember(ctx, f.cluster.ID, other.ID))
	require.ErrorIs(t, repo.RemoveClusterMember(ctx, f.cluster.ID, other.ID), entities.ErrMemberNotFound)

	_, err = repo.AddClusterMembers(ctx, uuid.NewString(), []string{other.ID})
	require.ErrorIs(t, err, entities.ErrClusterNotFound)
}

func TestParticipantAndAttendanceIntegration(t *testing.T) {
	ctx, repo := startRepo(t)
	f := seed(ctx, t, repo)

	alice, err := repo.CreateParticipant(ctx, newParticipant(f, "Alice", entities.GenderFemale, 22, false))
	require.NoError(t, err)
	bob, err := repo.CreateParticipant(ctx, newParticipant(f, "Bob", entities.GenderMale, 40, true))
	require.NoError(t, err)

	dup := newParticipant(f, "Alice", entities.GenderFemale, 22, false)
	_, err = repo.CreateParticipant(ctx, dup)
	require.ErrorIs(t, err, entities.ErrParticipantExists)

	unknownOrg := newParticipant(f, "Carol", entities.GenderFemale, 30, false)
	unknownOrg.OrganizationID = uuid.NewString()
	_, err = repo.CreateParticipant(ctx, unknownOrg)
	require.ErrorIs(t, err, entities.ErrInvalidArgument)

	female := entities.GenderFemale
	items, total, err := repo.ListParticipants(ctx, entities.ParticipantFilter{OrganizationID: f.org.ID, Gender: &female})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, alice.ID, items[0].ID)

	skill, err := repo.CreateSkill(ctx, entities.Skill{ID: uuid.NewString(), ParticipantID: alice.ID, Name: "Tailoring",
		Category: entities.SkillVocational, Proficiency: entities.ProficiencyBeginner})
	require.NoError(t, err)
	skills, err := repo.ListSkills(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	require.NoError(t, repo.DeleteSkill(ctx, alice.ID, skill.ID))
	require.ErrorIs(t, repo.DeleteSkill(ctx, alice.ID, skill.ID), entities.ErrSkillNotFound)

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	act, err := repo.CreateActivity(ctx, entities.Activity{
		ID: uuid.NewString(), Title: "Savings training", Type: entities.ActivityTraining, Status: entities.ActivityCompleted,
		StartDate: start, EndDate: start.Add(4 * time.Hour), OrganizationID: f.org.ID, ProjectID: f.project.ID,
	})
	require.NoError(t, err)

	n, err := repo.RecordAttendance(ctx, act.ID, []string{alice.ID, bob.ID}, true)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	_, err = repo.RecordAttendance(ctx, act.ID, []string{bob.ID}, false)
	require.NoError(t, err)
	_, err = repo.RecordAttendance(ctx, act.ID, []string{uuid.NewString()}, true)
	require.ErrorIs(t, err, entities.ErrParticipantNotFound)

	records, err := repo.ListAttendance(ctx, act.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)

	got, err := repo.GetActivity(ctx, act.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), got.AttendeeCount)

	note, err := repo.UpsertConceptNote(ctx, entities.ConceptNote{ID: uuid.NewString(), ActivityID: act.ID, Title: "Plan", Budget: 1200})
	require.NoError(t, err)
	again, err := repo.UpsertConceptNote(ctx, entities.ConceptNote{ID: uuid.NewString(), ActivityID: act.ID, Title: "Plan v2", Budget: 900})
	require.NoError(t, err)
	require.Equal(t, note.ID, again.ID)
	require.Equal(t, "Plan v2", again.Title)

	require.ErrorIs(t, repo.DeleteOrganization(ctx, f.org.ID), entities.ErrInUse)

	require.NoError(t, repo.RemoveAttendance(ctx, act.ID, bob.ID))
	require.ErrorIs(t, repo.RemoveAttendance(ctx, act.ID, bob.ID), entities.ErrAttendanceNotFound)
	require.NoError(t, repo.DeleteActivity(ctx, act.ID))
	_, err = repo.GetConceptNote(ctx, act.ID)
	require.ErrorIs(t, err, entities.ErrConceptNoteNotFound)
}

func TestVSLAAndAnalyticsIntegration(t *testing.T) {
	ctx, repo := startRepo(t)
	f := seed(ctx, t, repo)

	_, err := repo.CreateVSLA(ctx, entities.VSLA{
		ID: uuid.NewString(), Name: "Tusubira", Code: "VS-001", OrganizationID: f.org.ID, ProjectID: f.project.ID,
		MeetingFrequency: entities.MeetWeekly, Status: entities.VSLAActive,
		TotalMembers: 25, FemaleMembers: 18, MaleMembers: 7, TotalSavings: 1500000, TotalLoans: 400000,
	})
	require.NoError(t, err)

	_, err = repo.CreateVSLA(ctx, entities.VSLA{
		ID: uuid.NewString(), Name: "Broken", Code: "VS-002", OrganizationID: f.org.ID, ProjectID: f.project.ID,
		MeetingFrequency: entities.MeetWeekly, Status: entities.VSLAActive, TotalMembers: 5, FemaleMembers: 4, MaleMembers: 4,
	})
	require.ErrorIs(t, err, entities.ErrInvalidArgument)

	totals, err := repo.VSLATotals(ctx, entities.VSLAFilter{OrganizationID: f.org.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), totals.Groups)
	require.Equal(t, int64(25), totals.TotalMembers)
	require.InDelta(t, 1500000, totals.TotalSavings, 0.001)

	_, err = repo.CreateParticipant(ctx, newParticipant(f, "Alice", entities.GenderFemale, 22, false))
	require.NoError(t, err)
	_, err = repo.CreateParticipant(ctx, newParticipant(f, "Grace", entities.GenderFemale, 0, true))
	require.NoError(t, err)

	now := time.Now().UTC()
	k, err := repo.KPICounts(ctx, entities.Window{From: now.Add(-time.Hour), To: now.Add(time.Hour)})
	require.NoError(t, err)
	require.Equal(t, int64(2), k.Participants)
	require.Equal(t, int64(1), k.Organizations)
	require.Equal(t, int64(1), k.VSLAs)
	require.Equal(t, int64(25), k.VSLAMembers)

	rows, total, err := repo.ParticipantDemographics(ctx, entities.DashboardFilter{ProjectID: f.project.ID})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Equal(t, []entities.CountRow{{Key: "female", Count: 2}}, rows.Gender)
	require.ElementsMatch(t, []entities.CountRow{{Key: "15-24", Count: 1}, {Key: "unknown", Count: 1}}, rows.AgeBand)

	trend, err := repo.MonthlyTrend(ctx, entities.DashboardFilter{OrganizationID: f.org.ID},
		entities.Window{From: now.AddDate(0, -2, 0), To: now.Add(time.Hour)})
	require.NoError(t, err)
	require.NotEmpty(t, trend)
	require.Equal(t, int64(2), trend[len(trend)-1].Participants)
}

func setupPostgres(t *testing.T) (*config.Config, func()) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=impacttrack_test",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
	})
	require.NoError(t, err)

	hostPort := resource.GetPort("5432/tcp")

	port, err := strconv.Atoi(hostPort)
	require.NoError(t, err)
	migrationsDir, err := filepath.Abs(filepath.Join("..", "..", "..", "db", "migrations"))
	require.NoError(t, err)
	require.DirExists(t, migrationsDir)

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "0.0.0.0", Port: 8080, ShutdownTimeout: 5 * time.Second},
		HTTP:   config.HTTPConfig{RequestTimeout: 5 * time.Second},
		Postgres: config.PostgresConfig{
			Host:           "localhost",
			Port:           port,
			User:           "postgres",
			Password:       "postgres",
			DBName:         "impacttrack_test",
			SSLMode:        "disable",
			MigrationsDir:  migrationsDir,
			QueryTimeout:   10 * time.Second,
			MigrateTimeout: 20 * time.Second,
			MaxConns:       4,
			MinConns:       1,
		},
	}

	require.NoError(t, pool.Retry(func() error {
		db, err := sql.Open("postgres", "host=localhost port="+hostPort+" user=postgres password=postgres dbname=impacttrack_test sslmode=disable")
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return db.Ping()
	}))

	cleanup := func() {
		_ = pool.Purge(resource)
	}

	return cfg, cleanup
}

func testLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()

	l, _ := zap.NewDevelopment()
	t.Cleanup(func() { _ = l.Sync() })
	return l.Sugar()
}
