package handlers_fiber

import (
	"impacttrack/internal/auth"

	"github.com/gofiber/fiber/v2"
)

// Register mounts the API on r. Authentication must already run on r; each
// route adds its minimum role.
func (h *Handler) Register(r fiber.Router) {
	read := auth.RequireRole(auth.RoleUser)
	field := auth.RequireRole(auth.RoleClusterManager)
	admin := auth.RequireRole(auth.RoleAdmin)

	r.Get("/projects", read, h.ListProjects)
	r.Post("/projects", admin, h.CreateProject)
	r.Get("/projects/:id", read, h.GetProject)
	r.Put("/projects/:id", admin, h.UpdateProject)
	r.Delete("/projects/:id", admin, h.DeleteProject)

	r.Get("/clusters", read, h.ListClusters)
	r.Post("/clusters", admin, h.CreateCluster)
	r.Get("/clusters/:id", read, h.GetCluster)
	r.Put("/clusters/:id", admin, h.UpdateCluster)
	r.Delete("/clusters/:id", admin, h.DeleteCluster)
	r.Get("/clusters/:id/members", read, h.ListClusterMembers)
	r.Post("/clusters/:id/members", admin, h.AddClusterMembers)
	r.Delete("/clusters/:id/members/:orgId", admin, h.RemoveClusterMember)

	r.Get("/organizations", read, h.ListOrganizations)
	r.Post("/organizations", admin, h.CreateOrganization)
	r.Get("/organizations/:id", read, h.GetOrganization)
	r.Put("/organizations/:id", admin, h.UpdateOrganization)
	r.Delete("/organizations/:id", admin, h.DeleteOrganization)

	// Static segments go before /participants/:id so they are not read as ids.
	r.Post("/participants/import", admin, h.ImportParticipants)
	r.Get("/participants/import/template", read, h.ParticipantTemplate)
	r.Get("/participants/export", read, h.ExportParticipants)
	r.Get("/participants", read, h.ListParticipants)
	r.Post("/participants", admin, h.CreateParticipant)
	r.Get("/participants/:id", read, h.GetParticipant)
	r.Put("/participants/:id", admin, h.UpdateParticipant)
	r.Delete("/participants/:id", admin, h.DeleteParticipant)
	r.Get("/participants/:id/skills", read, h.ListSkills)
	r.Post("/participants/:id/skills", admin, h.AddSkill)
	r.Delete("/participants/:id/skills/:skillId", admin, h.DeleteSkill)

	r.Get("/activities", read, h.ListActivities)
	r.Post("/activities", field, h.CreateActivity)
	r.Get("/activities/:id", read, h.GetActivity)
	r.Put("/activities/:id", field, h.UpdateActivity)
	r.Delete("/activities/:id", admin, h.DeleteActivity)
	r.Get("/activities/:id/attendance/analytics", read, h.AttendanceAnalytics)
	r.Get("/activities/:id/attendance", read, h.ListAttendance)
	r.Post("/activities/:id/attendance", field, h.RecordAttendance)
	r.Delete("/activities/:id/attendance/:participantId", field, h.RemoveAttendance)
	r.Get("/activities/:id/concept-note", read, h.GetConceptNote)
	r.Put("/activities/:id/concept-note", field, h.SaveConceptNote)
	r.Delete("/activities/:id/concept-note", field, h.DeleteConceptNote)

	r.Post("/vslas/import", admin, h.ImportVSLAs)
	r.Get("/vslas/import/template", read, h.VSLATemplate)
	r.Get("/vslas/export", read, h.ExportVSLAs)
	r.Get("/vslas", read, h.ListVSLAs)
	r.Post("/vslas", admin, h.CreateVSLA)
	r.Get("/vslas/:id", read, h.GetVSLA)
	r.Put("/vslas/:id", admin, h.UpdateVSLA)
	r.Delete("/vslas/:id", admin, h.DeleteVSLA)

	r.Get("/kpis/overview", read, h.KPIOverview)
	r.Get("/dashboard", read, h.Dashboard)
}
