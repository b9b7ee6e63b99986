package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/qreport/backend/api/handler"
)

type Handlers struct {
	Auth         *apiHandler.AuthHandler
	Client       *apiHandler.ClientHandler
	Contact      *apiHandler.ContactHandler
	Facility     *apiHandler.FacilityHandler
	Intervention *apiHandler.InterventionHandler
	Editor       *apiHandler.EditorHandler
	Settings     *apiHandler.SettingsHandler
	Health       *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)
	r.POST("/api/v1/auth/logout", handlers.Auth.Logout)

	// Clients
	r.GET("/api/v1/clients", authMiddleware(handlers.Client.GetClients))
	r.POST("/api/v1/clients", authMiddleware(handlers.Client.CreateClient))
	r.GET("/api/v1/clients/{id}", authMiddleware(handlers.Client.GetClient))
	r.PUT("/api/v1/clients/{id}", authMiddleware(handlers.Client.UpdateClient))
	r.DELETE("/api/v1/clients/{id}", authMiddleware(handlers.Client.DeactivateClient))

	// Contacts
	r.GET("/api/v1/clients/{id}/contacts", authMiddleware(handlers.Contact.GetContacts))
	r.POST("/api/v1/clients/{id}/contacts", authMiddleware(handlers.Contact.CreateContact))
	r.GET("/api/v1/contacts/{id}", authMiddleware(handlers.Contact.GetContact))
	r.PUT("/api/v1/contacts/{id}", authMiddleware(handlers.Contact.UpdateContact))
	r.DELETE("/api/v1/contacts/{id}", authMiddleware(handlers.Contact.DeactivateContact))
	r.POST("/api/v1/contacts/bulk-delete", authMiddleware(handlers.Contact.BulkDeleteContacts))

	// Facilities and islands
	r.GET("/api/v1/clients/{id}/facilities", authMiddleware(handlers.Facility.GetFacilities))
	r.POST("/api/v1/clients/{id}/facilities", authMiddleware(handlers.Facility.CreateFacility))
	r.GET("/api/v1/facilities/{id}", authMiddleware(handlers.Facility.GetFacility))
	r.PUT("/api/v1/facilities/{id}", authMiddleware(handlers.Facility.UpdateFacility))
	r.DELETE("/api/v1/facilities/{id}", authMiddleware(handlers.Facility.DeactivateFacility))
	r.GET("/api/v1/facilities/{id}/islands", authMiddleware(handlers.Facility.GetIslands))
	r.POST("/api/v1/facilities/{id}/islands", authMiddleware(handlers.Facility.CreateIsland))
	r.PUT("/api/v1/islands/{id}", authMiddleware(handlers.Facility.UpdateIsland))
	r.DELETE("/api/v1/islands/{id}", authMiddleware(handlers.Facility.DeactivateIsland))

	// Interventions
	r.GET("/api/v1/interventions", authMiddleware(handlers.Intervention.GetInterventions))
	r.POST("/api/v1/interventions", authMiddleware(handlers.Intervention.CreateIntervention))
	r.GET("/api/v1/interventions/{id}", authMiddleware(handlers.Intervention.GetIntervention))
	r.PUT("/api/v1/interventions/{id}", authMiddleware(handlers.Intervention.UpdateIntervention))
	r.DELETE("/api/v1/interventions/{id}", authMiddleware(handlers.Intervention.DeleteIntervention))
	r.PUT("/api/v1/interventions/{id}/status", authMiddleware(handlers.Intervention.ChangeStatus))
	r.POST("/api/v1/interventions/batch/status", authMiddleware(handlers.Intervention.ChangeStatusBatch))
	r.POST("/api/v1/interventions/batch/delete", authMiddleware(handlers.Intervention.DeleteBatch))

	// Report editor sessions
	r.POST("/api/v1/editor/sessions", authMiddleware(handlers.Editor.OpenSession))
	r.GET("/api/v1/editor/sessions/{id}", authMiddleware(handlers.Editor.GetState))
	r.POST("/api/v1/editor/sessions/{id}/switch", authMiddleware(handlers.Editor.SwitchTab))
	r.POST("/api/v1/editor/sessions/{id}/exit", authMiddleware(handlers.Editor.ExitSession))
	r.PUT("/api/v1/editor/sessions/{id}/general", authMiddleware(handlers.Editor.UpdateGeneral))
	r.PUT("/api/v1/editor/sessions/{id}/details", authMiddleware(handlers.Editor.UpdateDetails))
	r.PUT("/api/v1/editor/sessions/{id}/work-days", authMiddleware(handlers.Editor.UpdateWorkDays))
	r.PUT("/api/v1/editor/sessions/{id}/work-days/detail-view", authMiddleware(handlers.Editor.SetWorkDaysDetailView))
	r.PUT("/api/v1/editor/sessions/{id}/signatures", authMiddleware(handlers.Editor.UpdateSignatures))
	r.POST("/api/v1/editor/sessions/{id}/signatures/technician", authMiddleware(handlers.Editor.AttachTechnicianSignature))
	r.POST("/api/v1/editor/sessions/{id}/signatures/customer", authMiddleware(handlers.Editor.AttachCustomerSignature))

	// Display preferences
	r.GET("/api/v1/settings/card-variant/{list}", authMiddleware(handlers.Settings.GetCardVariant))
	r.POST("/api/v1/settings/card-variant/{list}/cycle", authMiddleware(handlers.Settings.CycleCardVariant))

	return r
}
