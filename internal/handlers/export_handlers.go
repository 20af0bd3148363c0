package handlers

import (
	"net/http"

	"clienteflow_backend/internal/services"
	"clienteflow_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ExportHandler serves CSV downloads of the filtered client and contact views.
// Export accepts the same query parameters as the corresponding list endpoint.
type ExportHandler struct {
	clientService  services.ClientService
	contactService services.ContactService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(cs services.ClientService, contactService services.ContactService) *ExportHandler {
	return &ExportHandler{clientService: cs, contactService: contactService}
}

// ExportClients streams the filtered client list as clients.csv.
func (h *ExportHandler) ExportClients(c *gin.Context) {
	clients, err := h.clientService.GetClients(parseClientFilters(c))
	if err != nil {
		utils.LogError(err, "ExportClients: Error from clientService.GetClients")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to export clients.", "Internal error"))
		return
	}

	csvText, err := services.ClientsToCSV(clients)
	if err != nil {
		utils.LogError(err, "ExportClients: Error from services.ClientsToCSV")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to export clients.", "Internal error"))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="clients.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csvText))
}

// ExportContacts streams the filtered contact list as contacts.csv.
func (h *ExportHandler) ExportContacts(c *gin.Context) {
	filters, err := parseContactFilters(c)
	if err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	contacts, err := h.contactService.GetContacts(filters)
	if err != nil {
		utils.LogError(err, "ExportContacts: Error from contactService.GetContacts")
		if services.IsValidationError(err) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to export contacts.", "Internal error"))
		}
		return
	}

	csvText, err := services.ContactsToCSV(contacts)
	if err != nil {
		utils.LogError(err, "ExportContacts: Error from services.ContactsToCSV")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to export contacts.", "Internal error"))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="contacts.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csvText))
}
