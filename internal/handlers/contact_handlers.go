package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"clienteflow_backend/internal/models"
	"clienteflow_backend/internal/services"
	"clienteflow_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const contactFilterDateLayout = "2006-01-02"

// ContactHandler holds the contact service.
type ContactHandler struct {
	contactService services.ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(cs services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: cs}
}

// parseContactFilters builds ContactFilters from list/export query parameters.
// date_from/date_to use YYYY-MM-DD and cover the whole boundary day.
func parseContactFilters(c *gin.Context) (models.ContactFilters, error) {
	var filters models.ContactFilters

	if clientIDStr := c.Query("client_id"); clientIDStr != "" {
		clientID, err := strconv.ParseInt(clientIDStr, 10, 64)
		if err != nil {
			return filters, errors.New("client_id must be an integer")
		}
		filters.ClientID = &clientID
	}
	if dateFromStr := c.Query("date_from"); dateFromStr != "" {
		dateFrom, err := time.Parse(contactFilterDateLayout, dateFromStr)
		if err != nil {
			return filters, errors.New("date_from must use YYYY-MM-DD")
		}
		filters.DateFrom = &dateFrom
	}
	if dateToStr := c.Query("date_to"); dateToStr != "" {
		dateTo, err := time.Parse(contactFilterDateLayout, dateToStr)
		if err != nil {
			return filters, errors.New("date_to must use YYYY-MM-DD")
		}
		filters.DateTo = &dateTo
	}
	if channel := c.Query("channel"); channel != "" {
		filters.Channel = &channel
	}
	return filters, nil
}

// CreateContact handles logging a new contact event.
func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req services.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateContact: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	contact, err := h.contactService.CreateContact(req)
	if err != nil {
		utils.LogError(err, "CreateContact: Error from contactService.CreateContact")
		if errors.Is(err, services.ErrClientForContactNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client for contact not found.", err.Error()))
		} else if services.IsValidationError(err) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create contact.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, contact)
}

// GetContacts handles fetching contacts with optional filters, newest first.
func (h *ContactHandler) GetContacts(c *gin.Context) {
	filters, err := parseContactFilters(c)
	if err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	contacts, err := h.contactService.GetContacts(filters)
	if err != nil {
		utils.LogError(err, "GetContacts: Error from contactService.GetContacts")
		if services.IsValidationError(err) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch contacts.", "Internal error"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  contacts,
		"total": len(contacts),
	})
}

// GetContactByID handles fetching a single contact event.
func (h *ContactHandler) GetContactByID(c *gin.Context) {
	idStr := c.Param("id")
	contactID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid contact ID format.", err.Error()))
		return
	}

	contact, err := h.contactService.GetContactByID(contactID)
	if err != nil {
		utils.LogError(err, "GetContactByID: Error from contactService.GetContactByID for ID "+idStr)
		if errors.Is(err, services.ErrContactNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Contact not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch contact.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, contact)
}

// UpdateContact handles partially updating a contact event.
func (h *ContactHandler) UpdateContact(c *gin.Context) {
	idStr := c.Param("id")
	contactID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid contact ID format.", err.Error()))
		return
	}

	var req services.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateContact: Failed to bind JSON for ID "+idStr)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	contact, err := h.contactService.UpdateContact(contactID, req)
	if err != nil {
		utils.LogError(err, "UpdateContact: Error from contactService.UpdateContact for ID "+idStr)
		if errors.Is(err, services.ErrContactNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Contact not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrClientForContactNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client for contact not found.", err.Error()))
		} else if services.IsValidationError(err) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update contact.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, contact)
}

// DeleteContact handles deleting a contact event.
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	idStr := c.Param("id")
	contactID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid contact ID format.", err.Error()))
		return
	}

	err = h.contactService.DeleteContact(contactID)
	if err != nil {
		utils.LogError(err, "DeleteContact: Error from contactService.DeleteContact for ID "+idStr)
		if errors.Is(err, services.ErrContactNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Contact not found to delete.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete contact.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contact deleted successfully"})
}

// GetChannels returns the fixed channel enumeration for form selects.
func (h *ContactHandler) GetChannels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": models.AllowedChannels})
}
