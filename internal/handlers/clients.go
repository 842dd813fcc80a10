package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"clientbook/backend/internal/models"
	"clientbook/backend/internal/service"
)

const birthdayLayout = "2006-01-02"

type clientRequest struct {
	Firstname      string `json:"firstname" binding:"required,min=2,max=20"`
	Lastname       string `json:"lastname" binding:"required,min=2,max=30"`
	Email          string `json:"email" binding:"required,email"`
	PhoneNumber    string `json:"phone_number" binding:"required,min=9,max=20"`
	Birthday       string `json:"birthday" binding:"required"`
	AdditionalData string `json:"additional_data"`
}

type clientResponse struct {
	ID             string `json:"id"`
	Firstname      string `json:"firstname"`
	Lastname       string `json:"lastname"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phone_number"`
	Birthday       string `json:"birthday"`
	AdditionalData string `json:"additional_data"`
}

func newClientResponse(client models.Client) clientResponse {
	return clientResponse{
		ID:             client.ID,
		Firstname:      client.Firstname,
		Lastname:       client.Lastname,
		Email:          client.Email,
		PhoneNumber:    client.PhoneNumber,
		Birthday:       client.Birthday.Format(birthdayLayout),
		AdditionalData: client.AdditionalData,
	}
}

func newClientListResponse(clients []models.Client) []clientResponse {
	resp := make([]clientResponse, 0, len(clients))
	for _, client := range clients {
		resp = append(resp, newClientResponse(client))
	}
	return resp
}

func (r clientRequest) toInput() (service.ClientInput, error) {
	birthday, err := time.Parse(birthdayLayout, r.Birthday)
	if err != nil {
		return service.ClientInput{}, err
	}
	return service.ClientInput{
		Firstname:      r.Firstname,
		Lastname:       r.Lastname,
		Email:          r.Email,
		PhoneNumber:    r.PhoneNumber,
		Birthday:       birthday,
		AdditionalData: r.AdditionalData,
	}, nil
}

func (h HandlerSet) ListClients(c *gin.Context) {
	limit := 10
	offset := 0

	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 || v > 300 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid limit"})
			return
		}
		limit = v
	}
	if raw := c.Query("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid offset"})
			return
		}
		offset = v
	}

	clients, err := h.clients.List(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newClientListResponse(clients))
}

func (h HandlerSet) UpcomingBirthdays(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 365 {
			days = v
		}
	}

	clients, err := h.clients.UpcomingBirthdays(c.Request.Context(), days)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newClientListResponse(clients))
}

func (h HandlerSet) SearchClients(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Search term required"})
		return
	}

	clients, err := h.clients.Search(c.Request.Context(), term)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newClientListResponse(clients))
}

func (h HandlerSet) GetClient(c *gin.Context) {
	client, err := h.clients.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newClientResponse(client))
}

func (h HandlerSet) CreateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid birthday format"})
		return
	}

	client, err := h.clients.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newClientResponse(client))
}

func (h HandlerSet) UpdateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid birthday format"})
		return
	}

	client, err := h.clients.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newClientResponse(client))
}

func (h HandlerSet) DeleteClient(c *gin.Context) {
	client, err := h.clients.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newClientResponse(client))
}
