package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-mexitoes-api/internal/services"
	"github.com/gin-gonic/gin"
)

type ClientController struct {
	clientService services.ClientService
}

func NewClientController(clientService services.ClientService) *ClientController {
	return &ClientController{clientService: clientService}
}

type clientResponse struct {
	ID         string `json:"client_id"`
	Name       string `json:"name"`
	Domain     string `json:"domain"`
	Scopes     string `json:"scopes"`
	GrantTypes string `json:"grant_types"`
}

// CreateClient godoc
// @Summary Create an admin OAuth2 client
// @Description The secret is returned once and only stored hashed
// @Tags admin
// @Accept json
// @Produce json
// @Param client body object{name=string,domain=string,scopes=string} true "Client details"
// @Success 201 {object} map[string]interface{} "Client created with client_id and client_secret"
// @Failure 400 {object} models.APIError
// @Security AdminAuth
// @Router /api/admin/clients [post]
func (cc *ClientController) CreateClient(c *gin.Context) {
	var req struct {
		Name   string `json:"name" binding:"required"`
		Domain string `json:"domain"`
		Scopes string `json:"scopes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	client, secret, err := cc.clientService.CreateClient(c.Request.Context(), req.Name, req.Domain, req.Scopes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"client_id":     client.ID,
		"client_secret": secret,
		"name":          client.Name,
		"scopes":        client.Scopes,
	})
}

// ListClients godoc
// @Summary List admin OAuth2 clients
// @Tags admin
// @Produce json
// @Success 200 {array} clientResponse
// @Security AdminAuth
// @Router /api/admin/clients [get]
func (cc *ClientController) ListClients(c *gin.Context) {
	clients, err := cc.clientService.ListClients(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]clientResponse, 0, len(clients))
	for _, client := range clients {
		response = append(response, clientResponse{
			ID:         client.ID,
			Name:       client.Name,
			Domain:     client.Domain,
			Scopes:     client.Scopes,
			GrantTypes: client.GrantTypes,
		})
	}
	c.JSON(http.StatusOK, response)
}

// DeleteClient godoc
// @Summary Delete an admin OAuth2 client
// @Description Also revokes the client's tokens
// @Tags admin
// @Param id path string true "Client ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Security AdminAuth
// @Router /api/admin/clients/{id} [delete]
func (cc *ClientController) DeleteClient(c *gin.Context) {
	if err := cc.clientService.DeleteClient(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
