package api

import (
	"net/http"

	resdto "grillbox/internal/handler/dto/response"
	"grillbox/internal/handler/httperr"
	"grillbox/internal/handler/middleware"
	"grillbox/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CardHandler struct {
	cards commands.CardCommands
}

func NewCardHandler(cards commands.CardCommands) *CardHandler {
	return &CardHandler{cards: cards}
}

// @Summary List my cards
// @Description List the cards saved to the caller's payment customer
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CardListResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /cards [get]
func (h *CardHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}

	cards, err := h.cards.ListCards(c.Request.Context(), userID)
	if err != nil {
		abortWithMappedError(c, err, "Failed to list cards")
		return
	}
	c.JSON(http.StatusOK, resdto.FromCards(cards))
}

// @Summary Start card setup
// @Description Open a setup session so the client can save a card with the payment processor
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Success 201 {object} resdto.CardSetupResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /cards [post]
func (h *CardHandler) StartSetup(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}

	setup, err := h.cards.StartCardSetup(c.Request.Context(), userID)
	if err != nil {
		abortWithMappedError(c, err, "Failed to start card setup")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCardSetup(setup))
}

// @Summary Remove card
// @Description Detach one of the caller's saved cards
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Param id path string true "Card ID"
// @Success 200 {object} resdto.CardResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /cards/{id} [delete]
func (h *CardHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}

	card, err := h.cards.RemoveCard(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		abortWithMappedError(c, err, "Failed to remove card")
		return
	}
	c.JSON(http.StatusOK, resdto.FromCard(*card))
}
