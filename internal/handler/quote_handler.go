package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mentorhub-api/internal/service"
	"github.com/noah-isme/mentorhub-api/pkg/response"
)

// QuoteHandler exposes the demo-trading quote proxy.
type QuoteHandler struct {
	quotes  *service.QuoteService
	metrics *service.MetricsService
}

// NewQuoteHandler creates a new handler.
func NewQuoteHandler(quotes *service.QuoteService, metrics *service.MetricsService) *QuoteHandler {
	return &QuoteHandler{quotes: quotes, metrics: metrics}
}

// Quote handles GET /demo-trading/quote?symbol=SYM.
func (h *QuoteHandler) Quote(c *gin.Context) {
	payload, cacheHit, err := h.quotes.Quote(c.Request.Context(), c.Query("symbol"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordCacheOperation(cacheHit)

	response.OK(c, "Quote fetched", response.Payload{"quote": payload})
}
