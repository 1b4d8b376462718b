package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/TRrajputDEV/Pixels-sub000/internal/discovery"
	"github.com/TRrajputDEV/Pixels-sub000/internal/metrics"
	"github.com/TRrajputDEV/Pixels-sub000/internal/middleware"
)

type DiscoveryHandler struct {
	classifier *discovery.Classifier
	tagger     *discovery.Tagger
}

func NewDiscoveryHandler(classifier *discovery.Classifier, tagger *discovery.Tagger) *DiscoveryHandler {
	return &DiscoveryHandler{classifier: classifier, tagger: tagger}
}

type classifyRequest struct {
	Text *string `json:"text"`
}

type tagsRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type tagsResponse struct {
	Tags     []string           `json:"tags"`
	Mood     discovery.Mood     `json:"mood"`
	Category discovery.Category `json:"category"`
}

// Classify handles POST /api/discovery/classify
func (h *DiscoveryHandler) Classify(c fiber.Ctx) error {
	var req classifyRequest
	if err := c.Bind().JSON(&req); err != nil || req.Text == nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "text must be a string")
	}

	result := h.classifier.Classify(discovery.Normalize(*req.Text))
	metrics.Classifications.WithLabelValues(categoryLabel(result.Category)).Inc()
	return c.JSON(result)
}

// Tags handles POST /api/discovery/tags
func (h *DiscoveryHandler) Tags(c fiber.Ctx) error {
	var req tagsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON")
	}

	t := h.tagger.Tag(req.Title, req.Description)
	metrics.Classifications.WithLabelValues(categoryLabel(t.Category)).Inc()
	return c.JSON(tagsResponse{Tags: t.Tags, Mood: t.Mood, Category: t.Category})
}

func categoryLabel(c discovery.Category) string {
	if c == "" {
		return "none"
	}
	return string(c)
}
