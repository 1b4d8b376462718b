package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/TRrajputDEV/Pixels-sub000/internal/middleware"
	"github.com/TRrajputDEV/Pixels-sub000/internal/model"
	"github.com/TRrajputDEV/Pixels-sub000/internal/service"
)

const defaultPageLimit = 10

type VideoHandler struct {
	feed   *service.FeedService
	videos *service.VideoService
}

func NewVideoHandler(feed *service.FeedService, videos *service.VideoService) *VideoHandler {
	return &VideoHandler{feed: feed, videos: videos}
}

// List handles GET /api/videos?page&limit&sortBy&sortType&ownerId&published&query
func (h *VideoHandler) List(c fiber.Ctx) error {
	page, errMsg := middleware.ParsePositiveInt(fiber.Query[string](c, "page"), 1, "page")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	limit, errMsg := middleware.ParsePositiveInt(fiber.Query[string](c, "limit"), defaultPageLimit, "limit")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	published, errMsg := middleware.ParseOptionalBool(fiber.Query[string](c, "published"), "published")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	search, errMsg := middleware.ValidateSearch(fiber.Query[string](c, "query"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var ownerID string
	if raw := fiber.Query[string](c, "ownerId"); raw != "" {
		if ownerID, errMsg = middleware.ValidateOwnerID(raw); errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
		}
	}

	result, err := h.feed.ListVideos(c.Context(), service.VideoQuery{
		OwnerID:   ownerID,
		Published: published,
		Search:    search,
		SortBy:    fiber.Query[string](c, "sortBy"),
		SortType:  fiber.Query[string](c, "sortType"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return serviceError(c, err, "list videos")
	}
	return c.JSON(result)
}

// Get handles GET /api/videos/:videoId
func (h *VideoHandler) Get(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateVideoID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	video, err := h.feed.GetVideo(c.Context(), videoID)
	if err != nil {
		return serviceError(c, err, "lookup video")
	}
	return c.JSON(video)
}

// Create handles POST /api/videos
func (h *VideoHandler) Create(c fiber.Ctx) error {
	var req model.CreateVideoRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON")
	}

	var errMsg string
	if req.OwnerID, errMsg = middleware.ValidateOwnerID(req.OwnerID); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	if req.Title, req.Description, errMsg = middleware.ValidateVideoText(req.Title, req.Description); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	video, err := h.videos.Create(c.Context(), req)
	if err != nil {
		return serviceError(c, err, "create video")
	}
	return c.Status(fiber.StatusCreated).JSON(video)
}
