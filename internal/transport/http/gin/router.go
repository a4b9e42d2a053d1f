package httpgin

import (
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/parkgo/parkgo/internal/domain"
	"github.com/parkgo/parkgo/internal/service"
	"github.com/parkgo/parkgo/internal/service/lots"
	"github.com/parkgo/parkgo/internal/service/query"
	"github.com/parkgo/parkgo/internal/service/reservation"
	"github.com/parkgo/parkgo/internal/service/spots"
	"github.com/parkgo/parkgo/internal/service/users"
	"github.com/parkgo/parkgo/internal/tasks"
)

type Config struct {
	JWTSecret  string
	ExportsDir string
}

func NewRouter(
	svcs *service.Services,
	queue reservation.Enqueuer,
	logger *slog.Logger,
	cfg Config,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api", AuthMiddleware(cfg.JWTSecret))
	{
		api.GET("/lots", handleListLots(svcs))
		api.GET("/lots/search", handleSearchLots(svcs))
		api.GET("/lots/:id", handleGetLot(svcs))
		api.GET("/lots/:id/spots", handleListLotSpots(svcs))

		api.POST("/reservations", handleBook(svcs))
		api.POST("/reservations/:id/advance", handleAdvance(svcs))
		api.GET("/reservations", handleListReservations(svcs))
		api.GET("/summary", handleUserSummary(svcs))

		api.POST("/exports/csv", handleExportCSV(queue))
		api.GET("/exports/download/:filename", handleDownloadExport(cfg.ExportsDir))
	}

	admin := r.Group("/api/admin", AuthMiddleware(cfg.JWTSecret))
	{
		admin.POST("/lots", handleCreateLot(svcs))
		admin.PUT("/lots/:id", handleUpdateLot(svcs))
		admin.DELETE("/lots/:id", handleDeleteLot(svcs))

		admin.POST("/spots/:id/toggle", handleToggleSpot(svcs))
		admin.DELETE("/spots/:id", handleRemoveSpot(svcs))
		admin.GET("/spots/:id/reservation", handleSpotReservation(svcs))

		admin.GET("/users", handleListUsers(svcs))
		admin.DELETE("/users/:id", handleDeleteUser(svcs))
		admin.GET("/summary", handleAdminSummary(svcs))
	}

	return r
}

// --- Handlers with Swagger annotations ---

// @Summary  List parking lots
// @Success  200  {array}  LotResponse
// @Router   /api/lots [get]
func handleListLots(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		found, err := svcs.Query.ListLots(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 60s
		writeJSONWithCache(c, http.StatusOK, toLotResponses(found), "private, max-age=60", true)
	}
}

// @Summary  Search lots by location or pincode
// @Param    location  query  string  false  "location substring"
// @Param    pincode   query  string  false  "pincode prefix"
// @Success  200  {array}  LotResponse
// @Router   /api/lots/search [get]
func handleSearchLots(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		found, err := svcs.Lots.Search(c.Request.Context(), c.Query("location"), c.Query("pincode"))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, toLotResponses(found))
	}
}

// @Summary  Get lot
// @Param    id  path  int  true  "Lot ID"
// @Success  200  {object}  LotResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /api/lots/{id} [get]
func handleGetLot(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		lot, err := svcs.Lots.Get(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, toLotResponse(*lot))
	}
}

// @Summary  List a lot's spots
// @Param    id  path  int  true  "Lot ID"
// @Success  200  {array}  SpotResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /api/lots/{id}/spots [get]
func handleListLotSpots(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		found, err := svcs.Query.LotSpots(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 15s (lists go stale faster)
		writeJSONWithCache(c, http.StatusOK, toSpotResponses(found), "private, max-age=15", true)
	}
}

// @Summary  Book a spot
// @Param    req  body  BookReservationRequest  true  "payload"
// @Success  201  {object}  map[string]int64
// @Failure  409  {object}  ErrorResponse  "spot unavailable / duplicate vehicle"
// @Failure  429  {object}  ErrorResponse  "rate limited"
// @Router   /api/reservations [post]
func handleBook(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BookReservationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		spotID := req.SpotID
		if spotID == 0 {
			if req.LotID == 0 {
				badRequest(c, "either spot_id or lot_id is required")
				return
			}
			var err error
			spotID, err = svcs.Lots.FirstAvailableSpot(c.Request.Context(), req.LotID)
			if err != nil {
				respondErr(c, err)
				return
			}
		}

		actor := actorFrom(c)
		id, err := svcs.Reservation.Book(c.Request.Context(), actor.UserID, spotID, req.VehicleNumber)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"reservation_id": id, "spot_id": spotID})
	}
}

// @Summary  Advance a reservation (park in / park out)
// @Param    id  path  int  true  "Reservation ID"
// @Success  200  {object}  ReservationResponse
// @Failure  409  {object}  ErrorResponse  "already completed"
// @Router   /api/reservations/{id}/advance [post]
func handleAdvance(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		r, err := svcs.Reservation.Advance(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, toReservationResponse(*r))
	}
}

// @Summary  List the caller's reservations
// @Success  200  {array}  ReservationDetailResponse
// @Router   /api/reservations [get]
func handleListReservations(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := actorFrom(c)
		list, err := svcs.Reservation.ListByUser(c.Request.Context(), actor.UserID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, toReservationDetailResponses(list))
	}
}

// @Summary  Caller's per-lot visit summary
// @Success  200  {array}  domain.UserLotSummary
// @Router   /api/summary [get]
func handleUserSummary(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := actorFrom(c)
		sum, err := svcs.Query.UserSummary(c.Request.Context(), actor.UserID)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, sum, "private, max-age=60", true)
	}
}

// @Summary  Request a CSV export of the caller's reservations
// @Success  202  {object}  map[string]string
// @Router   /api/exports/csv [post]
func handleExportCSV(queue reservation.Enqueuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := actorFrom(c)
		err := queue.Enqueue(c.Request.Context(), tasks.TypeExportCSV, tasks.ExportCSVPayload{
			UserID: actor.UserID,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"status": "export started"})
	}
}

// @Summary  Download a finished CSV export
// @Param    filename  path  string  true  "export file name"
// @Success  200  {file}  file
// @Failure  404  {object}  ErrorResponse
// @Router   /api/exports/download/{filename} [get]
func handleDownloadExport(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := filepath.Base(c.Param("filename"))
		// Exports are written as export_user_<id>.csv; anything else is not
		// ours to serve.
		if !strings.HasPrefix(name, "export_user_") || !strings.HasSuffix(name, ".csv") {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "export not found"})
			return
		}
		c.FileAttachment(filepath.Join(dir, name), name)
	}
}

// @Summary  Create lot with its initial spots
// @Param    req  body  CreateLotRequest  true  "payload"
// @Success  201  {object}  map[string]int64
// @Failure  403  {object}  ErrorResponse
// @Router   /api/admin/lots [post]
func handleCreateLot(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateLotRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := svcs.Lots.Create(c.Request.Context(), actorFrom(c), domain.Lot{
			LocationName:  req.LocationName,
			Address:       req.Address,
			Pincode:       req.Pincode,
			Price:         req.Price,
			NumberOfSpots: *req.NumberOfSpots,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"lot_id": id})
	}
}

// @Summary  Update lot and resize its spot set
// @Param    id   path  int               true  "Lot ID"
// @Param    req  body  UpdateLotRequest  true  "payload"
// @Success  204
// @Failure  409  {object}  ErrorResponse  "occupied spots block the shrink"
// @Router   /api/admin/lots/{id} [put]
func handleUpdateLot(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req UpdateLotRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		err := svcs.Lots.Update(c.Request.Context(), actorFrom(c), domain.Lot{
			ID:            id,
			LocationName:  req.LocationName,
			Address:       req.Address,
			Pincode:       req.Pincode,
			Price:         req.Price,
			NumberOfSpots: *req.NumberOfSpots,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Delete lot
// @Param    id  path  int  true  "Lot ID"
// @Success  204
// @Failure  409  {object}  ErrorResponse  "lot has occupied spots"
// @Router   /api/admin/lots/{id} [delete]
func handleDeleteLot(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		if err := svcs.Lots.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Toggle spot between available and unavailable
// @Param    id  path  int  true  "Spot ID"
// @Success  200  {object}  map[string]string
// @Failure  409  {object}  ErrorResponse  "spot is occupied"
// @Router   /api/admin/spots/{id}/toggle [post]
func handleToggleSpot(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		status, err := svcs.Spots.Toggle(c.Request.Context(), actorFrom(c), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": string(status)})
	}
}

// @Summary  Remove a single spot
// @Param    id  path  int  true  "Spot ID"
// @Success  204
// @Failure  409  {object}  ErrorResponse  "spot is occupied"
// @Router   /api/admin/spots/{id} [delete]
func handleRemoveSpot(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		if err := svcs.Spots.Remove(c.Request.Context(), actorFrom(c), id); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Who is parked on this spot
// @Param    id  path  int  true  "Spot ID"
// @Success  200  {object}  ReservationDetailResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /api/admin/spots/{id}/reservation [get]
func handleSpotReservation(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		d, err := svcs.Reservation.ActiveBySpot(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, ReservationDetailResponse{
			ReservationResponse: toReservationResponse(d.Reservation),
			LotID:               d.LotID,
			LocationName:        d.LocationName,
			Address:             d.Address,
		})
	}
}

// @Summary  List registered users
// @Success  200  {array}  UserResponse
// @Failure  403  {object}  ErrorResponse
// @Router   /api/admin/users [get]
func handleListUsers(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := svcs.Users.List(c.Request.Context(), actorFrom(c))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, toUserResponses(list))
	}
}

// @Summary  Delete a user and their history
// @Param    id  path  int  true  "User ID"
// @Success  204
// @Failure  409  {object}  ErrorResponse  "user has an active reservation"
// @Router   /api/admin/users/{id} [delete]
func handleDeleteUser(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		if err := svcs.Users.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Per-lot revenue and occupancy summary
// @Success  200  {array}  domain.LotSummary
// @Failure  403  {object}  ErrorResponse
// @Router   /api/admin/summary [get]
func handleAdminSummary(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		sum, err := svcs.Query.AdminSummary(c.Request.Context(), actorFrom(c))
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, sum, "private, max-age=60", true)
	}
}

// --- Helpers ---

func parseInt64Param(c *gin.Context, name string) (int64, bool) {
	s := c.Param(name)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	switch {
	// authorization
	case errors.Is(err, lots.ErrNotAdmin),
		errors.Is(err, spots.ErrNotAdmin),
		errors.Is(err, users.ErrNotAdmin),
		errors.Is(err, query.ErrNotAdmin):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "admin privileges required"})
		return

	// lots service
	case errors.Is(err, lots.ErrLotNotFound), errors.Is(err, query.ErrLotNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "lot not found"})
		return
	case errors.Is(err, lots.ErrCapacityFloor):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "occupied spots block the shrink"})
		return
	case errors.Is(err, lots.ErrLotOccupied):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "lot has occupied spots"})
		return
	case errors.Is(err, lots.ErrInvalidCapacity):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid capacity"})
		return
	case errors.Is(err, lots.ErrNoSpotAvailable):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "no spot available"})
		return

	// spots service
	case errors.Is(err, spots.ErrSpotNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "spot not found"})
		return
	case errors.Is(err, spots.ErrSpotOccupied):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "spot is occupied"})
		return

	// reservation service
	case errors.Is(err, reservation.ErrSpotNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "spot not found"})
		return
	case errors.Is(err, reservation.ErrSpotUnavailable):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "spot unavailable"})
		return
	case errors.Is(err, reservation.ErrDuplicateVehicle):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "vehicle already has an open reservation"})
		return
	case errors.Is(err, reservation.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "reservation not found"})
		return
	case errors.Is(err, reservation.ErrAlreadyCompleted):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "reservation already completed"})
		return
	case errors.Is(err, reservation.ErrNoActiveReservation):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no open reservation for this spot"})
		return
	case errors.Is(err, reservation.ErrRateLimited):
		c.Header("Retry-After", "60")
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limited"})
		return

	// users service
	case errors.Is(err, users.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
		return
	case errors.Is(err, users.ErrSelfDelete):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "cannot delete own account"})
		return
	case errors.Is(err, users.ErrUserHasOpen):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "user has an open reservation"})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
