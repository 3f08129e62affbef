package routes

import (
	"fmt"
	"log/slog"
	"net/http"

	"pantry-timeclock/internal/config"
	"pantry-timeclock/internal/storage"
	"pantry-timeclock/internal/timeclock"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

type generateTokenRequest struct {
	VenueID          string  `json:"venue_id" binding:"required"`
	ExpiresInMinutes uint    `json:"expires_in_minutes"`
	GigID            *string `json:"gig_id"`
}

type scanRequest struct {
	Token        string  `json:"token" binding:"required"`
	BreakMinutes int     `json:"break_minutes"`
	ChefNote     *string `json:"chef_note"`
}

type updateStatusRequest struct {
	Status    string  `json:"status" binding:"required"`
	VenueNote *string `json:"venue_note"`
}

type addStaffRequest struct {
	ChefID string `json:"chef_id" binding:"required"`
}

type setStaffActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// TimeRoutes wires the clock token, scan, timesheet, earnings and venue
// staff endpoints under the given group. All of them require a bearer
// session except the QR image and poster, where the token id itself is the
// capability (they are meant to be fetched by the venue's wall display).
func TimeRoutes(r *gin.RouterGroup, svc *timeclock.Service) {

	// QR issuance

	r.POST("/qr/generate", AuthMiddleware(), func(c *gin.Context) {
		var req generateTokenRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
			return
		}

		requester, err := Requester(c)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		token, err := svc.IssueToken(c.Request.Context(), req.VenueID, requester, timeclock.IssueOptions{
			ExpiresInMinutes: req.ExpiresInMinutes,
			GigID:            req.GigID,
		})
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.JSON(http.StatusCreated, token)
	})

	r.GET("/qr/venue/:venueId", AuthMiddleware(), func(c *gin.Context) {
		requester, err := Requester(c)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		tokens, err := svc.ListActiveTokens(c.Request.Context(), c.Param("venueId"), requester)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, tokens)
	})

	r.DELETE("/qr/:tokenId", AuthMiddleware(), func(c *gin.Context) {
		requester, err := Requester(c)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		if err := svc.RevokeToken(c.Request.Context(), c.Param("tokenId"), requester); err != nil {
			AbortWithError(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	})

	// The QR payload is simply the opaque token value; clients may also
	// render it themselves from the JSON issuance response.
	r.GET("/qr/:tokenId/image.png", func(c *gin.Context) {
		token, err := svc.GetToken(c.Request.Context(), c.Param("tokenId"))
		if err != nil {
			AbortWithError(c, err)
			return
		}

		png, err := qrcode.Encode(token.Token, qrcode.Medium, config.QR_IMAGE_SIZE)
		if err != nil {
			slog.Error("Error generating QR image", "token_id", token.ID, "error", err)
			AbortWithError(c, ErrInternalServer)
			return
		}

		c.Data(http.StatusOK, "image/png", png)
	})

	r.GET("/qr/:tokenId/poster", func(c *gin.Context) {
		token, err := svc.GetToken(c.Request.Context(), c.Param("tokenId"))
		if err != nil {
			AbortWithError(c, err)
			return
		}

		venue, err := svc.Venue(c.Request.Context(), token.VenueID)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.HTML(http.StatusOK, "poster", gin.H{
			"VenueName": venue.Name,
			"ImageURL":  fmt.Sprintf("%s/time/qr/%s/image.png", config.Cfg.BaseURL, token.ID),
			"Permanent": token.ExpiresAt == nil,
			"ExpiresAt": token.ExpiresAt,
		})
	})

	// Clock scan

	r.POST("/clock/scan", AuthMiddleware(), func(c *gin.Context) {
		var req scanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
			return
		}

		requester, err := Requester(c)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		shift, action, err := svc.Scan(c.Request.Context(), req.Token, requester.UserID, timeclock.ScanOptions{
			BreakMinutes: req.BreakMinutes,
			ChefNote:     req.ChefNote,
		})
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"action": action,
			"shift":  shift,
		})
	})

	// Timesheet review

	r.GET("/shifts/venue/:venueId", AuthMiddleware(), func(c *gin.Context) {
		requester, err := Requester(c)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		var status *storage.ShiftStatus
		if raw := c.Query("status"); raw != "" {
			parsed, err := parseShiftStatus(raw)
			if err != nil {
				AbortWithError(c, err)
				return
			}
			status = &parsed
		}

		shifts, err := svc.ListShifts(c.Request.Context(), c.Param("venueId"), requester, status)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, shifts)
	})

	r.PATCH("/shifts/:shiftId/status", AuthMiddleware(), func(c *gin.Context) {
		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
			return
		}

		requester, err := Requester(c)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		status, err := parseShiftStatus(req.Status)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		shift, err := svc.UpdateStatus(c.Request.Context(), c.Param("shiftId"), status, req.VenueNote, requester)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, shift)
	})

	r.POST("/shifts/:shiftId/void", AuthMiddleware(), func(c *gin.Context) {
		requester, err := Requester(c)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		shift, err := svc.VoidShift(c.Request.Context(), c.Param("shiftId"), requester)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, shift)
	})

	// Earnings (read-side fold, recomputed on every view)

	r.GET("/earnings/venue/:venueId", AuthMiddleware(), func(c *gin.Context) {
		requester, err := Requester(c)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		report, err := svc.VenueEarnings(c.Request.Context(), c.Param("venueId"), requester)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, report)
	})

	r.GET("/earnings/me", AuthMiddleware(), func(c *gin.Context) {
		requester, err := Requester(c)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		report, err := svc.ChefEarnings(c.Request.Context(), requester.UserID)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, report)
	})

	// Venue staff

	r.POST("/venue/:venueId/staff", AuthMiddleware(), func(c *gin.Context) {
		var req addStaffRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
			return
		}

		requester, err := Requester(c)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		staff, err := svc.AddStaff(c.Request.Context(), c.Param("venueId"), req.ChefID, requester)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.JSON(http.StatusCreated, staff)
	})

	r.PATCH("/venue/:venueId/staff/:staffId", AuthMiddleware(), func(c *gin.Context) {
		var req setStaffActiveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
			return
		}

		requester, err := Requester(c)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		staff, err := svc.SetStaffActive(c.Request.Context(), c.Param("venueId"), c.Param("staffId"), *req.IsActive, requester)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, staff)
	})

	r.GET("/venue/:venueId/staff", AuthMiddleware(), func(c *gin.Context) {
		requester, err := Requester(c)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		staff, err := svc.ListStaff(c.Request.Context(), c.Param("venueId"), requester)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, staff)
	})
}

func parseShiftStatus(raw string) (storage.ShiftStatus, error) {
	switch storage.ShiftStatus(raw) {
	case storage.ShiftOpen, storage.ShiftSubmitted, storage.ShiftApproved, storage.ShiftDisputed, storage.ShiftVoid:
		return storage.ShiftStatus(raw), nil
	default:
		return "", fmt.Errorf("%w: unknown shift status %q", timeclock.ErrInvalidArgument, raw)
	}
}
