package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/healthtrack/internal/domain"
	"github.com/nfrund/healthtrack/internal/rendering"
	"github.com/nfrund/healthtrack/internal/view"
)

// FamilyHandler manages linked family members.
type FamilyHandler struct{}

// NewFamilyHandler creates a new FamilyHandler.
func NewFamilyHandler() *FamilyHandler {
	return &FamilyHandler{}
}

// FamilyGet lists members and pending requests (GET /family).
func (h *FamilyHandler) FamilyGet(c echo.Context) error {
	ctx := c.Request().Context()
	members, err := api(c).FamilyMembers(ctx)
	if err := degrade(c, err, "Family members"); err != nil {
		return err
	}
	reqs, err := api(c).FamilyRequests(ctx)
	if err := degrade(c, err, "Family requests"); err != nil {
		return err
	}
	return page(c, "Keluarga", "/family", view.FamilyPage(members, reqs))
}

// Invite sends an invitation (POST /family/invite).
func (h *FamilyHandler) Invite(c echo.Context) error {
	var req domain.FamilyInviteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&req); err != nil {
		view.SetFlashError(c, validationMessage(err))
		return c.Redirect(http.StatusSeeOther, "/family")
	}
	if err := api(c).InviteFamilyMember(c.Request().Context(), req); err != nil {
		return actionFailed(c, err, "Gagal mengirim undangan.", "/family")
	}
	return done(c, "Undangan terkirim.", "/family")
}

// Approve accepts a received request (POST /family/requests/:id/approve).
func (h *FamilyHandler) Approve(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := api(c).ApproveFamilyRequest(c.Request().Context(), id); err != nil {
		return actionFailed(c, err, "Gagal menerima permintaan.", "/family")
	}
	return done(c, "Permintaan diterima.", "/family")
}

// Reject declines a received request (POST /family/requests/:id/reject).
func (h *FamilyHandler) Reject(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := api(c).RejectFamilyRequest(c.Request().Context(), id); err != nil {
		return actionFailed(c, err, "Gagal menolak permintaan.", "/family")
	}
	return done(c, "Permintaan ditolak.", "/family")
}

// Remove unlinks a member (DELETE /family/:id).
func (h *FamilyHandler) Remove(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := api(c).RemoveFamilyMember(c.Request().Context(), id); err != nil {
		return err
	}
	return rendering.NoContent(c)
}

// MemberHealth shows a member's health summary (GET /family/:id/health).
func (h *FamilyHandler) MemberHealth(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	fh, err := api(c).FamilyMemberHealth(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return page(c, fh.MemberName, "/family", view.FamilyHealthPage(fh))
}
