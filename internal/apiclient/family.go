package apiclient

import (
	"context"
	"net/http"

	"github.com/nfrund/healthtrack/internal/domain"
)

// InviteFamilyMember sends a link request to another account.
func (c *Client) InviteFamilyMember(ctx context.Context, req domain.FamilyInviteRequest) error {
	return c.do(ctx, call{op: "family.invite", method: http.MethodPost, path: "/family/invite", body: req}, nil)
}

// FamilyMembers lists approved links.
func (c *Client) FamilyMembers(ctx context.Context) ([]domain.FamilyMember, error) {
	members := []domain.FamilyMember{}
	if err := c.do(ctx, call{op: "family.members", method: http.MethodGet, path: "/family/members"}, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// FamilyRequests lists pending invitations in both directions.
func (c *Client) FamilyRequests(ctx context.Context) (*domain.FamilyRequests, error) {
	var r domain.FamilyRequests
	if err := c.do(ctx, call{op: "family.requests", method: http.MethodGet, path: "/family/requests"}, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ApproveFamilyRequest accepts a received invitation.
func (c *Client) ApproveFamilyRequest(ctx context.Context, id uint) error {
	return c.do(ctx, call{op: "family.approve", method: http.MethodPut, path: idPath("/family/approve", id, "")}, nil)
}

// RejectFamilyRequest declines a received invitation.
func (c *Client) RejectFamilyRequest(ctx context.Context, id uint) error {
	return c.do(ctx, call{op: "family.reject", method: http.MethodPut, path: idPath("/family/reject", id, "")}, nil)
}

// FamilyMemberHealth returns a linked member's latest health data.
func (c *Client) FamilyMemberHealth(ctx context.Context, id uint) (*domain.FamilyHealth, error) {
	var h domain.FamilyHealth
	if err := c.do(ctx, call{op: "family.member_health", method: http.MethodGet, path: idPath("/family", id, "/health")}, &h); err != nil {
		return nil, err
	}
	if h.RecentSymptoms == nil {
		h.RecentSymptoms = []domain.Symptom{}
	}
	return &h, nil
}

// RemoveFamilyMember deletes a link.
func (c *Client) RemoveFamilyMember(ctx context.Context, id uint) error {
	return c.do(ctx, call{op: "family.remove", method: http.MethodDelete, path: idPath("/family", id, "")}, nil)
}
