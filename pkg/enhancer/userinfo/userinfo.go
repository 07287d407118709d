// File: userinfo.go
// Title: User Info Enhancer
// Description: The acting user for an enhanced error: user id, session,
//              roles, auth token, IP address, user agent and the actions
//              that led up to the error.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation

// Package userinfo provides the UserInfo enhancer.
package userinfo

import (
	"slices"

	"github.com/msto63/errenhanced/pkg/core/validation"
	"github.com/msto63/errenhanced/pkg/enhancer"
)

// Field names contributed by UserInfo
const (
	FieldUser          = "_user"
	FieldSessionID     = "_sessionId"
	FieldRoles         = "_roles"
	FieldAuthToken     = "_authToken"
	FieldIPAddress     = "_ipAddress"
	FieldUserAgent     = "_userAgent"
	FieldActionHistory = "_actionHistory"
)

// UserInfo holds user context. The action history grows without bound,
// unlike the event history of ApplicationState.
type UserInfo struct {
	user          string
	sessionID     string
	roles         []string
	authToken     string
	ipAddress     string
	userAgent     string
	actionHistory []string
}

// New creates an empty UserInfo
func New() *UserInfo {
	return &UserInfo{
		roles:         []string{},
		actionHistory: []string{},
	}
}

// User returns the user identifier
func (u *UserInfo) User() string {
	return u.user
}

// SetUser sets the user identifier
func (u *UserInfo) SetUser(user string) (*UserInfo, error) {
	if r := validation.NonEmptyString(user); !r.Valid {
		return u, r.ToError("user", user)
	}
	u.user = user
	return u, nil
}

// SessionID returns the session identifier
func (u *UserInfo) SessionID() string {
	return u.sessionID
}

// SetSessionID sets the session identifier
func (u *UserInfo) SetSessionID(id string) (*UserInfo, error) {
	if r := validation.NonEmptyString(id); !r.Valid {
		return u, r.ToError("sessionId", id)
	}
	u.sessionID = id
	return u, nil
}

// Roles returns a copy of the roles
func (u *UserInfo) Roles() []string {
	return slices.Clone(u.roles)
}

// SetRoles replaces the roles. Every role must be non-blank.
func (u *UserInfo) SetRoles(roles []string) (*UserInfo, error) {
	for _, role := range roles {
		if r := validation.NonEmptyString(role); !r.Valid {
			return u, r.ToError("roles", role)
		}
	}
	u.roles = slices.Clone(roles)
	if u.roles == nil {
		u.roles = []string{}
	}
	return u, nil
}

// AuthToken returns the auth token
func (u *UserInfo) AuthToken() string {
	return u.authToken
}

// SetAuthToken sets the auth token
func (u *UserInfo) SetAuthToken(token string) (*UserInfo, error) {
	if r := validation.NonEmptyString(token); !r.Valid {
		return u, r.ToError("authToken", token)
	}
	u.authToken = token
	return u, nil
}

// IPAddress returns the user's IP address
func (u *UserInfo) IPAddress() string {
	return u.ipAddress
}

// SetIPAddress sets the user's IP address
func (u *UserInfo) SetIPAddress(ip string) (*UserInfo, error) {
	if r := validation.NonEmptyString(ip); !r.Valid {
		return u, r.ToError("ipAddress", ip)
	}
	u.ipAddress = ip
	return u, nil
}

// UserAgent returns the user agent
func (u *UserInfo) UserAgent() string {
	return u.userAgent
}

// SetUserAgent sets the user agent
func (u *UserInfo) SetUserAgent(agent string) (*UserInfo, error) {
	if r := validation.NonEmptyString(agent); !r.Valid {
		return u, r.ToError("userAgent", agent)
	}
	u.userAgent = agent
	return u, nil
}

// ActionHistory returns a copy of the recorded actions, oldest first
func (u *UserInfo) ActionHistory() []string {
	return slices.Clone(u.actionHistory)
}

// AddActionToHistory appends a non-blank action
func (u *UserInfo) AddActionToHistory(action string) (*UserInfo, error) {
	if r := validation.NonEmptyString(action); !r.Valid {
		return u, r.ToError("action", action)
	}
	u.actionHistory = append(u.actionHistory, action)
	return u, nil
}

// Fields implements enhancer.Enhancer
func (u *UserInfo) Fields() []enhancer.Field {
	return []enhancer.Field{
		{Name: FieldUser, Value: u.user},
		{Name: FieldSessionID, Value: u.sessionID},
		{Name: FieldRoles, Value: u.roles},
		{Name: FieldAuthToken, Value: u.authToken},
		{Name: FieldIPAddress, Value: u.ipAddress},
		{Name: FieldUserAgent, Value: u.userAgent},
		{Name: FieldActionHistory, Value: u.actionHistory},
	}
}

// Clone implements enhancer.Enhancer
func (u *UserInfo) Clone() enhancer.Enhancer {
	c := *u
	c.roles = slices.Clone(u.roles)
	c.actionHistory = slices.Clone(u.actionHistory)
	return &c
}
