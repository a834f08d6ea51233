// Package session carries the logged-in employee snapshot through a request.
//
// The snapshot is taken from the roster at login and travels inside the
// signed access token, so department and job title copied onto new leave
// requests reflect the roster at login time.
package session

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

type Role string

const (
	RoleStaff   Role = "STAFF"
	RoleManager Role = "MANAGER"
	RoleHR      Role = "HR"
)

var ErrUnknownRole = errors.New("unknown role")

// ParseRole accepts the canonical names and the Turkish labels used in
// roster spreadsheets (Personel, Yönetici, İK).
func ParseRole(v string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "staff", "personel":
		return RoleStaff, nil
	case "manager", "yönetici", "yonetici":
		return RoleManager, nil
	case "hr", "ik", "i\u0307k", "ık":
		return RoleHR, nil
	}
	return "", ErrUnknownRole
}

type Actor struct {
	RegistryNo    string `json:"registry_no"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	ApproverEmail string `json:"approver_email"`
	JobTitle      string `json:"job_title"`
	Department    string `json:"department"`
	Phone         string `json:"phone"`
	Role          Role   `json:"role"`
}

func (a Actor) IsHR() bool {
	return a.Role == RoleHR
}

func (a Actor) CanApprove() bool {
	return a.Role == RoleManager || a.Role == RoleHR
}

const ginKey = "session_actor"

func Set(c *gin.Context, a Actor) {
	c.Set(ginKey, a)
	c.Set("role", string(a.Role))
	c.Set("registry_no", a.RegistryNo)
}

func FromGin(c *gin.Context) (Actor, bool) {
	v, ok := c.Get(ginKey)
	if !ok {
		return Actor{}, false
	}
	a, ok := v.(Actor)
	return a, ok
}
