package generate

import (
	"fmt"
	"strings"
	"time"

	"github.com/couchcryptid/fireems-testdata/internal/domain"
)

const defaultEmailDomain = "fireems.test"

// UserOptions overrides user fields. Zero values are sampled.
type UserOptions struct {
	ID           string
	DepartmentID string
	// StationID is optional; users without one are department-level staff.
	StationID   string
	Role        string
	EmailDomain string
	// Active forces the account state. When nil about nine in ten accounts
	// are active.
	Active *bool
}

// User generates one user account.
func (g *Generator) User(opts UserOptions) (domain.User, error) {
	role := opts.Role
	if role == "" {
		role = mustChoose(g.rng, userRoles)
	}
	ranks, ok := ranksByRole[role]
	if !ok {
		return domain.User{}, fmt.Errorf("%w: role %q", ErrInvalidOverride, role)
	}

	departmentID := opts.DepartmentID
	if departmentID == "" {
		departmentID = g.newID()
	}
	id := opts.ID
	if id == "" {
		id = g.newID()
	}
	emailDomain := opts.EmailDomain
	if emailDomain == "" {
		emailDomain = defaultEmailDomain
	}

	first, last := g.personName()
	email := fmt.Sprintf("%s.%s%d@%s",
		strings.ToLower(first), strings.ToLower(last), g.intBetween(1, 999), emailDomain)

	active := g.rng.Float64() < 0.9
	if opts.Active != nil {
		active = *opts.Active
	}

	created := g.daysAgo(30, 1500)
	var lastLogin *time.Time
	if active {
		t := g.updatedAfter(created)
		lastLogin = &t
	}

	return domain.User{
		ID:             id,
		DepartmentID:   departmentID,
		StationID:      opts.StationID,
		Email:          email,
		FirstName:      first,
		LastName:       last,
		Role:           role,
		Rank:           mustChoose(g.rng, ranks),
		Phone:          g.phone(g.intBetween(201, 989)),
		Permissions:    domain.PermissionsForRole(role),
		Certifications: sampleDistinct(g.rng, certifications, g.intBetween(1, 4)),
		IsActive:       active,
		LastLogin:      lastLogin,
		CreatedAt:      created,
		UpdatedAt:      g.updatedAfter(created),
	}, nil
}
