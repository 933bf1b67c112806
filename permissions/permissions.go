package permissions

import "strings"

// Role names. Capability sets are declared per role in full - adding a role
// means adding one entry here, never extending another role's definition.
const (
	RoleStudent    = "student"
	RoleTeacher    = "teacher"
	RoleSuperadmin = "superadmin"
)

// Capability lists what a role may look at, change, and navigate to.
type Capability struct {
	CanView   []string
	CanEdit   []string
	CanAccess []string
}

var roleDefinitions = map[string]Capability{
	RoleStudent: {
		CanView:   []string{"profile", "marks"},
		CanEdit:   []string{"profile"},
		CanAccess: []string{"/dashboard/profile"},
	},
	RoleTeacher: {
		CanView:   []string{"students", "marks", "profile"},
		CanEdit:   []string{"marks"},
		CanAccess: []string{"/dashboard/students", "/dashboard/profile"},
	},
	RoleSuperadmin: {
		CanView:   []string{"students", "teachers", "marks", "profile"},
		CanEdit:   []string{"students", "teachers", "marks"},
		CanAccess: []string{"/dashboard/students", "/dashboard/teachers", "/dashboard/profile"},
	},
}

// routeAccess maps dashboard routes to the roles allowed on them.
// Routes with no entry are denied for everyone.
var routeAccess = map[string][]string{
	"/dashboard/students": {RoleTeacher, RoleSuperadmin},
	"/dashboard/teachers": {RoleSuperadmin},
	"/dashboard/profile":  {RoleStudent, RoleTeacher, RoleSuperadmin},
	"/dashboard":          {RoleStudent, RoleTeacher, RoleSuperadmin},
}

// IsValidRole reports whether role names one of the declared roles.
func IsValidRole(role string) bool {
	_, ok := roleDefinitions[role]
	return ok
}

// CanAccessRoute checks route access: exact match first, then the longest
// matching path prefix, so /dashboard/teachers never falls through to the
// broader /dashboard entry. Unknown routes deny unconditionally.
func CanAccessRoute(role, pathname string) bool {
	if !IsValidRole(role) {
		return false
	}

	if roles, ok := routeAccess[pathname]; ok {
		return contains(roles, role)
	}

	var bestRoute string
	for route := range routeAccess {
		if strings.HasPrefix(pathname, route+"/") && len(route) > len(bestRoute) {
			bestRoute = route
		}
	}
	if bestRoute == "" {
		return false
	}
	return contains(routeAccess[bestRoute], role)
}

// CanPerformAction is the coarse page-level check: any authenticated role
// may view, and edit/create/delete require a non-empty edit capability set.
// Handlers use CanEdit for the per-resource decision.
func CanPerformAction(role, action string) bool {
	perms, ok := roleDefinitions[role]
	if !ok {
		return false
	}

	switch action {
	case "view":
		return true
	case "edit", "create", "delete":
		return len(perms.CanEdit) > 0
	}
	return false
}

// CanEdit reports whether role may modify the given resource type
// ("students", "teachers", "marks", "profile").
func CanEdit(role, resource string) bool {
	perms, ok := roleDefinitions[role]
	if !ok {
		return false
	}
	return contains(perms.CanEdit, resource)
}

// CanView reports whether role may read the given resource type.
func CanView(role, resource string) bool {
	perms, ok := roleDefinitions[role]
	if !ok {
		return false
	}
	return contains(perms.CanView, resource)
}

// AccessibleRoutes returns the routes a role may navigate to. Unknown roles
// get only the login page.
func AccessibleRoutes(role string) []string {
	perms, ok := roleDefinitions[role]
	if !ok {
		return []string{"/login"}
	}
	routes := make([]string, len(perms.CanAccess))
	copy(routes, perms.CanAccess)
	return routes
}

// DefaultLandingRoute returns where a freshly logged-in user is sent.
func DefaultLandingRoute(role string) string {
	switch role {
	case RoleStudent:
		return "/dashboard/profile"
	case RoleTeacher, RoleSuperadmin:
		return "/dashboard/students"
	default:
		return "/login"
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
