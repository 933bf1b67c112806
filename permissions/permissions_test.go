package permissions

import "testing"

func TestCanAccessRoute(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		pathname string
		want     bool
	}{
		{name: "student denied teachers page", role: RoleStudent, pathname: "/dashboard/teachers", want: false},
		{name: "superadmin allowed teachers page", role: RoleSuperadmin, pathname: "/dashboard/teachers", want: true},
		{name: "teacher allowed profile", role: RoleTeacher, pathname: "/dashboard/profile", want: true},
		{name: "teacher allowed students", role: RoleTeacher, pathname: "/dashboard/students", want: true},
		{name: "student denied students", role: RoleStudent, pathname: "/dashboard/students", want: false},
		{name: "student allowed dashboard root", role: RoleStudent, pathname: "/dashboard", want: true},
		{name: "unknown route default deny", role: RoleSuperadmin, pathname: "/admin/secrets", want: false},
		{name: "unknown role denied", role: "guest", pathname: "/dashboard/profile", want: false},
		{name: "empty role denied", role: "", pathname: "/dashboard", want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := CanAccessRoute(tc.role, tc.pathname); got != tc.want {
				t.Fatalf("CanAccessRoute(%q, %q) = %v, want %v", tc.role, tc.pathname, got, tc.want)
			}
		})
	}
}

func TestCanAccessRouteLongestPrefix(t *testing.T) {
	// A nested teachers path must resolve against /dashboard/teachers, not
	// the broader /dashboard entry.
	if CanAccessRoute(RoleStudent, "/dashboard/teachers/42") {
		t.Fatal("student should not reach nested teacher routes via the /dashboard prefix")
	}
	if !CanAccessRoute(RoleSuperadmin, "/dashboard/teachers/42") {
		t.Fatal("superadmin should reach nested teacher routes")
	}
	if !CanAccessRoute(RoleStudent, "/dashboard/profile/settings") {
		t.Fatal("student should reach nested profile routes")
	}
}

func TestCanPerformAction(t *testing.T) {
	for _, role := range []string{RoleStudent, RoleTeacher, RoleSuperadmin} {
		if !CanPerformAction(role, "view") {
			t.Errorf("view should be allowed for %s", role)
		}
		if !CanPerformAction(role, "edit") {
			t.Errorf("%s has edit capabilities, edit should pass the coarse check", role)
		}
	}

	if CanPerformAction("guest", "view") {
		t.Error("unknown role should fail every action")
	}
	if CanPerformAction(RoleSuperadmin, "transmogrify") {
		t.Error("unknown action should be denied")
	}
}

func TestCanEdit(t *testing.T) {
	tests := []struct {
		role     string
		resource string
		want     bool
	}{
		{RoleStudent, "profile", true},
		{RoleStudent, "marks", false},
		{RoleStudent, "students", false},
		{RoleTeacher, "marks", true},
		{RoleTeacher, "students", false},
		{RoleTeacher, "teachers", false},
		{RoleSuperadmin, "students", true},
		{RoleSuperadmin, "teachers", true},
		{RoleSuperadmin, "marks", true},
		{"guest", "profile", false},
	}

	for _, tc := range tests {
		if got := CanEdit(tc.role, tc.resource); got != tc.want {
			t.Errorf("CanEdit(%q, %q) = %v, want %v", tc.role, tc.resource, got, tc.want)
		}
	}
}

func TestCanView(t *testing.T) {
	tests := []struct {
		role     string
		resource string
		want     bool
	}{
		{RoleStudent, "profile", true},
		{RoleStudent, "marks", true},
		{RoleStudent, "students", false},
		{RoleStudent, "teachers", false},
		{RoleTeacher, "students", true},
		{RoleTeacher, "marks", true},
		{RoleTeacher, "teachers", false},
		{RoleSuperadmin, "students", true},
		{RoleSuperadmin, "teachers", true},
		{"guest", "profile", false},
	}

	for _, tc := range tests {
		if got := CanView(tc.role, tc.resource); got != tc.want {
			t.Errorf("CanView(%q, %q) = %v, want %v", tc.role, tc.resource, got, tc.want)
		}
	}
}

func TestDefaultLandingRoute(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{RoleStudent, "/dashboard/profile"},
		{RoleTeacher, "/dashboard/students"},
		{RoleSuperadmin, "/dashboard/students"},
		{"", "/login"},
		{"guest", "/login"},
	}

	for _, tc := range tests {
		if got := DefaultLandingRoute(tc.role); got != tc.want {
			t.Errorf("DefaultLandingRoute(%q) = %q, want %q", tc.role, got, tc.want)
		}
	}
}

func TestAccessibleRoutes(t *testing.T) {
	routes := AccessibleRoutes(RoleTeacher)
	if len(routes) != 2 {
		t.Fatalf("expected 2 routes for teacher, got %v", routes)
	}

	if got := AccessibleRoutes("nobody"); len(got) != 1 || got[0] != "/login" {
		t.Fatalf("unknown role should only see /login, got %v", got)
	}
}
