package access

import (
	"testing"

	"github.com/Eddy-C127/dance-academy/core/user"
)

func TestDecide(t *testing.T) {
	parent := NewSession("u1", user.RoleParent)
	teacher := NewSession("u2", user.RoleTeacher)
	admin := NewSession("u3", user.RoleAdmin)

	tests := []struct {
		name     string
		sess     Session
		required RoleClass
		want     Verdict
	}{
		// no session always routes to login, whatever the route wants
		{name: "anonymous/any", sess: Anonymous, required: AnyAuthenticated, want: RedirectToLogin},
		{name: "anonymous/admin", sess: Anonymous, required: AdminOnly, want: RedirectToLogin},
		{name: "anonymous/teacher-hinted", sess: Anonymous, required: TeacherHinted, want: RedirectToLogin},

		// admin-only routes bounce non-admins home
		{name: "parent/admin", sess: parent, required: AdminOnly, want: RedirectToHome},
		{name: "teacher/admin", sess: teacher, required: AdminOnly, want: RedirectToHome},
		{name: "admin/admin", sess: admin, required: AdminOnly, want: Allow},

		// any authenticated identity passes everywhere else
		{name: "parent/any", sess: parent, required: AnyAuthenticated, want: Allow},
		{name: "teacher/any", sess: teacher, required: AnyAuthenticated, want: Allow},
		{name: "admin/any", sess: admin, required: AnyAuthenticated, want: Allow},

		// teacher-hinted routes are deliberately open to all authenticated roles
		{name: "parent/teacher-hinted", sess: parent, required: TeacherHinted, want: Allow},
		{name: "teacher/teacher-hinted", sess: teacher, required: TeacherHinted, want: Allow},
		{name: "admin/teacher-hinted", sess: admin, required: TeacherHinted, want: Allow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.sess, tt.required); got != tt.want {
				t.Errorf("Decide() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecideUnknownRole(t *testing.T) {
	// a present session with a role the policy does not know is still not an admin
	if got := Decide(NewSession("u9", "janitor"), AdminOnly); got != RedirectToHome {
		t.Errorf("Decide() = %v, want %v", got, RedirectToHome)
	}
	if got := Decide(NewSession("u9", "janitor"), AnyAuthenticated); got != Allow {
		t.Errorf("Decide() = %v, want %v", got, Allow)
	}
}
