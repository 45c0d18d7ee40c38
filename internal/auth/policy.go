package auth

// Policy decides whether an identity may perform an action on a resource.
type Policy func(p *Profile, resource, action string) bool

// SingleAdminEmail is the default policy: a single administrator identified
// by exact match against the configured email. An empty configured email
// authorizes no one.
func SingleAdminEmail(email string) Policy {
	return func(p *Profile, resource, action string) bool {
		if email == "" || p == nil {
			return false
		}
		return p.Email == email
	}
}
