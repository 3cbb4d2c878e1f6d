package bot

// AccessPolicy decides whether an Identity may invoke a privileged handler.
// The admin set is built once at startup from configuration and never
// mutated, so no synchronization is needed between the dispatch loop and
// anything else that holds a reference.
type AccessPolicy struct {
	admins map[Identity]struct{}
}

// NewAccessPolicy builds a policy from the configured admin identities.
func NewAccessPolicy(admins []Identity) *AccessPolicy {
	set := make(map[Identity]struct{}, len(admins))
	for _, id := range admins {
		set[id] = struct{}{}
	}
	return &AccessPolicy{admins: set}
}

// IsAuthorized reports whether id satisfies the required access level.
// LevelPublic is always authorized. LevelAdminOnly requires membership in
// the admin set; an empty set fails closed, so an unconfigured deployment
// never silently grants access.
func (p *AccessPolicy) IsAuthorized(id Identity, level AccessLevel) bool {
	if level == LevelPublic {
		return true
	}
	_, ok := p.admins[id]
	return ok
}
