// Package user holds the identity attached to authenticated requests.
package user

// Principal is the verified identity of a platform session. Draft ownership
// checks compare Principal.UserID against the draft's owner_id.
type Principal struct {
	UserID string
	Email  string
}
