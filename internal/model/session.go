package model

// IssuedSession is the result of issuing a new session: the signed token for
// the httpOnly cookie and the CSRF value for the script-readable cookie.
type IssuedSession struct {
	Token     string
	CSRFToken string
	Claims    SessionClaims
}
