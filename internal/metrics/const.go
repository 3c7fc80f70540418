package metrics

const Namespace = "authgate"

const (
	GateDecisionAllow    = "allow"
	GateDecisionRedirect = "redirect"
)

const (
	ActionSignIn  = "sign_in"
	ActionSignUp  = "sign_up"
	ActionSignOut = "sign_out"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)
