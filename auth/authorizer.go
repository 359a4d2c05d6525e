package auth

// Verdict is the outcome of a gateway authorization decision. It is a
// sealed two-variant type: callers branch with a type switch instead of
// comparing strings.
type Verdict interface {
	verdict()
}

// Allow grants invocation of exactly the requested resource and carries
// the claims downstream handlers need. Permission is scoped per
// decision; it is not cached or reused across resources.
type Allow struct {
	PrincipalID string
	Policy      PolicyDocument
	Roles       RoleSet
}

// Deny carries no claims on purpose: an absent, forged, malformed, and
// expired credential must all produce the identical outcome.
type Deny struct{}

func (Allow) verdict() {}
func (Deny) verdict()  {}

// RoleContext returns the context the gateway attaches to the request
// for role gating and owner stamping.
func (a Allow) RoleContext() RoleContext {
	return RoleContext{
		PrincipalID: a.PrincipalID,
		Roles:       a.Roles,
	}
}

// RoleContext is attached to a request after an Allow verdict and
// consumed by the role-gate middleware and by handlers that need the
// caller's identity.
type RoleContext struct {
	PrincipalID string
	Roles       RoleSet
}

// PolicyDocument is the IAM-style policy attached to an Allow verdict.
type PolicyDocument struct {
	Version   string            `json:"Version"`
	Statement []PolicyStatement `json:"Statement"`
}

type PolicyStatement struct {
	Action   string `json:"Action"`
	Effect   string `json:"Effect"`
	Resource string `json:"Resource"`
}

// Authorizer answers "is this a legitimate, unexpired credential" for
// the front door. It never rejects based on role; role gating is the
// middleware's job.
type Authorizer struct {
	tokens *TokenService
	logger Logger
}

// NewAuthorizer builds the gateway decision function over a token service.
func NewAuthorizer(tokens *TokenService) *Authorizer {
	return &Authorizer{
		tokens: tokens,
		logger: defLogger{},
	}
}

func (a *Authorizer) WithLogger(logger Logger) *Authorizer {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// Decide verifies the bearer token and scopes an Allow verdict to the
// requested resource. An empty token denies without attempting
// verification; every verification failure denies identically.
func (a *Authorizer) Decide(token, resource string) Verdict {
	if token == "" {
		return Deny{}
	}

	claims, err := a.tokens.Verify(token)
	if err != nil {
		a.logger.Debug("authorization denied for %s", resource)
		return Deny{}
	}

	return Allow{
		PrincipalID: claims.UserID(),
		Policy:      invokePolicy(resource),
		Roles:       claims.Roles(),
	}
}

func invokePolicy(resource string) PolicyDocument {
	return PolicyDocument{
		Version: "2012-10-17",
		Statement: []PolicyStatement{{
			Action:   "execute-api:Invoke",
			Effect:   "Allow",
			Resource: resource,
		}},
	}
}
