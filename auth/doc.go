// Package auth implements the identity and access control core of the
// parking API: registration with email activation, credential
// verification and session issuance, signed bearer tokens, and the
// gateway-facing authorization decision.
//
// The package owns no storage or delivery concerns. Callers inject a
// UserStore, a RegistrationStore, and a Mailer; the store and mailer
// packages provide DynamoDB/SES implementations and in-memory ones for
// tests and offline mode.
package auth
