package common

// ServiceName identifies the server in logs, traces and health responses.
const ServiceName = "snipkeeper"

// AuthScheme is the scheme expected in the Authorization header.
const AuthScheme = "Bearer"

// InvalidTokenMessage is the error text the API answers with when a bearer
// token is rejected. Clients match on it to tell it from other 403s.
const InvalidTokenMessage = "Invalid or expired token"
