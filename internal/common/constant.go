package common

// AuthorizationHeader carries the bearer token on outbound API requests.
const AuthorizationHeader = "Authorization"

// RequestIDHeader correlates client log lines with server log lines.
const RequestIDHeader = "X-Request-ID"

// RoleAdmin is the value of the "role" claim that unlocks admin commands.
const RoleAdmin = "Admin"

// RoleUser is the default role assigned on registration.
const RoleUser = "User"
