package globals

import (
	"context"
)

// JwtSecret is set from the JWT_SECRET env var during startup; tokens are
// signed and verified with this key only.
var JwtSecret []byte

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"

var Ctx = context.Background()
