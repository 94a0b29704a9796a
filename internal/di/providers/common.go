package providers

import "time"

// shutdownTimeout bounds how long a service may take to stop during
// graceful shutdown.
const shutdownTimeout = 30 * time.Second
