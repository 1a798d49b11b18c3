package utils

import (
	"net/http"
	"time"
)

// HTTPClient is shared by background workers calling the gateway.
var HTTPClient = &http.Client{
	Timeout: 30 * time.Second,
}
