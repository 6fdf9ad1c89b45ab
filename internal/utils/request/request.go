package request

import (
	"net/http"

	"github.com/go-resty/resty/v2"
)

// Request is the shared outbound HTTP client. Proxy comes from the usual
// environment variables.
var Request = resty.New().SetTransport(&http.Transport{
	Proxy: http.ProxyFromEnvironment,
}).SetRetryCount(3)
