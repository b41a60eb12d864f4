package httpx

import (
	"github.com/myselfshravan/SponsorCatcher/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals
