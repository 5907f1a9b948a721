package client

import (
	"fmt"
	"runtime"

	"github.com/hoteldesk/go-hotel-client/core"
)

func getUserAgent() string {
	return fmt.Sprintf(
		"Hotelix/%s, OS:%s, Arch:%s",
		core.ClientVersion(),
		runtime.GOOS,
		runtime.GOARCH,
	)
}
