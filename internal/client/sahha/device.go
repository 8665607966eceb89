package sahha

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/garrettladley/sensorlink/internal/version"
)

const sdkID = "sensorlink-go"

func (c *Client) putDeviceInformation(ctx context.Context, appID string) error {
	const route = "/user/deviceInformation"
	return c.do(ctx, c.authClient(ctx), http.MethodPut, route, nil, deviceInformation(appID), nil)
}

func deviceInformation(appID string) DeviceInformation {
	model, err := os.Hostname()
	if err != nil {
		model = "unknown"
	}

	return DeviceInformation{
		SDKID:         sdkID,
		SDKVersion:    version.Get(),
		AppID:         appID,
		AppVersion:    version.Get(),
		DeviceType:    runtime.GOOS + "/" + runtime.GOARCH,
		DeviceModel:   model,
		System:        runtime.GOOS,
		SystemVersion: runtime.Version(),
		TimeZone:      time.Now().Format("-07:00"),
	}
}

func openBrowser(target string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "linux":
		cmd = exec.Command("xdg-open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
