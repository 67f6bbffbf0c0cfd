package version

import (
	"os/exec"
	"runtime/debug"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type VersionResponse struct {
	Commit    string `json:"commit"`
	GoVersion string `json:"go_version"`
}

var Version VersionResponse

func init() {
	Version = readVersion()
}

// readVersion prefers the commit stamped by the Go toolchain and falls back to git.
func readVersion() VersionResponse {
	version := VersionResponse{Commit: "unknown"}

	if info, ok := debug.ReadBuildInfo(); ok {
		version.GoVersion = info.GoVersion

		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				version.Commit = setting.Value
				return version
			}
		}
	}

	output, err := exec.Command("git", "rev-parse", "HEAD").Output()
	if err == nil {
		version.Commit = strings.TrimSpace(string(output))
	}

	return version
}

func SetupRoutes(app *fiber.App) {
	versionGroup := app.Group("/version")
	versionGroup.Get("/", versionHandler)
}

func versionHandler(c *fiber.Ctx) error {
	return c.JSON(Version)
}
