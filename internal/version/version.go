// Package version holds build metadata overwritten with -ldflags "-X".
package version

//nolint:gochecknoglobals // set by the linker
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// UserAgent identifies outbound requests made by the service.
func UserAgent() string {
	return "mediasense/" + Version
}
