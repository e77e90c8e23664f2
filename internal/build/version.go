package build

// Set at link time with -ldflags "-X github.com/bornholm/garden/internal/build.ShortVersion=..."
var (
	ShortVersion   = "dev"
	ProjectVersion = "unknown"
	GitRef         = "unknown"
	BuildDate      = "unknown"
)

func LongVersion() string {
	return ShortVersion + " (" + ProjectVersion + ", " + GitRef + ", " + BuildDate + ")"
}
