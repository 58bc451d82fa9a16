package mods

// Platform identifies a native target.
type Platform string

const (
	Android Platform = "android"
	IOS     Platform = "ios"
)

// SupportedPlatforms returns every platform mods can be registered for.
func SupportedPlatforms() []Platform {
	return []Platform{Android, IOS}
}

// ParsePlatform converts a string to a Platform, returning false if the
// platform is not supported.
func ParsePlatform(s string) (Platform, bool) {
	switch s {
	case "android":
		return Android, true
	case "ios":
		return IOS, true
	default:
		return "", false
	}
}

// Supported reports whether p is one of SupportedPlatforms.
func (p Platform) Supported() bool {
	_, ok := ParsePlatform(string(p))
	return ok
}
