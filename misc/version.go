// Package misc keeps build time information.
package misc

// Set by the linker: -X zcss/misc.version=... -X zcss/misc.gitHash=...
var (
	appName = "zcss"
	version = "dev"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
