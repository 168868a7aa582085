package model

import "github.com/poppolopoppo/vsexport/internal/base"

/***************************************
 * Legacy settings migration
 ***************************************/

const (
	LEGACY_PREBUILD_COMMAND     = "prebuildCommand"
	LEGACY_LIBRARY_NAME_DEBUG   = "libraryName_Debug"
	LEGACY_LIBRARY_NAME_RELEASE = "libraryName_Release"
	CONFIG_PREBUILD_COMMAND     = "prebuildCommand"
	CONFIG_TARGET_BINARY_NAME   = "targetName"
)

var LogUpgrade = base.NewLogCategory("Upgrade")

// Moves exporter-wide legacy settings into the build configurations. Legacy keys
// are always removed, empty or malformed values are dropped without being copied.
func (x *Exporter) UpgradeSettings() (modified bool) {
	if x.Settings == nil {
		return false
	}

	if value, ok := x.Settings.Get(LEGACY_PREBUILD_COMMAND); ok {
		if command, isString := value.(string); isString && len(command) > 0 {
			for _, config := range x.Configurations {
				base.LogVerbose(LogUpgrade, "%s: move legacy pre-build command to configuration %q", x.Type, config.Name)
				config.settings().Set(CONFIG_PREBUILD_COMMAND, command)
			}
		} else if !isString {
			base.LogWarning(LogUpgrade, "%s: ignoring malformed legacy pre-build command %#v", x.Type, value)
		}
		x.Settings.Remove(LEGACY_PREBUILD_COMMAND)
		modified = true
	}

	migrateLibraryName := func(key string, debug bool) {
		value, ok := x.Settings.Get(key)
		if !ok {
			return
		}
		if libraryName, isString := value.(string); isString && len(libraryName) > 0 {
			for _, config := range x.Configurations {
				if config.IsDebug() == debug {
					base.LogVerbose(LogUpgrade, "%s: move legacy %q to configuration %q", x.Type, key, config.Name)
					config.settings().Set(CONFIG_TARGET_BINARY_NAME, libraryName)
				}
			}
		} else if !isString {
			base.LogWarning(LogUpgrade, "%s: ignoring malformed legacy %q setting %#v", x.Type, key, value)
		}
		x.Settings.Remove(key)
		modified = true
	}

	migrateLibraryName(LEGACY_LIBRARY_NAME_DEBUG, true)
	migrateLibraryName(LEGACY_LIBRARY_NAME_RELEASE, false)
	return
}

func (x *Configuration) settings() Settings {
	if x.Settings == nil {
		x.Settings = Settings{}
	}
	return x.Settings
}

// Runs the migration on every exporter of the project
func (x *Project) UpgradeSettings() (modified bool) {
	for _, exporter := range x.Exporters {
		if exporter.UpgradeSettings() {
			modified = true
		}
	}
	return
}
