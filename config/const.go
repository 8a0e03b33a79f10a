package config

import "strings"

// AppVersion is the version of the application, set at build time.
var AppVersion string

// AppName is the name of the application.
const AppName = "SlimWallpaper"

// AppID is the fyne application identifier.
const AppID = "org.slimroms.wallpaper"

// LogWinSubDir is the sub directory for the log files on windows.
var LogWinSubDir = AppName

// LogSubDir is the sub directory for the log files.
var LogSubDir = "." + strings.ToLower(AppName)

// LogExt is the extension for the log files.
var LogExt = ".log"

// SaveSubDir is where saved wallpapers go, relative to the save root.
var SaveSubDir = "Slim/wallpapers"

// ApplyCacheSubDir holds the images handed to the OS wallpaper setter.
var ApplyCacheSubDir = "applied"
