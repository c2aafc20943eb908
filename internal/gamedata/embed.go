// Package gamedata provides the embedded monster table, player stats and messages.
package gamedata

import "embed"

// dataFS holds every JSON table in this directory.
//
//go:embed *.json
var dataFS embed.FS
