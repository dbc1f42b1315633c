package blog

import "embed"

// EmbeddedAssets contains the stylesheet shipped with the engine, served
// under /assets/.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
