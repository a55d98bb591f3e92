package config

import "github.com/framegrace/raze/core"

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("screen", Section{
		"width":  int(core.DefaultWidth),
		"height": int(core.DefaultHeight),
	})
	cfg.RegisterDefaults("theme", Section{
		"fg":     "default",
		"bg":     "default",
		"accent": "#89b4fa",
		"focus":  "#f9e2af",
	})
	cfg.RegisterDefaults("log", Section{
		"file":    "",
		"verbose": false,
	})
	cfg.RegisterDefaults("journal", Section{
		"enabled": false,
		"path":    "",
	})
	cfg.RegisterDefaults("monitor", Section{
		"socket": "",
	})
}
