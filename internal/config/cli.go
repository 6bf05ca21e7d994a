package config

// Log holds the logging flags.
type Log struct {
	Level string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"VIEWGEN_LOG_LEVEL"`
	File  string `help:"Also write logs to this file" type:"path" env:"VIEWGEN_LOG_FILE"`
}

// Global holds the flags shared by every command.
type Global struct {
	Root      string `help:"Directory that relative directive paths resolve against" type:"path" default:"." env:"VIEWGEN_ROOT"`
	GenConfig string `name:"genconfig" help:"Path of the genconfig file (json, yaml or toml); defaults to <root>/genconfig.json" type:"path" env:"VIEWGEN_GENCONFIG"`
	CacheSize int    `help:"Number of parsed modules kept in memory" default:"256" env:"VIEWGEN_CACHE_SIZE"`
}
