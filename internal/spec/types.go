package spec

// Config is the application configuration schema loaded from YAML.
type Config struct {
	Version   int      `yaml:"version"`
	Bank      string   `yaml:"bank"`
	Users     []string `yaml:"users"`
	OutputDir string   `yaml:"output_dir"`
}
