package lock

// FileName is the lock file name, relative to the workspace root.
const FileName = "crates.lock.yaml"

// File represents crates.lock.yaml.
type File struct {
	Version     int               `yaml:"version"`
	GeneratedAt string            `yaml:"generated_at"`
	ToolVersion string            `yaml:"tool_version"`
	RepoPrefix  string            `yaml:"repo_prefix,omitempty"`
	Components  map[string]*Entry `yaml:"components"`
}

// Entry records the fetched state of a single component.
type Entry struct {
	URL    string `yaml:"url,omitempty"`
	Branch string `yaml:"branch,omitempty"`
	Commit string `yaml:"commit"`
}
